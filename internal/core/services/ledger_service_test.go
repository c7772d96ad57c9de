package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	"github.com/belafarma/backoffice/internal/core/domain"
	portssvc "github.com/belafarma/backoffice/internal/core/ports/services"
	"github.com/belafarma/backoffice/internal/core/services"
	"github.com/belafarma/backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerEntryRepository
	mockClosingRepo *MockClosingRepository
	service         portssvc.LedgerSvcFacade
	userID          string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerEntryRepository)
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockClosingRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	day := time.Date(2025, time.June, 2, 14, 30, 0, 0, time.UTC)
	req := dto.CreateLedgerEntryRequest{
		BusinessDay: &day,
		Category:    string(domain.CategoryExpense),
		Description: "Cleaning supplies",
		Amount:      decimal.NewFromInt(45),
	}

	normalized := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	suite.mockClosingRepo.On("FindClosingByDay", ctx, normalized).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Category == domain.CategoryExpense && e.BusinessDay.Equal(normalized) && !e.Closed
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.True(entry.BusinessDay.Equal(normalized))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_UnknownCategory() {
	ctx := context.Background()
	req := dto.CreateLedgerEntryRequest{
		Category:    "PETTY_CASH",
		Description: "whatever",
		Amount:      decimal.NewFromInt(10),
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateLedgerEntryRequest{
		Category:    string(domain.CategoryExpense),
		Description: "negative",
		Amount:      decimal.NewFromInt(-5),
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_StoreCreditRequiresCustomer() {
	ctx := context.Background()
	req := dto.CreateLedgerEntryRequest{
		Category:    string(domain.CategoryStoreCredit),
		Description: "fiado without a customer",
		Amount:      decimal.NewFromInt(30),
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ConsignmentRequiresSupplier() {
	ctx := context.Background()
	empty := ""
	req := dto.CreateLedgerEntryRequest{
		Category:    string(domain.CategoryConsignmentSettlement),
		Description: "settlement without a supplier",
		Amount:      decimal.NewFromInt(48),
		SupplierID:  &empty,
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_DayAlreadyClosed() {
	ctx := context.Background()
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	req := dto.CreateLedgerEntryRequest{
		BusinessDay: &day,
		Category:    string(domain.CategoryDirectDeposit),
		Description: "late deposit",
		Amount:      decimal.NewFromInt(100),
	}

	suite.mockClosingRepo.On("FindClosingByDay", ctx, day).Return(&domain.ClosingRecord{ClosingID: uuid.NewString()}, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntry(ctx, entryID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestListEntriesForDay_EmptyIsNotNil() {
	ctx := context.Background()
	day := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	suite.mockLedgerRepo.On("ListEntriesForDay", ctx, day).Return([]domain.LedgerEntry(nil), nil).Once()

	entries, err := suite.service.ListEntriesForDay(ctx, day)

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.Empty(entries)
}

func (suite *LedgerServiceTestSuite) TestListOpenEntriesForDay_OnlyOpen() {
	ctx := context.Background()
	day := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	open := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), BusinessDay: day, Category: domain.CategoryExpense, Amount: decimal.NewFromInt(12)},
	}
	suite.mockLedgerRepo.On("ListOpenEntriesForDay", ctx, day).Return(open, nil).Once()

	entries, err := suite.service.ListOpenEntriesForDay(ctx, day)

	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.Equal(open[0].EntryID, entries[0].EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListEntriesForMonth_DefaultsLimit() {
	ctx := context.Background()
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), BusinessDay: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), Category: domain.CategoryExpense, Amount: decimal.NewFromInt(10)},
	}
	token := "next-page"
	suite.mockLedgerRepo.On("ListEntriesForMonth", ctx, 2025, time.June, 50, (*string)(nil)).Return(entries, token, nil).Once()

	resp, err := suite.service.ListEntriesForMonth(ctx, 2025, time.June, 0, nil)

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.LedgerEntry{
		EntryID:     entryID,
		Category:    domain.CategoryExpense,
		Description: "old",
		Amount:      decimal.NewFromInt(10),
	}
	newAmount := decimal.NewFromInt(25)
	newDescription := "corrected"

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()
	suite.mockLedgerRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Description == newDescription && e.Amount.Equal(newAmount) && e.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, entryID, dto.UpdateLedgerEntryRequest{
		Description: &newDescription,
		Amount:      &newAmount,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newDescription, updated.Description)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_ClosedEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	closed := &domain.LedgerEntry{EntryID: entryID, Closed: true, Amount: decimal.NewFromInt(10)}
	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(closed, nil).Once()

	newDescription := "too late"
	_, err := suite.service.UpdateEntry(ctx, entryID, dto.UpdateLedgerEntryRequest{Description: &newDescription}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_ClosedEntryRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockLedgerRepo.On("DeleteEntry", ctx, entryID).Return(apperrors.ErrInvalidState).Once()

	err := suite.service.DeleteEntry(ctx, entryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
