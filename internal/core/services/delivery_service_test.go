package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	"github.com/belafarma/backoffice/internal/core/domain"
	portsrepo "github.com/belafarma/backoffice/internal/core/ports/repositories"
	portssvc "github.com/belafarma/backoffice/internal/core/ports/services"
	"github.com/belafarma/backoffice/internal/core/services"
	"github.com/belafarma/backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DeliveryRepository ---
type MockDeliveryRepository struct {
	mock.Mock
}

// Ensure MockDeliveryRepository implements portsrepo.DeliveryRepositoryFacade
var _ portsrepo.DeliveryRepositoryFacade = (*MockDeliveryRepository)(nil)

func (m *MockDeliveryRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.DeliveryPlatformSale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryPlatformSale), args.Error(1)
}

func (m *MockDeliveryRepository) ListSales(ctx context.Context, status *domain.DeliverySaleStatus) ([]domain.DeliveryPlatformSale, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryPlatformSale), args.Error(1)
}

func (m *MockDeliveryRepository) SaveSaleWithEntry(ctx context.Context, sale domain.DeliveryPlatformSale, entry domain.LedgerEntry) error {
	args := m.Called(ctx, sale, entry)
	return args.Error(0)
}

func (m *MockDeliveryRepository) MarkReconciled(ctx context.Context, saleID string, reconciledAt time.Time, updatedBy string) error {
	args := m.Called(ctx, saleID, reconciledAt, updatedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---
type DeliveryServiceTestSuite struct {
	suite.Suite
	mockDeliveryRepo *MockDeliveryRepository
	service          portssvc.DeliverySvcFacade
	userID           string
}

func (suite *DeliveryServiceTestSuite) SetupTest() {
	suite.mockDeliveryRepo = new(MockDeliveryRepository)
	suite.service = services.NewDeliveryService(suite.mockDeliveryRepo, 30)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *DeliveryServiceTestSuite) TestRecordSale_ComputesNetAndDueDate() {
	ctx := context.Background()
	saleDate := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)
	req := dto.RecordDeliverySaleRequest{
		Platform:   "iFood",
		GrossValue: decimal.NewFromInt(80),
		FeePercent: decimal.NewFromInt(25),
		SaleDate:   &saleDate,
	}

	expectedDue := saleDate.AddDate(0, 0, 30)
	suite.mockDeliveryRepo.On("SaveSaleWithEntry", ctx,
		mock.MatchedBy(func(s domain.DeliveryPlatformSale) bool {
			return s.NetValue.Equal(decimal.NewFromInt(60)) &&
				s.DueDate.Equal(expectedDue) &&
				s.Status == domain.DeliveryPending
		}),
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Category == domain.CategoryDeliveryPlatformSale &&
				e.Amount.Equal(req.GrossValue) &&
				e.BusinessDay.Equal(saleDate)
		}),
	).Return(nil).Once()

	sale, err := suite.service.RecordSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(60).Equal(sale.NetValue))
	suite.NotEmpty(sale.EntryID)
	suite.mockDeliveryRepo.AssertExpectations(suite.T())
}

func (suite *DeliveryServiceTestSuite) TestRecordSale_NonPositiveGross() {
	ctx := context.Background()
	req := dto.RecordDeliverySaleRequest{Platform: "iFood", GrossValue: decimal.Zero}

	_, err := suite.service.RecordSale(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *DeliveryServiceTestSuite) TestRecordSale_FeeOutOfRange() {
	ctx := context.Background()
	req := dto.RecordDeliverySaleRequest{
		Platform:   "iFood",
		GrossValue: decimal.NewFromInt(50),
		FeePercent: decimal.NewFromInt(101),
	}

	_, err := suite.service.RecordSale(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DeliveryServiceTestSuite) TestReconcile_Success() {
	ctx := context.Background()
	saleID := uuid.NewString()
	reconciled := &domain.DeliveryPlatformSale{
		SaleID: saleID,
		Status: domain.DeliveryReconciled,
	}
	suite.mockDeliveryRepo.On("MarkReconciled", ctx, saleID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()
	suite.mockDeliveryRepo.On("FindSaleByID", ctx, saleID).Return(reconciled, nil).Once()

	sale, err := suite.service.Reconcile(ctx, saleID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DeliveryReconciled, sale.Status)
	suite.mockDeliveryRepo.AssertExpectations(suite.T())
}

func (suite *DeliveryServiceTestSuite) TestReconcile_AlreadyReconciled() {
	ctx := context.Background()
	saleID := uuid.NewString()
	suite.mockDeliveryRepo.On("MarkReconciled", ctx, saleID, mock.AnythingOfType("time.Time"), suite.userID).Return(apperrors.ErrAlreadyReconciled).Once()

	_, err := suite.service.Reconcile(ctx, saleID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrAlreadyReconciled)
}

func (suite *DeliveryServiceTestSuite) TestBatchReconcile_BestEffort() {
	ctx := context.Background()
	okID := uuid.NewString()
	missingID := uuid.NewString()
	doneID := uuid.NewString()

	suite.mockDeliveryRepo.On("MarkReconciled", ctx, okID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()
	suite.mockDeliveryRepo.On("FindSaleByID", ctx, okID).Return(&domain.DeliveryPlatformSale{SaleID: okID, Status: domain.DeliveryReconciled}, nil).Once()
	suite.mockDeliveryRepo.On("MarkReconciled", ctx, missingID, mock.AnythingOfType("time.Time"), suite.userID).Return(apperrors.ErrNotFound).Once()
	suite.mockDeliveryRepo.On("MarkReconciled", ctx, doneID, mock.AnythingOfType("time.Time"), suite.userID).Return(apperrors.ErrAlreadyReconciled).Once()

	result, err := suite.service.BatchReconcile(ctx, []string{okID, missingID, doneID}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal([]string{okID}, result.Reconciled)
	suite.Require().Len(result.Failures, 2)
	suite.Equal(missingID, result.Failures[0].SaleID)
	suite.Equal("not found", result.Failures[0].Reason)
	suite.Equal(doneID, result.Failures[1].SaleID)
	suite.Equal("already reconciled", result.Failures[1].Reason)
	suite.mockDeliveryRepo.AssertExpectations(suite.T())
}

func (suite *DeliveryServiceTestSuite) TestListSales_EmptyIsNotNil() {
	ctx := context.Background()
	status := domain.DeliveryPending
	suite.mockDeliveryRepo.On("ListSales", ctx, &status).Return([]domain.DeliveryPlatformSale(nil), nil).Once()

	sales, err := suite.service.ListSales(ctx, &status)

	suite.Require().NoError(err)
	suite.NotNil(sales)
	suite.Empty(sales)
}

// --- Run Test Suite ---
func TestDeliveryService(t *testing.T) {
	suite.Run(t, new(DeliveryServiceTestSuite))
}
