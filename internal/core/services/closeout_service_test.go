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

// --- Mock LedgerEntryRepository ---
type MockLedgerEntryRepository struct {
	mock.Mock
}

// Ensure MockLedgerEntryRepository implements portsrepo.LedgerEntryRepositoryFacade
var _ portsrepo.LedgerEntryRepositoryFacade = (*MockLedgerEntryRepository)(nil)

func (m *MockLedgerEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) ListEntriesForDay(ctx context.Context, day time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) ListOpenEntriesForDay(ctx context.Context, day time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) ListEntriesForMonth(ctx context.Context, year int, month time.Month, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, year, month, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerEntryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock ClosingRepository ---
type MockClosingRepository struct {
	mock.Mock
}

// Ensure MockClosingRepository implements portsrepo.ClosingRepositoryFacade
var _ portsrepo.ClosingRepositoryFacade = (*MockClosingRepository)(nil)

func (m *MockClosingRepository) FindClosingByDay(ctx context.Context, day time.Time) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingRepository) FindLatestClosingBefore(ctx context.Context, day time.Time) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingRepository) ListClosingsForMonth(ctx context.Context, year int, month time.Month) ([]domain.ClosingRecord, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingRepository) CloseDay(ctx context.Context, record domain.ClosingRecord) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingRepository) CreateRetroactive(ctx context.Context, record domain.ClosingRecord) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

// --- Test Suite Setup ---
type CloseOutServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerEntryRepository
	mockClosingRepo *MockClosingRepository
	service         portssvc.CloseOutSvcFacade
	userID          string
	businessDay     time.Time
}

func (suite *CloseOutServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerEntryRepository)
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.service = services.NewCloseOutService(suite.mockLedgerRepo, suite.mockClosingRepo, []time.Weekday{time.Sunday})

	suite.userID = uuid.NewString()
	// A past Monday, so retroactive tests can move relative to it.
	suite.businessDay = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
}

// startSession walks StartOrResumeClose with no prior closing records.
func (suite *CloseOutServiceTestSuite) startSession() *domain.CloseOutSession {
	ctx := context.Background()
	suite.mockClosingRepo.On("FindClosingByDay", ctx, suite.businessDay).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClosingRepo.On("FindLatestClosingBefore", ctx, suite.businessDay).Return(nil, apperrors.ErrNotFound).Once()

	session, err := suite.service.StartOrResumeClose(ctx, suite.businessDay, suite.userID)
	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	return session
}

// walkToSummary drives a fresh session through SALES, CASH and DIGITAL with
// the canonical figures: opening 100, declared 500, expenses 20, store
// credit 30, counted cash 520, digital 30.
func (suite *CloseOutServiceTestSuite) walkToSummary() *domain.CloseOutSession {
	ctx := context.Background()
	session := suite.startSession()

	_, err := suite.service.EnterSales(ctx, session.SessionID, dto.EnterSalesRequest{
		OpeningBalance:     decimalPtr(decimal.NewFromInt(100)),
		DeclaredGrossSales: decimal.NewFromInt(500),
	})
	suite.Require().NoError(err)
	_, err = suite.service.Advance(ctx, session.SessionID)
	suite.Require().NoError(err)

	_, err = suite.service.EnterCash(ctx, session.SessionID, dto.EnterCashRequest{
		Denominations: map[string]int64{"100": 5, "20": 1}, // 520
	})
	suite.Require().NoError(err)
	_, err = suite.service.Advance(ctx, session.SessionID)
	suite.Require().NoError(err)

	_, err = suite.service.EnterDigital(ctx, session.SessionID, dto.EnterDigitalRequest{
		CreditCard: decimal.NewFromInt(30),
	})
	suite.Require().NoError(err)
	result, err := suite.service.Advance(ctx, session.SessionID)
	suite.Require().NoError(err)
	suite.Require().Equal(domain.StepSummary, result.Step)
	return result
}

func (suite *CloseOutServiceTestSuite) dayEntries() []domain.LedgerEntry {
	return []domain.LedgerEntry{
		{EntryID: uuid.NewString(), BusinessDay: suite.businessDay, Category: domain.CategoryExpense, Amount: decimal.NewFromInt(20)},
		{EntryID: uuid.NewString(), BusinessDay: suite.businessDay, Category: domain.CategoryStoreCredit, Amount: decimal.NewFromInt(30)},
	}
}

// --- Test Cases ---

func (suite *CloseOutServiceTestSuite) TestStartOrResumeClose_NewSession() {
	session := suite.startSession()

	suite.Equal(domain.StepSales, session.Step)
	suite.True(session.OpeningBalance.IsZero())
	suite.Equal(suite.userID, session.StartedBy)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestStartOrResumeClose_CarriesOpeningBalanceForward() {
	ctx := context.Background()
	previous := &domain.ClosingRecord{
		ClosingID:          uuid.NewString(),
		BusinessDay:        suite.businessDay.AddDate(0, 0, -1),
		NextOpeningBalance: decimal.NewFromInt(150),
	}
	suite.mockClosingRepo.On("FindClosingByDay", ctx, suite.businessDay).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClosingRepo.On("FindLatestClosingBefore", ctx, suite.businessDay).Return(previous, nil).Once()

	session, err := suite.service.StartOrResumeClose(ctx, suite.businessDay, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(150).Equal(session.OpeningBalance))
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestStartOrResumeClose_ResumesExistingSession() {
	ctx := context.Background()
	first := suite.startSession()

	// The second start for the same day finds the live session and never
	// touches FindLatestClosingBefore again.
	suite.mockClosingRepo.On("FindClosingByDay", ctx, suite.businessDay).Return(nil, apperrors.ErrNotFound).Once()
	second, err := suite.service.StartOrResumeClose(ctx, suite.businessDay, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(first.SessionID, second.SessionID)
	suite.Equal(suite.userID, second.StartedBy)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestStartOrResumeClose_DayAlreadyClosed() {
	ctx := context.Background()
	existing := &domain.ClosingRecord{ClosingID: uuid.NewString(), BusinessDay: suite.businessDay}
	suite.mockClosingRepo.On("FindClosingByDay", ctx, suite.businessDay).Return(existing, nil).Once()

	session, err := suite.service.StartOrResumeClose(ctx, suite.businessDay, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateClosing)
	suite.Nil(session)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestEnterSales_WrongStep() {
	ctx := context.Background()
	session := suite.startSession()

	_, err := suite.service.Advance(ctx, session.SessionID)
	suite.Require().NoError(err)

	_, err = suite.service.EnterSales(ctx, session.SessionID, dto.EnterSalesRequest{
		DeclaredGrossSales: decimal.NewFromInt(100),
	})
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *CloseOutServiceTestSuite) TestEnterSales_ZeroOpeningBalanceOverridesCarryForward() {
	ctx := context.Background()
	previous := &domain.ClosingRecord{
		ClosingID:          uuid.NewString(),
		BusinessDay:        suite.businessDay.AddDate(0, 0, -1),
		NextOpeningBalance: decimal.NewFromInt(150),
	}
	suite.mockClosingRepo.On("FindClosingByDay", ctx, suite.businessDay).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClosingRepo.On("FindLatestClosingBefore", ctx, suite.businessDay).Return(previous, nil).Once()

	session, err := suite.service.StartOrResumeClose(ctx, suite.businessDay, suite.userID)
	suite.Require().NoError(err)
	suite.Require().True(decimal.NewFromInt(150).Equal(session.OpeningBalance))

	// An explicit zero corrects the prefill; an omitted balance keeps it.
	updated, err := suite.service.EnterSales(ctx, session.SessionID, dto.EnterSalesRequest{
		OpeningBalance:     decimalPtr(decimal.Zero),
		DeclaredGrossSales: decimal.NewFromInt(500),
	})
	suite.Require().NoError(err)
	suite.True(updated.OpeningBalance.IsZero())

	updated, err = suite.service.EnterSales(ctx, session.SessionID, dto.EnterSalesRequest{
		DeclaredGrossSales: decimal.NewFromInt(500),
	})
	suite.Require().NoError(err)
	suite.True(updated.OpeningBalance.IsZero())
}

func (suite *CloseOutServiceTestSuite) TestEnterSales_NegativeAmount() {
	ctx := context.Background()
	session := suite.startSession()

	_, err := suite.service.EnterSales(ctx, session.SessionID, dto.EnterSalesRequest{
		DeclaredGrossSales: decimal.NewFromInt(-1),
	})
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *CloseOutServiceTestSuite) TestEnterCash_UnknownDenomination() {
	ctx := context.Background()
	session := suite.startSession()
	_, err := suite.service.Advance(ctx, session.SessionID)
	suite.Require().NoError(err)

	_, err = suite.service.EnterCash(ctx, session.SessionID, dto.EnterCashRequest{
		Denominations: map[string]int64{"7": 3},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CloseOutServiceTestSuite) TestAdvance_StopsAtSummary() {
	ctx := context.Background()
	session := suite.walkToSummary()

	_, err := suite.service.Advance(ctx, session.SessionID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *CloseOutServiceTestSuite) TestBack_WalksToSales() {
	ctx := context.Background()
	session := suite.walkToSummary()

	for _, want := range []domain.CloseOutStep{domain.StepDigital, domain.StepCash, domain.StepSales} {
		result, err := suite.service.Back(ctx, session.SessionID)
		suite.Require().NoError(err)
		suite.Equal(want, result.Step)
	}

	_, err := suite.service.Back(ctx, session.SessionID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *CloseOutServiceTestSuite) TestSummary_BalancedDay() {
	ctx := context.Background()
	session := suite.walkToSummary()

	suite.mockLedgerRepo.On("ListOpenEntriesForDay", ctx, suite.businessDay).Return(suite.dayEntries(), nil).Once()

	summary, err := suite.service.Summary(ctx, session.SessionID)

	suite.Require().NoError(err)
	// 500 + 0 + 100 - 20 - 30 = 550 expected, 520 cash + 30 digital counted.
	suite.True(decimal.NewFromInt(550).Equal(summary.ExpectedTotal), "expected %s", summary.ExpectedTotal)
	suite.True(decimal.NewFromInt(550).Equal(summary.CountedTotal), "counted %s", summary.CountedTotal)
	suite.True(summary.Discrepancy.IsZero())
	suite.True(summary.Balanced)
	suite.Equal(2, summary.OpenEntryCount)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestSummary_WrongStep() {
	ctx := context.Background()
	session := suite.startSession()

	_, err := suite.service.Summary(ctx, session.SessionID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *CloseOutServiceTestSuite) TestConfirmSummary_RequiresSafeDeposit() {
	ctx := context.Background()
	session := suite.walkToSummary()

	resp, err := suite.service.ConfirmSummary(ctx, session.SessionID)

	suite.Require().NoError(err)
	suite.True(resp.RequiresSafeDeposit)
	suite.Equal(string(domain.StepSafeDeposit), resp.Step)
	suite.True(decimal.NewFromInt(520).Equal(resp.AvailableCash))
	suite.Nil(resp.Closing)

	live, err := suite.service.GetSession(ctx, session.SessionID)
	suite.Require().NoError(err)
	suite.Equal(domain.StepSafeDeposit, live.Step)
}

func (suite *CloseOutServiceTestSuite) TestConfirmSummary_ZeroCashSealsDirectly() {
	ctx := context.Background()
	session := suite.startSession()

	_, err := suite.service.EnterSales(ctx, session.SessionID, dto.EnterSalesRequest{
		DeclaredGrossSales: decimal.NewFromInt(50),
	})
	suite.Require().NoError(err)
	_, err = suite.service.Advance(ctx, session.SessionID)
	suite.Require().NoError(err)
	_, err = suite.service.Advance(ctx, session.SessionID)
	suite.Require().NoError(err)
	_, err = suite.service.EnterDigital(ctx, session.SessionID, dto.EnterDigitalRequest{DebitCard: decimal.NewFromInt(50)})
	suite.Require().NoError(err)
	_, err = suite.service.Advance(ctx, session.SessionID)
	suite.Require().NoError(err)

	sealed := &domain.ClosingRecord{
		ClosingID:   uuid.NewString(),
		BusinessDay: suite.businessDay,
		SafeDeposit: decimal.Zero,
	}
	suite.mockClosingRepo.On("CloseDay", ctx, mock.MatchedBy(func(r domain.ClosingRecord) bool {
		return r.SafeDeposit.IsZero() && !r.Retroactive
	})).Return(sealed, nil).Once()

	resp, err := suite.service.ConfirmSummary(ctx, session.SessionID)

	suite.Require().NoError(err)
	suite.False(resp.RequiresSafeDeposit)
	suite.Equal(string(domain.StepClosed), resp.Step)
	suite.Require().NotNil(resp.Closing)

	// The session stays behind in its terminal step so a repeated confirm
	// reports the duplicate closing.
	live, err := suite.service.GetSession(ctx, session.SessionID)
	suite.Require().NoError(err)
	suite.Equal(domain.StepClosed, live.Step)
	_, err = suite.service.ConfirmSummary(ctx, session.SessionID)
	suite.ErrorIs(err, apperrors.ErrDuplicateClosing)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestConfirmSafeDeposit_Success() {
	ctx := context.Background()
	session := suite.walkToSummary()

	_, err := suite.service.ConfirmSummary(ctx, session.SessionID)
	suite.Require().NoError(err)

	deposit := decimal.NewFromInt(400)
	sealed := &domain.ClosingRecord{
		ClosingID:          uuid.NewString(),
		BusinessDay:        suite.businessDay,
		SafeDeposit:        deposit,
		NextOpeningBalance: decimal.NewFromInt(120),
	}
	suite.mockClosingRepo.On("CloseDay", ctx, mock.MatchedBy(func(r domain.ClosingRecord) bool {
		return r.SafeDeposit.Equal(deposit) && r.PhysicalCash.Equal(decimal.NewFromInt(520)) && r.ClosedBy == suite.userID
	})).Return(sealed, nil).Once()

	record, err := suite.service.ConfirmSafeDeposit(ctx, session.SessionID, deposit)

	suite.Require().NoError(err)
	suite.Equal(sealed.ClosingID, record.ClosingID)

	// Retrying the deposit after the seal reports the duplicate.
	_, err = suite.service.ConfirmSafeDeposit(ctx, session.SessionID, deposit)
	suite.ErrorIs(err, apperrors.ErrDuplicateClosing)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestConfirmSafeDeposit_ExceedsAvailableCash() {
	ctx := context.Background()
	session := suite.walkToSummary()

	_, err := suite.service.ConfirmSummary(ctx, session.SessionID)
	suite.Require().NoError(err)

	_, err = suite.service.ConfirmSafeDeposit(ctx, session.SessionID, decimal.NewFromInt(600))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExceedsAvailable)

	// The session survives the rejected deposit.
	live, err := suite.service.GetSession(ctx, session.SessionID)
	suite.Require().NoError(err)
	suite.Equal(domain.StepSafeDeposit, live.Step)
}

func (suite *CloseOutServiceTestSuite) TestConfirmSafeDeposit_DuplicateClosingSealsSession() {
	ctx := context.Background()
	session := suite.walkToSummary()

	_, err := suite.service.ConfirmSummary(ctx, session.SessionID)
	suite.Require().NoError(err)

	suite.mockClosingRepo.On("CloseDay", ctx, mock.AnythingOfType("domain.ClosingRecord")).Return(nil, apperrors.ErrDuplicateClosing).Once()

	_, err = suite.service.ConfirmSafeDeposit(ctx, session.SessionID, decimal.NewFromInt(100))

	suite.ErrorIs(err, apperrors.ErrDuplicateClosing)

	// Every later touch of the session keeps reporting the duplicate, not a
	// missing session.
	_, err = suite.service.ConfirmSafeDeposit(ctx, session.SessionID, decimal.NewFromInt(100))
	suite.ErrorIs(err, apperrors.ErrDuplicateClosing)
	_, err = suite.service.Advance(ctx, session.SessionID)
	suite.ErrorIs(err, apperrors.ErrDuplicateClosing)
	_, err = suite.service.Back(ctx, session.SessionID)
	suite.ErrorIs(err, apperrors.ErrDuplicateClosing)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestCreateRetroactiveClosing_Success() {
	ctx := context.Background()
	declared := decimal.NewFromInt(800)

	suite.mockClosingRepo.On("FindClosingByDay", ctx, suite.businessDay).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClosingRepo.On("CreateRetroactive", ctx, mock.MatchedBy(func(r domain.ClosingRecord) bool {
		return r.Retroactive && r.DeclaredGrossSales.Equal(declared) && r.BusinessDay.Equal(suite.businessDay)
	})).Return(&domain.ClosingRecord{ClosingID: uuid.NewString(), BusinessDay: suite.businessDay, Retroactive: true, DeclaredGrossSales: declared}, nil).Once()

	record, err := suite.service.CreateRetroactiveClosing(ctx, suite.businessDay, declared, suite.userID)

	suite.Require().NoError(err)
	suite.True(record.Retroactive)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestCreateRetroactiveClosing_RejectsToday() {
	ctx := context.Background()

	_, err := suite.service.CreateRetroactiveClosing(ctx, time.Now(), decimal.NewFromInt(100), suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CloseOutServiceTestSuite) TestCreateRetroactiveClosing_RejectsRestDay() {
	ctx := context.Background()
	sunday := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.CreateRetroactiveClosing(ctx, sunday, decimal.NewFromInt(100), suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CloseOutServiceTestSuite) TestCreateRetroactiveClosing_RejectsNonPositiveSales() {
	ctx := context.Background()

	_, err := suite.service.CreateRetroactiveClosing(ctx, suite.businessDay, decimal.Zero, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *CloseOutServiceTestSuite) TestCreateRetroactiveClosing_DayAlreadyClosed() {
	ctx := context.Background()
	existing := &domain.ClosingRecord{ClosingID: uuid.NewString(), BusinessDay: suite.businessDay}
	suite.mockClosingRepo.On("FindClosingByDay", ctx, suite.businessDay).Return(existing, nil).Once()

	_, err := suite.service.CreateRetroactiveClosing(ctx, suite.businessDay, decimal.NewFromInt(100), suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicateClosing)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestDailyTotals() {
	ctx := context.Background()
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), Category: domain.CategoryUncatalogedSale, Amount: decimal.NewFromInt(200)},
		{EntryID: uuid.NewString(), Category: domain.CategoryExpense, Amount: decimal.NewFromInt(60), Closed: true},
		{EntryID: uuid.NewString(), Category: domain.CategoryConsignmentSettlement, Amount: decimal.NewFromInt(40)},
	}
	suite.mockLedgerRepo.On("ListEntriesForDay", ctx, suite.businessDay).Return(entries, nil).Once()
	suite.mockClosingRepo.On("FindClosingByDay", ctx, suite.businessDay).Return(nil, apperrors.ErrNotFound).Once()

	totals, err := suite.service.DailyTotals(ctx, suite.businessDay)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(200).Equal(totals.Inflows))
	suite.True(decimal.NewFromInt(100).Equal(totals.Outflows))
	suite.True(decimal.NewFromInt(100).Equal(totals.NetMovement))
	suite.Equal(2, totals.OpenEntryCount)
	suite.False(totals.Closed)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *CloseOutServiceTestSuite) TestMonthlyHistory() {
	ctx := context.Background()
	closings := []domain.ClosingRecord{
		{ClosingID: uuid.NewString(), DeclaredGrossSales: decimal.NewFromInt(500), Discrepancy: decimal.NewFromInt(-5), SafeDeposit: decimal.NewFromInt(300)},
		{ClosingID: uuid.NewString(), DeclaredGrossSales: decimal.NewFromInt(700), Discrepancy: decimal.NewFromInt(2), SafeDeposit: decimal.NewFromInt(500)},
	}
	suite.mockClosingRepo.On("ListClosingsForMonth", ctx, 2025, time.March).Return(closings, nil).Once()

	history, err := suite.service.MonthlyHistory(ctx, time.March, 2025)

	suite.Require().NoError(err)
	suite.Len(history.Closings, 2)
	suite.True(decimal.NewFromInt(1200).Equal(history.TotalDeclared))
	suite.True(decimal.NewFromInt(-3).Equal(history.TotalDiscrepancy))
	suite.True(decimal.NewFromInt(800).Equal(history.TotalSafeDeposit))
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCloseOutService(t *testing.T) {
	suite.Run(t, new(CloseOutServiceTestSuite))
}

// Helper functions
func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
