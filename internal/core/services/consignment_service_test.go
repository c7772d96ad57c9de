package services_test

import (
	"context"
	"errors"
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

// --- Mock ConsignmentRepository ---
type MockConsignmentRepository struct {
	mock.Mock
}

// Ensure MockConsignmentRepository implements portsrepo.ConsignmentRepositoryFacade
var _ portsrepo.ConsignmentRepositoryFacade = (*MockConsignmentRepository)(nil)

func (m *MockConsignmentRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockConsignmentRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockConsignmentRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockConsignmentRepository) FindProductByID(ctx context.Context, productID string) (*domain.ConsignmentProduct, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsignmentProduct), args.Error(1)
}

func (m *MockConsignmentRepository) ListProductsBySupplier(ctx context.Context, supplierID string) ([]domain.ConsignmentProduct, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConsignmentProduct), args.Error(1)
}

func (m *MockConsignmentRepository) SaveProduct(ctx context.Context, product domain.ConsignmentProduct) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockConsignmentRepository) RecordSale(ctx context.Context, items []domain.ConsignmentSaleItem, entry domain.LedgerEntry) error {
	args := m.Called(ctx, items, entry)
	return args.Error(0)
}

func (m *MockConsignmentRepository) SettleSupplier(ctx context.Context, supplierID string, updatedBy string, updatedAt time.Time) (int64, error) {
	args := m.Called(ctx, supplierID, updatedBy, updatedAt)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite Setup ---
type ConsignmentServiceTestSuite struct {
	suite.Suite
	mockConsignmentRepo *MockConsignmentRepository
	mockLedgerRepo      *MockLedgerEntryRepository
	service             portssvc.ConsignmentSvcFacade
	supplier            domain.Supplier
	product             domain.ConsignmentProduct
	userID              string
}

func (suite *ConsignmentServiceTestSuite) SetupTest() {
	suite.mockConsignmentRepo = new(MockConsignmentRepository)
	suite.mockLedgerRepo = new(MockLedgerEntryRepository)
	suite.service = services.NewConsignmentService(suite.mockConsignmentRepo, suite.mockLedgerRepo)

	suite.userID = uuid.NewString()
	suite.supplier = domain.Supplier{
		SupplierID: uuid.NewString(),
		Name:       "Manipulados Sao Jose",
	}
	suite.product = domain.ConsignmentProduct{
		ProductID:    uuid.NewString(),
		SupplierID:   suite.supplier.SupplierID,
		Name:         "Herbal syrup 200ml",
		CostPrice:    decimal.NewFromInt(12),
		SalePrice:    decimal.NewFromInt(20),
		CurrentStock: 10,
		SoldQty:      0,
	}
}

// --- Test Cases ---

func (suite *ConsignmentServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateConsignmentProductRequest{
		SupplierID:   suite.supplier.SupplierID,
		Name:         "Propolis drops",
		CostPrice:    decimal.NewFromInt(8),
		SalePrice:    decimal.NewFromInt(15),
		InitialStock: 24,
	}

	suite.mockConsignmentRepo.On("FindSupplierByID", ctx, suite.supplier.SupplierID).Return(&suite.supplier, nil).Once()
	suite.mockConsignmentRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.ConsignmentProduct) bool {
		return p.SupplierID == suite.supplier.SupplierID && p.CurrentStock == 24 && p.SoldQty == 0
	})).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(product.ProductID)
	suite.mockConsignmentRepo.AssertExpectations(suite.T())
}

func (suite *ConsignmentServiceTestSuite) TestCreateProduct_NegativeStock() {
	ctx := context.Background()
	req := dto.CreateConsignmentProductRequest{
		SupplierID:   suite.supplier.SupplierID,
		Name:         "x",
		CostPrice:    decimal.NewFromInt(1),
		SalePrice:    decimal.NewFromInt(2),
		InitialStock: -1,
	}

	_, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConsignmentServiceTestSuite) TestRecordSale_Success() {
	ctx := context.Background()
	req := dto.RecordConsignmentSaleRequest{
		Items: []dto.ConsignmentSaleItemRequest{
			{ProductID: suite.product.ProductID, Qty: 3},
		},
	}

	suite.mockConsignmentRepo.On("FindProductByID", ctx, suite.product.ProductID).Return(&suite.product, nil).Once()
	suite.mockConsignmentRepo.On("RecordSale", ctx,
		[]domain.ConsignmentSaleItem{{ProductID: suite.product.ProductID, Qty: 3}},
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Category == domain.CategoryConsignmentSale &&
				e.Amount.Equal(decimal.NewFromInt(60)) &&
				e.SupplierID != nil && *e.SupplierID == suite.supplier.SupplierID
		}),
	).Return(nil).Once()

	resp, err := suite.service.RecordSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(60).Equal(resp.Total))
	suite.NotEmpty(resp.EntryID)
	suite.mockConsignmentRepo.AssertExpectations(suite.T())
}

func (suite *ConsignmentServiceTestSuite) TestRecordSale_MergesDuplicateLines() {
	ctx := context.Background()
	req := dto.RecordConsignmentSaleRequest{
		Items: []dto.ConsignmentSaleItemRequest{
			{ProductID: suite.product.ProductID, Qty: 2},
			{ProductID: suite.product.ProductID, Qty: 2},
		},
	}

	suite.mockConsignmentRepo.On("FindProductByID", ctx, suite.product.ProductID).Return(&suite.product, nil).Once()
	suite.mockConsignmentRepo.On("RecordSale", ctx,
		[]domain.ConsignmentSaleItem{{ProductID: suite.product.ProductID, Qty: 4}},
		mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Amount.Equal(decimal.NewFromInt(80))
		}),
	).Return(nil).Once()

	resp, err := suite.service.RecordSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(80).Equal(resp.Total))
	suite.mockConsignmentRepo.AssertExpectations(suite.T())
}

func (suite *ConsignmentServiceTestSuite) TestRecordSale_InsufficientStock() {
	ctx := context.Background()
	req := dto.RecordConsignmentSaleRequest{
		Items: []dto.ConsignmentSaleItemRequest{
			{ProductID: suite.product.ProductID, Qty: 5},
		},
	}

	suite.mockConsignmentRepo.On("FindProductByID", ctx, suite.product.ProductID).Return(&suite.product, nil).Once()
	suite.mockConsignmentRepo.On("RecordSale", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrInsufficientStock).Once()

	_, err := suite.service.RecordSale(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockConsignmentRepo.AssertExpectations(suite.T())
}

func (suite *ConsignmentServiceTestSuite) TestRecordSale_NonPositiveQty() {
	ctx := context.Background()
	req := dto.RecordConsignmentSaleRequest{
		Items: []dto.ConsignmentSaleItemRequest{
			{ProductID: suite.product.ProductID, Qty: 0},
		},
	}

	_, err := suite.service.RecordSale(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConsignmentServiceTestSuite) TestGetSupplierBalance() {
	ctx := context.Background()
	sold := suite.product
	sold.SoldQty = 4 // 4 * cost 12 = 48
	other := domain.ConsignmentProduct{
		ProductID:  uuid.NewString(),
		SupplierID: suite.supplier.SupplierID,
		CostPrice:  decimal.NewFromInt(5),
		SalePrice:  decimal.NewFromInt(9),
		SoldQty:    2, // 2 * cost 5 = 10
	}

	suite.mockConsignmentRepo.On("FindSupplierByID", ctx, suite.supplier.SupplierID).Return(&suite.supplier, nil).Once()
	suite.mockConsignmentRepo.On("ListProductsBySupplier", ctx, suite.supplier.SupplierID).Return([]domain.ConsignmentProduct{sold, other}, nil).Once()

	balance, err := suite.service.GetSupplierBalance(ctx, suite.supplier.SupplierID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(58).Equal(balance.AccruedDebt))
	suite.Equal(int64(6), balance.UnsettledUnits)
	suite.mockConsignmentRepo.AssertExpectations(suite.T())
}

func (suite *ConsignmentServiceTestSuite) TestSettle_Success() {
	ctx := context.Background()
	sold := suite.product
	sold.SoldQty = 4 // accrued 48

	suite.mockConsignmentRepo.On("FindSupplierByID", ctx, suite.supplier.SupplierID).Return(&suite.supplier, nil).Twice()
	suite.mockConsignmentRepo.On("ListProductsBySupplier", ctx, suite.supplier.SupplierID).Return([]domain.ConsignmentProduct{sold}, nil).Once()
	suite.mockConsignmentRepo.On("SettleSupplier", ctx, suite.supplier.SupplierID, suite.userID, mock.AnythingOfType("time.Time")).Return(int64(1), nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Category == domain.CategoryConsignmentSettlement &&
			e.Amount.Equal(decimal.NewFromInt(48)) &&
			e.SupplierID != nil && *e.SupplierID == suite.supplier.SupplierID
	})).Return(nil).Once()

	resp, err := suite.service.Settle(ctx, suite.supplier.SupplierID, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(48).Equal(resp.AmountPaid))
	suite.Equal(int64(1), resp.ChangedProducts)
	suite.mockConsignmentRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *ConsignmentServiceTestSuite) TestSettle_EntryFailureReportsAmount() {
	ctx := context.Background()
	sold := suite.product
	sold.SoldQty = 4 // accrued 48

	suite.mockConsignmentRepo.On("FindSupplierByID", ctx, suite.supplier.SupplierID).Return(&suite.supplier, nil).Twice()
	suite.mockConsignmentRepo.On("ListProductsBySupplier", ctx, suite.supplier.SupplierID).Return([]domain.ConsignmentProduct{sold}, nil).Once()
	suite.mockConsignmentRepo.On("SettleSupplier", ctx, suite.supplier.SupplierID, suite.userID, mock.AnythingOfType("time.Time")).Return(int64(1), nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(errors.New("connection reset")).Once()

	_, err := suite.service.Settle(ctx, suite.supplier.SupplierID, suite.userID)

	// The counters were reset before the entry write failed; the payout
	// amount must survive in the error.
	suite.Require().Error(err)
	suite.Contains(err.Error(), "48.00")
	suite.mockConsignmentRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *ConsignmentServiceTestSuite) TestSettle_NothingToSettle() {
	ctx := context.Background()

	suite.mockConsignmentRepo.On("FindSupplierByID", ctx, suite.supplier.SupplierID).Return(&suite.supplier, nil).Twice()
	suite.mockConsignmentRepo.On("ListProductsBySupplier", ctx, suite.supplier.SupplierID).Return([]domain.ConsignmentProduct{suite.product}, nil).Once()

	_, err := suite.service.Settle(ctx, suite.supplier.SupplierID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockConsignmentRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestConsignmentService(t *testing.T) {
	suite.Run(t, new(ConsignmentServiceTestSuite))
}
