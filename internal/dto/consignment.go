package dto

import (
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest registers a consignment supplier.
type CreateSupplierRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// SupplierResponse defines the data returned for a supplier.
type SupplierResponse struct {
	SupplierID string    `json:"supplierID"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateConsignmentProductRequest registers a supplier-owned product.
type CreateConsignmentProductRequest struct {
	SupplierID   string          `json:"supplierID" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	CostPrice    decimal.Decimal `json:"costPrice" binding:"required"`
	SalePrice    decimal.Decimal `json:"salePrice" binding:"required"`
	InitialStock int64           `json:"initialStock"`
}

// ConsignmentProductResponse defines the data returned for a product.
type ConsignmentProductResponse struct {
	ProductID    string          `json:"productID"`
	SupplierID   string          `json:"supplierID"`
	Name         string          `json:"name"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	CurrentStock int64           `json:"currentStock"`
	SoldQty      int64           `json:"soldQty"`
	AccruedDebt  decimal.Decimal `json:"accruedDebt"`
}

// ConsignmentSaleItemRequest is one line of a sale batch.
type ConsignmentSaleItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Qty       int64  `json:"qty" binding:"required,gt=0"`
}

// RecordConsignmentSaleRequest records an all-or-nothing sale batch.
type RecordConsignmentSaleRequest struct {
	Items       []ConsignmentSaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Description string                       `json:"description"`
}

// RecordConsignmentSaleResponse reports the ledger entry created for a batch.
type RecordConsignmentSaleResponse struct {
	EntryID string          `json:"entryID"`
	Total   decimal.Decimal `json:"total"`
}

// SupplierBalanceResponse is the accrued, unsettled debt owed to a supplier.
type SupplierBalanceResponse struct {
	SupplierID     string          `json:"supplierID"`
	AccruedDebt    decimal.Decimal `json:"accruedDebt"`
	UnsettledUnits int64           `json:"unsettledUnits"`
}

// SettleSupplierResponse reports a settlement: the amount paid out and how
// many product counters were reset.
type SettleSupplierResponse struct {
	SupplierID      string          `json:"supplierID"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	ChangedProducts int64           `json:"changedProducts"`
	EntryID         string          `json:"entryID"`
}

// ToSupplierResponse converts a domain.Supplier to its response DTO.
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID: s.SupplierID,
		Name:       s.Name,
		Phone:      s.Phone,
		CreatedAt:  s.CreatedAt,
	}
}

// ToConsignmentProductResponse converts a domain.ConsignmentProduct to its response DTO.
func ToConsignmentProductResponse(p *domain.ConsignmentProduct) ConsignmentProductResponse {
	return ConsignmentProductResponse{
		ProductID:    p.ProductID,
		SupplierID:   p.SupplierID,
		Name:         p.Name,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		CurrentStock: p.CurrentStock,
		SoldQty:      p.SoldQty,
		AccruedDebt:  p.AccruedDebt(),
	}
}

// ToConsignmentProductResponses converts a slice of products to response DTOs.
func ToConsignmentProductResponses(products []domain.ConsignmentProduct) []ConsignmentProductResponse {
	responses := make([]ConsignmentProductResponse, len(products))
	for i := range products {
		responses[i] = ToConsignmentProductResponse(&products[i])
	}
	return responses
}
