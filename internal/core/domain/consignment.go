package domain

import "github.com/shopspring/decimal"

// Supplier is a third-party consignment supplier whose products the store
// sells on their behalf and settles periodically.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	AuditFields
}

// ConsignmentProduct is a supplier-owned product held in consignment.
// SoldQty accumulates units sold since the last settlement; a settlement
// zeroes it for every product of the supplier.
type ConsignmentProduct struct {
	ProductID    string          `json:"productID"`
	SupplierID   string          `json:"supplierID"`
	Name         string          `json:"name"`
	CostPrice    decimal.Decimal `json:"costPrice"` // owed to the supplier per unit sold
	SalePrice    decimal.Decimal `json:"salePrice"`
	CurrentStock int64           `json:"currentStock"` // >= 0
	SoldQty      int64           `json:"soldQty"`      // >= 0, since last settlement
	AuditFields
}

// AccruedDebt is what the store owes the supplier for this product's
// unsettled sales.
func (p ConsignmentProduct) AccruedDebt() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(p.SoldQty))
}

// ConsignmentSaleItem is one line of a consignment sale batch.
type ConsignmentSaleItem struct {
	ProductID string `json:"productID"`
	Qty       int64  `json:"qty"`
}
