package models

import "github.com/shopspring/decimal"

// Supplier maps the suppliers table.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	AuditFields
}

// ConsignmentProduct maps the consignment_products table.
type ConsignmentProduct struct {
	ProductID    string          `json:"productID"`
	SupplierID   string          `json:"supplierID"`
	Name         string          `json:"name"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SalePrice    decimal.Decimal `json:"salePrice"`
	CurrentStock int64           `json:"currentStock"`
	SoldQty      int64           `json:"soldQty"`
	AuditFields
}
