package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Stock fields are authoritative only
// inside the InventoryService; everything else is master data loaded once
// from the ProductSource at startup.
type Product struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Barcode           string          `json:"barcode,omitempty"`
	Unit              string          `json:"unit"`
	BasePrice         decimal.Decimal `json:"base_price"`
	TaxRate           decimal.Decimal `json:"tax_rate"` // percent
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	// IsLoose marks weight-priced goods (rice, sugar). Loose products are
	// sold by fractional quantity and reach the cart via LOOSE-* barcodes.
	IsLoose   bool      `json:"is_loose"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Customer is the optional buyer attached to a cart. The register treats it
// as an opaque reference; customer management lives outside the core.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type AlertType string

const (
	AlertLowStock   AlertType = "low_stock"
	AlertOutOfStock AlertType = "out_of_stock"
)

// StockAlert is derived state, never source of truth: at most one
// undismissed alert exists per product at a time. Dismissed alerts are kept
// (filtered from active views) until a restock above threshold clears them.
type StockAlert struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Threshold    decimal.Decimal `json:"threshold"`
	Type         AlertType       `json:"type"`
	Timestamp    time.Time       `json:"timestamp"`
	Dismissed    bool            `json:"dismissed"`
}

// ManualLabel is a persisted, weight-priced ad-hoc product definition,
// created by the label printing flow and looked up by MANUAL-* barcodes.
// Immutable once created.
type ManualLabel struct {
	ID           string          `json:"id"`
	ProductName  string          `json:"product_name"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Weight       decimal.Decimal `json:"weight"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DayStats is the single day bucket of register statistics. The bucket is
// replaced, not archived, when the wall-clock date moves on.
type DayStats struct {
	Date         string          `json:"date"` // YYYY-MM-DD
	TotalSales   decimal.Decimal `json:"total_sales"`
	InvoiceCount int             `json:"invoice_count"`
}

// SalesState is the persisted portion of the sale ledger.
type SalesState struct {
	NextInvoiceNumber int       `json:"next_invoice_number"`
	InvoiceYear       int       `json:"invoice_year"`
	DayStats          *DayStats `json:"day_stats,omitempty"`
}

// ActionResult is the outcome every register operation reports to its
// caller. Failures and success-with-advisory (e.g. a low stock warning)
// both carry a Message the UI is expected to surface verbatim. Nothing in
// the register core is fatal; the caller can always retry.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
