package app

import (
	"github.com/shopspring/decimal"

	"commerce-pos/internal/core"
)

// ProductListResult is returned by catalog listings.
type ProductListResult struct {
	Products []core.Product
}

// ProductResult is returned by single-product stock operations.
type ProductResult struct {
	Product core.Product
}

// CartResult is returned by every cart mutation: the cart after the
// operation plus the operation's outcome. Result.Message carries both
// failures and advisories (e.g. low stock warnings).
type CartResult struct {
	Cart     core.Cart
	HeldCart bool
	Result   core.ActionResult
}

// SaleResult is returned by CompleteSale. Sale is nil when the completion
// was rejected.
type SaleResult struct {
	Sale   *core.CompletedSale
	Result core.ActionResult
}

// LabelResult is returned by CreateLabel. Barcode is the MANUAL-* code to
// print.
type LabelResult struct {
	Label   core.ManualLabel
	Barcode string
}

// AlertListResult is returned by StockAlerts.
type AlertListResult struct {
	Alerts []core.StockAlert
}

// SummaryResult is returned by TodaySummary.
type SummaryResult struct {
	Date              string
	TotalSales        decimal.Decimal
	InvoiceCount      int
	NextInvoiceNumber string
	LowStockCount     int
	OutOfStockCount   int
}
