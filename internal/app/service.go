package app

import (
	"context"

	"github.com/shopspring/decimal"

	"commerce-pos/internal/core"
)

// RegisterService is the single interface all UI adapters (web, register
// terminal) call. It decouples presentation from the POS core.
// Implementations must contain no fmt.Println, no ANSI codes, and no display
// logic of any kind.
//
// Domain outcomes (stock limits, unknown barcodes, empty hold slot) travel
// inside the results as core.ActionResult; the error return is reserved for
// infrastructure failures.
type RegisterService interface {
	// ListProducts returns the full catalog with live stock.
	ListProducts(ctx context.Context) (*ProductListResult, error)

	// SearchProducts matches active products by name, SKU, or barcode substring.
	SearchProducts(ctx context.Context, query string) (*ProductListResult, error)

	// GetCart returns the active cart.
	GetCart(ctx context.Context) (*CartResult, error)

	// AddItem adds quantity units of a catalog product to the cart.
	AddItem(ctx context.Context, req AddItemRequest) (*CartResult, error)

	// AddManualItem adds an ad-hoc item that bypasses stock tracking.
	AddManualItem(ctx context.Context, req ManualItemRequest) (*CartResult, error)

	// UpdateQuantity sets a line's quantity; zero or below removes the line.
	UpdateQuantity(ctx context.Context, productID string, quantity decimal.Decimal) (*CartResult, error)

	// UpdateItemDiscount sets a line's currency discount.
	UpdateItemDiscount(ctx context.Context, productID string, discount decimal.Decimal) (*CartResult, error)

	// RemoveItem deletes a line.
	RemoveItem(ctx context.Context, productID string) (*CartResult, error)

	// SetCustomer attaches (or with nil detaches) the bill's customer.
	SetCustomer(ctx context.Context, customer *core.Customer) (*CartResult, error)

	// SetDiscount sets the bill-level discount.
	SetDiscount(ctx context.Context, amount decimal.Decimal, discountType core.DiscountType) (*CartResult, error)

	// SetCouponCode records an opaque coupon label on the bill.
	SetCouponCode(ctx context.Context, code string) (*CartResult, error)

	// ClearCart abandons the active cart.
	ClearCart(ctx context.Context) (*CartResult, error)

	// HoldCart parks the cart in the single hold slot, overwriting silently.
	HoldCart(ctx context.Context) (*CartResult, error)

	// RecallHeldCart restores the parked cart and empties the slot.
	RecallHeldCart(ctx context.Context) (*CartResult, error)

	// CompleteSale finalizes payment: stock commit, sale ledger record,
	// cart reset. The result carries the invoice-shaped sale for rendering.
	CompleteSale(ctx context.Context) (*SaleResult, error)

	// Scan resolves a barcode from any source (hardware, camera, typed) and
	// adds the matching item to the cart.
	Scan(ctx context.Context, code string) (*CartResult, error)

	// CreateLabel persists a manual label and returns it with its printable
	// barcode.
	CreateLabel(ctx context.Context, req CreateLabelRequest) (*LabelResult, error)

	// StockAlerts returns undismissed alerts.
	StockAlerts(ctx context.Context) (*AlertListResult, error)

	// DismissAlert marks one alert dismissed.
	DismissAlert(ctx context.Context, alertID string) error

	// RestockProduct adds incoming stock and clears the product's alerts
	// once above threshold.
	RestockProduct(ctx context.Context, productID string, quantity decimal.Decimal) (*ProductResult, error)

	// UpdateStock sets a product's absolute stock level.
	UpdateStock(ctx context.Context, productID string, quantity decimal.Decimal) (*ProductResult, error)

	// LowStockProducts lists products with stock in (0, threshold].
	LowStockProducts(ctx context.Context) (*ProductListResult, error)

	// OutOfStockProducts lists products with zero stock.
	OutOfStockProducts(ctx context.Context) (*ProductListResult, error)

	// TodaySummary returns today's revenue and invoice count plus a preview
	// of the next invoice number.
	TodaySummary(ctx context.Context) (*SummaryResult, error)
}
