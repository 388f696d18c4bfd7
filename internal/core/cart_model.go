package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// CartItem is one line on the active bill. Product is a snapshot captured
// at add time, not a live reference; stock checks always go back to the
// InventoryService.
//
// Line arithmetic invariants:
//
//	taxAmount = (unitPrice × quantity − discountAmount) × taxRate / 100
//	total     = (unitPrice × quantity − discountAmount) + taxAmount
type CartItem struct {
	ProductID      string          `json:"product_id"`
	Product        Product         `json:"product"`
	Quantity       decimal.Decimal `json:"quantity"` // fractional for loose goods
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"` // currency, not percent
	TaxRate        decimal.Decimal `json:"tax_rate"`        // percent
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

// Cart is the active bill: ordered line items (insertion order matters for
// display), an optional customer, a bill-level discount and an opaque coupon
// code. Subtotal/TaxAmount/Total are derived by the CartService.
type Cart struct {
	Items          []CartItem      `json:"items"`
	Customer       *Customer       `json:"customer,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	DiscountType   DiscountType    `json:"discount_type"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	CouponCode     string          `json:"coupon_code,omitempty"`
}

// clone returns a deep copy of the cart. Items are value structs, so copying
// the slice is enough; the customer pointer is re-boxed.
func (c Cart) clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	if c.Customer != nil {
		cust := *c.Customer
		out.Customer = &cust
	}
	return out
}

// emptyCart returns a fresh cart with a fixed-type zero discount, matching
// the register's reset state.
func emptyCart() Cart {
	return Cart{
		Items:          []CartItem{},
		DiscountType:   DiscountFixed,
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxAmount:      decimal.Zero,
		Total:          decimal.Zero,
	}
}

// CompletedSale is what CompleteSale hands to invoice rendering and the
// reporting surface: the invoice number assigned by the sale ledger and the
// cart exactly as it was at payment time.
type CompletedSale struct {
	InvoiceNumber string    `json:"invoice_number"`
	Cart          Cart      `json:"cart"`
	CompletedAt   time.Time `json:"completed_at"`
}
