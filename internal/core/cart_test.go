package core_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"commerce-pos/internal/core"
	"commerce-pos/internal/store/memory"
)

type cartFixture struct {
	inventory core.InventoryService
	sales     *core.SalesService
	cart      *core.CartService
	store     *memory.Store
}

func setupCart(t *testing.T) *cartFixture {
	t.Helper()
	store := memory.NewStore(testCatalog())
	ctx := context.Background()

	inventory, err := core.NewInventoryService(ctx, store)
	if err != nil {
		t.Fatalf("NewInventoryService: %v", err)
	}
	sales, err := core.NewSalesService(ctx, store)
	if err != nil {
		t.Fatalf("NewSalesService: %v", err)
	}
	sales.SetClock(func() time.Time { return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) })

	return &cartFixture{
		inventory: inventory,
		sales:     sales,
		cart:      core.NewCartService(inventory, sales),
		store:     store,
	}
}

func (f *cartFixture) product(t *testing.T, id string) core.Product {
	t.Helper()
	p, ok := f.inventory.GetProduct(id)
	if !ok {
		t.Fatalf("product %s not in catalog", id)
	}
	return p
}

func TestCart_TotalsFormula(t *testing.T) {
	f := setupCart(t)

	// price 100 x2 @ 18% plus price 50 x1 @ 5% with a 10 line discount,
	// then a 10% bill discount applied after tax.
	if res := f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(2)); !res.Success {
		t.Fatalf("AddItem p1: %s", res.Message)
	}
	if res := f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(1)); !res.Success {
		t.Fatalf("AddItem p2: %s", res.Message)
	}
	f.cart.UpdateItemDiscount("p2", decimal.NewFromInt(10))
	f.cart.SetDiscount(decimal.NewFromInt(10), core.DiscountPercentage)

	cart := f.cart.Cart()
	if got := cart.Subtotal.String(); got != "240" {
		t.Errorf("expected subtotal 240, got %s", got)
	}
	if got := cart.TaxAmount.String(); got != "38" {
		t.Errorf("expected tax 38, got %s", got)
	}
	if got := cart.Total.String(); got != "254" {
		t.Errorf("expected total 254, got %s", got)
	}

	// Line breakdown: discount applies before tax on its own line.
	if got := cart.Items[0].TaxAmount.String(); got != "36" {
		t.Errorf("expected p1 line tax 36, got %s", got)
	}
	if got := cart.Items[1].TaxAmount.String(); got != "2" {
		t.Errorf("expected p2 line tax 2, got %s", got)
	}
	if got := cart.Items[1].Total.String(); got != "42" {
		t.Errorf("expected p2 line total 42, got %s", got)
	}
}

func TestCart_TotalClampsAtZero(t *testing.T) {
	f := setupCart(t)

	f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(1))
	f.cart.SetDiscount(decimal.NewFromInt(1000), core.DiscountFixed)

	if got := f.cart.Cart().Total; !got.IsZero() {
		t.Errorf("expected total clamped to 0, got %s", got)
	}
}

func TestCart_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	f := setupCart(t)

	for _, qty := range []decimal.Decimal{decimal.NewFromInt(-3), decimal.Zero} {
		res := f.cart.AddItem(f.product(t, "p1"), qty)
		if res.Success {
			t.Errorf("expected AddItem with quantity %s to fail", qty)
		}
		if res.Message != "Quantity must be greater than zero" {
			t.Errorf("unexpected message for quantity %s: %q", qty, res.Message)
		}
	}

	cart := f.cart.Cart()
	if len(cart.Items) != 0 {
		t.Fatalf("expected cart to stay empty, got %d lines", len(cart.Items))
	}
	if !cart.Total.IsZero() || !cart.Subtotal.IsZero() {
		t.Errorf("expected zero totals, got subtotal %s total %s", cart.Subtotal, cart.Total)
	}
}

func TestCart_AddItem_MergesExistingLine(t *testing.T) {
	f := setupCart(t)

	f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(1))
	f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(2))

	cart := f.cart.Cart()
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	if got := cart.Items[0].Quantity.String(); got != "3" {
		t.Errorf("expected quantity 3, got %s", got)
	}
}

func TestCart_AddItem_StockLimits(t *testing.T) {
	f := setupCart(t)

	// p2 has stock 5.
	if res := f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(3)); !res.Success {
		t.Fatalf("AddItem: %s", res.Message)
	}

	res := f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(5))
	if res.Success {
		t.Fatal("expected add past stock to fail")
	}
	if res.Message != "Only 2 more Washing Soap available" {
		t.Errorf("unexpected message: %s", res.Message)
	}

	// Fill to the limit, then nothing more is available.
	if res := f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(2)); !res.Success {
		t.Fatalf("AddItem to limit: %s", res.Message)
	}
	res = f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(1))
	if res.Success || res.Message != "Washing Soap is out of stock" {
		t.Errorf("expected out of stock rejection, got (%v, %s)", res.Success, res.Message)
	}

	// The cart never mutated past the limit.
	if got := f.cart.Cart().Items[0].Quantity.String(); got != "5" {
		t.Errorf("expected quantity 5, got %s", got)
	}
}

func TestCart_AddItem_UnknownProduct(t *testing.T) {
	f := setupCart(t)
	res := f.cart.AddItem(core.Product{ID: "ghost", Name: "Ghost"}, decimal.NewFromInt(1))
	if res.Success || res.Message != "Product not found" {
		t.Errorf("expected Product not found, got (%v, %s)", res.Success, res.Message)
	}
}

func TestCart_AddItem_LowStockAdvisory(t *testing.T) {
	f := setupCart(t)

	// p1: stock 10, threshold 3. Taking 8 leaves 2, inside the band.
	res := f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(8))
	if !res.Success {
		t.Fatalf("AddItem: %s", res.Message)
	}
	if res.Message != "Low stock warning: Only 2 Sunflower Oil 1L left" {
		t.Errorf("unexpected advisory: %s", res.Message)
	}

	// Taking the rest leaves 0: out of band, no advisory.
	res = f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(2))
	if !res.Success || res.Message != "" {
		t.Errorf("expected clean success, got (%v, %s)", res.Success, res.Message)
	}
}

func TestCart_AddItem_FractionalQuantity(t *testing.T) {
	f := setupCart(t)

	weight := decimal.RequireFromString("1.25")
	res := f.cart.AddItem(f.product(t, "loose-rice"), weight)
	if !res.Success {
		t.Fatalf("AddItem: %s", res.Message)
	}
	cart := f.cart.Cart()
	if got := cart.Items[0].Quantity.String(); got != "1.25" {
		t.Errorf("expected quantity 1.25, got %s", got)
	}
	// 80 x 1.25 = 100, 5% tax = 5.
	if got := cart.Items[0].Total.String(); got != "105" {
		t.Errorf("expected line total 105, got %s", got)
	}
}

func TestCart_RemoveItem_RestoresTotals(t *testing.T) {
	f := setupCart(t)

	f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(2))
	f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(1))
	f.cart.RemoveItem("p1")

	cart := f.cart.Cart()
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p2" {
		t.Fatalf("expected only p2 to remain, got %v", cart.Items)
	}
	if got := cart.Subtotal.String(); got != "50" {
		t.Errorf("expected subtotal 50, got %s", got)
	}

	f.cart.RemoveItem("p2")
	cart = f.cart.Cart()
	if len(cart.Items) != 0 || !cart.Total.IsZero() {
		t.Errorf("expected empty cart with zero total, got %d items, total %s", len(cart.Items), cart.Total)
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	f := setupCart(t)
	f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(1))

	t.Run("WithinStock", func(t *testing.T) {
		res := f.cart.UpdateQuantity("p2", decimal.NewFromInt(4))
		if !res.Success {
			t.Fatalf("UpdateQuantity: %s", res.Message)
		}
		if got := f.cart.Cart().Items[0].Quantity.String(); got != "4" {
			t.Errorf("expected quantity 4, got %s", got)
		}
	})

	t.Run("BeyondStockFails", func(t *testing.T) {
		res := f.cart.UpdateQuantity("p2", decimal.NewFromInt(6))
		if res.Success {
			t.Fatal("expected quantity beyond stock to fail")
		}
		if res.Message != "Only 5 Washing Soap available" {
			t.Errorf("unexpected message: %s", res.Message)
		}
	})

	t.Run("ZeroRemovesLine", func(t *testing.T) {
		res := f.cart.UpdateQuantity("p2", decimal.Zero)
		if !res.Success {
			t.Fatalf("UpdateQuantity to zero: %s", res.Message)
		}
		if got := len(f.cart.Cart().Items); got != 0 {
			t.Errorf("expected empty cart, got %d lines", got)
		}
	})
}

func TestCart_GetAvailableStock(t *testing.T) {
	f := setupCart(t)

	if got := f.cart.GetAvailableStock("p2"); got.String() != "5" {
		t.Errorf("expected 5 available, got %s", got)
	}
	f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(3))
	if got := f.cart.GetAvailableStock("p2"); got.String() != "2" {
		t.Errorf("expected 2 available with 3 in cart, got %s", got)
	}
	if got := f.cart.GetAvailableStock("missing"); !got.IsZero() {
		t.Errorf("expected 0 for unknown product, got %s", got)
	}
}

func TestCart_ManualItem(t *testing.T) {
	f := setupCart(t)

	res := f.cart.AddManualItem(core.ManualItemInput{
		Name:         "Jaggery",
		Unit:         "kg",
		PricePerUnit: decimal.NewFromInt(60),
		Quantity:     decimal.RequireFromString("0.5"),
		TaxRate:      decimal.NewFromInt(5),
	})
	if !res.Success {
		t.Fatalf("AddManualItem: %s", res.Message)
	}

	cart := f.cart.Cart()
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	item := cart.Items[0]
	if !strings.HasPrefix(item.ProductID, core.ManualProductPrefix) {
		t.Errorf("expected manual- product id, got %s", item.ProductID)
	}
	// 60 x 0.5 = 30, 5% tax = 1.5.
	if got := item.Total.String(); got != "31.5" {
		t.Errorf("expected line total 31.5, got %s", got)
	}
}

func TestCart_CompleteSale(t *testing.T) {
	f := setupCart(t)

	f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(3))
	sale, res := f.cart.CompleteSale(context.Background())
	if !res.Success {
		t.Fatalf("CompleteSale: %s", res.Message)
	}
	if sale.InvoiceNumber != "INV-2025-0001" {
		t.Errorf("expected INV-2025-0001, got %s", sale.InvoiceNumber)
	}
	// 100 x3 = 300 + 18% tax = 354.
	if got := sale.Cart.Total.String(); got != "354" {
		t.Errorf("expected sale total 354, got %s", got)
	}

	// Stock committed, cart reset, ledger advanced.
	p, _ := f.inventory.GetProduct("p1")
	if got := p.StockQuantity.String(); got != "7" {
		t.Errorf("expected stock 7 after sale, got %s", got)
	}
	if got := len(f.cart.Cart().Items); got != 0 {
		t.Errorf("expected empty cart after sale, got %d lines", got)
	}
	if got := f.sales.NextInvoiceNumber(); got != "INV-2025-0002" {
		t.Errorf("expected next invoice INV-2025-0002, got %s", got)
	}
	if got := f.sales.TodaySales(); got.String() != "354" {
		t.Errorf("expected today sales 354, got %s", got)
	}
}

func TestCart_CompleteSale_EmptyCart(t *testing.T) {
	f := setupCart(t)
	sale, res := f.cart.CompleteSale(context.Background())
	if res.Success || sale != nil {
		t.Fatal("expected empty cart completion to fail")
	}
	if res.Message != "Cart is empty" {
		t.Errorf("unexpected message: %s", res.Message)
	}
}

func TestCart_CompleteSale_RevalidatesStock(t *testing.T) {
	f := setupCart(t)

	f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(4))
	// Another actor drains the shelf between add and pay.
	f.inventory.UpdateStock("p2", decimal.NewFromInt(1))

	sale, res := f.cart.CompleteSale(context.Background())
	if res.Success || sale != nil {
		t.Fatal("expected completion to fail on stale stock")
	}
	if res.Message != "Insufficient stock for Washing Soap. Available: 1" {
		t.Errorf("unexpected message: %s", res.Message)
	}

	// Nothing was deducted and the cart survives for correction.
	p, _ := f.inventory.GetProduct("p2")
	if got := p.StockQuantity.String(); got != "1" {
		t.Errorf("expected stock untouched at 1, got %s", got)
	}
	if got := len(f.cart.Cart().Items); got != 1 {
		t.Errorf("expected cart preserved, got %d lines", got)
	}
}

func TestCart_CompleteSale_SkipsManualLines(t *testing.T) {
	f := setupCart(t)

	f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(1))
	f.cart.AddManualItem(core.ManualItemInput{
		Name:         "Loose Sweets",
		Unit:         "kg",
		PricePerUnit: decimal.NewFromInt(200),
		Quantity:     decimal.RequireFromString("0.250"),
	})

	_, res := f.cart.CompleteSale(context.Background())
	if !res.Success {
		t.Fatalf("CompleteSale: %s", res.Message)
	}

	// Only the catalog line touched inventory.
	p, _ := f.inventory.GetProduct("p1")
	if got := p.StockQuantity.String(); got != "9" {
		t.Errorf("expected stock 9, got %s", got)
	}
}

func TestCart_HoldAndRecall(t *testing.T) {
	f := setupCart(t)

	if f.cart.HoldCart() {
		t.Error("expected holding an empty cart to fail")
	}

	f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(2))
	if !f.cart.HoldCart() {
		t.Fatal("expected hold to succeed")
	}
	if got := len(f.cart.Cart().Items); got != 0 {
		t.Fatalf("expected active cart reset after hold, got %d lines", got)
	}
	if !f.cart.HasHeldCart() {
		t.Error("expected hold slot occupied")
	}

	// A new transaction runs while the first waits.
	f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(1))
	f.cart.ClearCart()

	if !f.cart.RecallHeldCart() {
		t.Fatal("expected recall to succeed")
	}
	cart := f.cart.Cart()
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p1" {
		t.Fatalf("expected recalled cart with p1, got %v", cart.Items)
	}
	if got := cart.Items[0].Quantity.String(); got != "2" {
		t.Errorf("expected quantity 2, got %s", got)
	}

	// The slot is single use.
	if f.cart.HasHeldCart() {
		t.Error("expected hold slot empty after recall")
	}
	if f.cart.RecallHeldCart() {
		t.Error("expected second recall to fail")
	}
}

func TestCart_Hold_OverwritesSilently(t *testing.T) {
	f := setupCart(t)

	f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(1))
	if !f.cart.HoldCart() {
		t.Fatal("first hold failed")
	}

	f.cart.AddItem(f.product(t, "p2"), decimal.NewFromInt(1))
	if !f.cart.HoldCart() {
		t.Fatal("second hold failed")
	}

	// Only the second cart survives.
	if !f.cart.RecallHeldCart() {
		t.Fatal("recall failed")
	}
	cart := f.cart.Cart()
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p2" {
		t.Errorf("expected the later hold to win, got %v", cart.Items)
	}
}

func TestCart_SnapshotIsolation(t *testing.T) {
	f := setupCart(t)
	f.cart.AddItem(f.product(t, "p1"), decimal.NewFromInt(1))

	snap := f.cart.Cart()
	snap.Items[0].Quantity = decimal.NewFromInt(99)

	if got := f.cart.Cart().Items[0].Quantity.String(); got != "1" {
		t.Errorf("expected snapshot mutation not to leak, got quantity %s", got)
	}
}

func TestCart_CustomerAndCoupon(t *testing.T) {
	f := setupCart(t)

	f.cart.SetCustomer(&core.Customer{ID: "c1", Name: "Walk-in"})
	f.cart.SetCouponCode("DIWALI10")

	cart := f.cart.Cart()
	if cart.Customer == nil || cart.Customer.Name != "Walk-in" {
		t.Errorf("expected customer Walk-in, got %+v", cart.Customer)
	}
	if cart.CouponCode != "DIWALI10" {
		t.Errorf("expected coupon DIWALI10, got %s", cart.CouponCode)
	}

	f.cart.SetCustomer(nil)
	if f.cart.Cart().Customer != nil {
		t.Error("expected customer detached")
	}
}
