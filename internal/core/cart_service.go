package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ManualProductPrefix marks synthetic products created for ad-hoc items.
// CompleteSale skips stock deduction for lines carrying it.
const ManualProductPrefix = "manual-"

// manualStockSentinel is the effectively-unlimited stock a synthetic manual
// product reports, so quantity checks never reject it.
var manualStockSentinel = decimal.NewFromInt(9999)

var hundred = decimal.NewFromInt(100)

// CartService is the register's cart engine: a single active cart plus at
// most one held cart. Every stock-sensitive operation re-reads the live
// product from the InventoryService rather than trusting the snapshot a
// caller passes in. All outcomes are ActionResults; the service never
// panics and never returns an error from cart mutation.
type CartService struct {
	mu        sync.Mutex
	inventory InventoryService
	sales     *SalesService
	cart      Cart
	heldCart  *Cart
}

// NewCartService wires the engine to its inventory ledger and sale ledger.
func NewCartService(inventory InventoryService, sales *SalesService) *CartService {
	return &CartService{
		inventory: inventory,
		sales:     sales,
		cart:      emptyCart(),
	}
}

// Cart returns a deep snapshot of the active cart.
func (s *CartService) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.clone()
}

// HasHeldCart reports whether the hold slot is occupied.
func (s *CartService) HasHeldCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heldCart != nil
}

// GetAvailableStock is live stock minus what the cart already holds,
// floored at zero.
func (s *CartService) GetAvailableStock(productID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.inventory.GetProduct(productID)
	if !ok {
		return decimal.Zero
	}
	inCart := decimal.Zero
	if idx := s.lineIndexLocked(productID); idx >= 0 {
		inCart = s.cart.Items[idx].Quantity
	}
	available := product.StockQuantity.Sub(inCart)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// AddItem puts quantity units of a product on the bill. The product
// argument may be stale; stock is validated against the inventory ledger's
// current state. Success may still carry a low-stock advisory message.
func (s *CartService) AddItem(product Product, quantity decimal.Decimal) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !quantity.IsPositive() {
		return ActionResult{Success: false, Message: "Quantity must be greater than zero"}
	}

	current, ok := s.inventory.GetProduct(product.ID)
	if !ok {
		return ActionResult{Success: false, Message: "Product not found"}
	}

	idx := s.lineIndexLocked(product.ID)
	currentInCart := decimal.Zero
	if idx >= 0 {
		currentInCart = s.cart.Items[idx].Quantity
	}
	requestedTotal := currentInCart.Add(quantity)

	if requestedTotal.GreaterThan(current.StockQuantity) {
		available := current.StockQuantity.Sub(currentInCart)
		if !available.IsPositive() {
			return ActionResult{Success: false, Message: fmt.Sprintf("%s is out of stock", product.Name)}
		}
		return ActionResult{Success: false, Message: fmt.Sprintf("Only %s more %s available", available, product.Name)}
	}

	if idx >= 0 {
		if res := s.updateQuantityLocked(product.ID, requestedTotal); !res.Success {
			return res
		}
	} else {
		taxAmount := current.BasePrice.Mul(quantity).Mul(current.TaxRate).Div(hundred)
		s.cart.Items = append(s.cart.Items, CartItem{
			ProductID:      product.ID,
			Product:        current,
			Quantity:       quantity,
			UnitPrice:      current.BasePrice,
			DiscountAmount: decimal.Zero,
			TaxRate:        current.TaxRate,
			TaxAmount:      taxAmount,
			Total:          current.BasePrice.Mul(quantity).Add(taxAmount),
		})
		s.recalcTotalsLocked()
	}

	remaining := current.StockQuantity.Sub(requestedTotal)
	if remaining.IsPositive() && remaining.LessThanOrEqual(current.LowStockThreshold) {
		return ActionResult{
			Success: true,
			Message: fmt.Sprintf("Low stock warning: Only %s %s left", remaining, product.Name),
		}
	}
	return ActionResult{Success: true}
}

// ManualItemInput describes an ad-hoc item typed or scanned at the counter.
type ManualItemInput struct {
	Name         string
	Unit         string
	PricePerUnit decimal.Decimal
	Quantity     decimal.Decimal
	TaxRate      decimal.Decimal
}

// AddManualItem always succeeds: it synthesizes an unlimited-stock product
// under the manual- prefix so completion skips stock deduction for it.
func (s *CartService) AddManualItem(in ManualItemInput) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	productID := ManualProductPrefix + uuid.NewString()
	synthetic := Product{
		ID:            productID,
		Name:          in.Name,
		SKU:           fmt.Sprintf("MANUAL-%d", now.UnixMilli()),
		Unit:          in.Unit,
		BasePrice:     in.PricePerUnit,
		TaxRate:       in.TaxRate,
		StockQuantity: manualStockSentinel,
		IsActive:      true,
		CreatedAt:     now,
	}
	taxAmount := in.PricePerUnit.Mul(in.Quantity).Mul(in.TaxRate).Div(hundred)
	s.cart.Items = append(s.cart.Items, CartItem{
		ProductID:      productID,
		Product:        synthetic,
		Quantity:       in.Quantity,
		UnitPrice:      in.PricePerUnit,
		DiscountAmount: decimal.Zero,
		TaxRate:        in.TaxRate,
		TaxAmount:      taxAmount,
		Total:          in.PricePerUnit.Mul(in.Quantity).Add(taxAmount),
	})
	s.recalcTotalsLocked()
	return ActionResult{Success: true}
}

// RemoveItem deletes the product's line, if present.
func (s *CartService) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeItemLocked(productID)
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the line.
// The new quantity is validated against the product's total live stock.
func (s *CartService) UpdateQuantity(productID string, quantity decimal.Decimal) ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateQuantityLocked(productID, quantity)
}

func (s *CartService) updateQuantityLocked(productID string, quantity decimal.Decimal) ActionResult {
	if !quantity.IsPositive() {
		s.removeItemLocked(productID)
		return ActionResult{Success: true}
	}

	product, ok := s.inventory.GetProduct(productID)
	if !ok {
		return ActionResult{Success: false, Message: "Product not found"}
	}
	if quantity.GreaterThan(product.StockQuantity) {
		return ActionResult{
			Success: false,
			Message: fmt.Sprintf("Only %s %s available", product.StockQuantity, product.Name),
		}
	}

	idx := s.lineIndexLocked(productID)
	if idx < 0 {
		return ActionResult{Success: false, Message: "Product not found"}
	}
	item := &s.cart.Items[idx]
	subtotal := item.UnitPrice.Mul(quantity).Sub(item.DiscountAmount)
	item.Quantity = quantity
	item.TaxAmount = subtotal.Mul(item.TaxRate).Div(hundred)
	item.Total = subtotal.Add(item.TaxAmount)

	s.recalcTotalsLocked()
	return ActionResult{Success: true}
}

// UpdateItemDiscount sets a line's currency discount and recomputes the
// line with discount applied before tax.
func (s *CartService) UpdateItemDiscount(productID string, discount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.lineIndexLocked(productID)
	if idx < 0 {
		return
	}
	item := &s.cart.Items[idx]
	subtotal := item.UnitPrice.Mul(item.Quantity).Sub(discount)
	item.DiscountAmount = discount
	item.TaxAmount = subtotal.Mul(item.TaxRate).Div(hundred)
	item.Total = subtotal.Add(item.TaxAmount)
	s.recalcTotalsLocked()
}

// SetCustomer attaches or detaches the bill's customer.
func (s *CartService) SetCustomer(customer *Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if customer == nil {
		s.cart.Customer = nil
		return
	}
	c := *customer
	s.cart.Customer = &c
}

// SetDiscount sets the bill-level discount. Percentage discounts apply to
// the subtotal; either kind is deducted after tax in the totals formula.
func (s *CartService) SetDiscount(amount decimal.Decimal, discountType DiscountType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.DiscountAmount = amount
	s.cart.DiscountType = discountType
	s.recalcTotalsLocked()
}

// SetCouponCode records an opaque coupon label. No validation or discount
// logic is attached to it here.
func (s *CartService) SetCouponCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.CouponCode = code
}

// ClearCart resets the active cart. The held cart, if any, survives.
func (s *CartService) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = emptyCart()
}

// CompleteSale finalizes payment: re-validate every non-manual line against
// live stock, then deduct stock, record the sale in the sale ledger, and
// reset the cart. Validation failures abort with no mutation. The two
// phases are not atomic against outside stock mutation; the register model
// is a single active session.
func (s *CartService) CompleteSale(ctx context.Context) (*CompletedSale, ActionResult) {
	s.mu.Lock()
	if len(s.cart.Items) == 0 {
		s.mu.Unlock()
		return nil, ActionResult{Success: false, Message: "Cart is empty"}
	}

	for _, item := range s.cart.Items {
		if strings.HasPrefix(item.ProductID, ManualProductPrefix) {
			continue
		}
		product, ok := s.inventory.GetProduct(item.ProductID)
		if !ok {
			s.mu.Unlock()
			return nil, ActionResult{Success: false, Message: fmt.Sprintf("Product %s not found", item.Product.Name)}
		}
		if product.StockQuantity.LessThan(item.Quantity) {
			s.mu.Unlock()
			return nil, ActionResult{
				Success: false,
				Message: fmt.Sprintf("Insufficient stock for %s. Available: %s", product.Name, product.StockQuantity),
			}
		}
	}

	for _, item := range s.cart.Items {
		if strings.HasPrefix(item.ProductID, ManualProductPrefix) {
			continue
		}
		s.inventory.DeductStock(item.ProductID, item.Quantity)
	}

	completed := &CompletedSale{
		InvoiceNumber: s.sales.NextInvoiceNumber(),
		Cart:          s.cart.clone(),
		CompletedAt:   time.Now(),
	}
	total := s.cart.Total
	s.cart = emptyCart()
	s.mu.Unlock()

	s.sales.RecordSale(ctx, total)
	return completed, ActionResult{Success: true}
}

// HoldCart parks the active cart in the single hold slot and resets the
// register. An occupied slot is overwritten silently. Fails only on an
// empty cart.
func (s *CartService) HoldCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart.Items) == 0 {
		return false
	}
	held := s.cart.clone()
	s.heldCart = &held
	s.cart = emptyCart()
	return true
}

// RecallHeldCart restores the parked cart into the active slot and empties
// the hold slot (single use). Each line's product reference is re-resolved
// against the current inventory ledger; non-manual lines whose product no
// longer exists are dropped. Manual lines keep their snapshot.
func (s *CartService) RecallHeldCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.heldCart == nil || len(s.heldCart.Items) == 0 {
		return false
	}

	restored := s.heldCart.clone()
	items := restored.Items[:0]
	for _, item := range restored.Items {
		if strings.HasPrefix(item.ProductID, ManualProductPrefix) {
			items = append(items, item)
			continue
		}
		product, ok := s.inventory.GetProduct(item.ProductID)
		if !ok {
			continue
		}
		item.Product = product
		items = append(items, item)
	}
	restored.Items = items

	s.cart = restored
	s.heldCart = nil
	return true
}

// recalcTotalsLocked applies the bill totals algorithm:
//
//	subtotal     = Σ(unitPrice × qty − lineDiscount)
//	taxAmount    = Σ(line tax)                      // taxed at line level
//	billDiscount = percentage ? subtotal × d / 100 : d
//	total        = max(0, subtotal − billDiscount + taxAmount)
//
// The bill discount never feeds back into the tax basis.
func (s *CartService) recalcTotalsLocked() {
	subtotal := decimal.Zero
	taxAmount := decimal.Zero
	for _, item := range s.cart.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(item.Quantity).Sub(item.DiscountAmount))
		taxAmount = taxAmount.Add(item.TaxAmount)
	}

	billDiscount := s.cart.DiscountAmount
	if s.cart.DiscountType == DiscountPercentage {
		billDiscount = subtotal.Mul(s.cart.DiscountAmount).Div(hundred)
	}

	total := subtotal.Sub(billDiscount).Add(taxAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	s.cart.Subtotal = subtotal
	s.cart.TaxAmount = taxAmount
	s.cart.Total = total
}

func (s *CartService) removeItemLocked(productID string) {
	idx := s.lineIndexLocked(productID)
	if idx < 0 {
		return
	}
	s.cart.Items = append(s.cart.Items[:idx], s.cart.Items[idx+1:]...)
	s.recalcTotalsLocked()
}

func (s *CartService) lineIndexLocked(productID string) int {
	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
