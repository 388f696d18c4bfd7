package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"commerce-pos/internal/core"
)

// registerService is the concrete RegisterService over the POS core.
type registerService struct {
	inventory core.InventoryService
	cart      *core.CartService
	sales     *core.SalesService
	labels    *core.LabelService
	resolver  *core.ScanResolver
}

// NewRegisterService wires the application service over the core services.
func NewRegisterService(
	inventory core.InventoryService,
	cart *core.CartService,
	sales *core.SalesService,
	labels *core.LabelService,
	resolver *core.ScanResolver,
) RegisterService {
	return &registerService{
		inventory: inventory,
		cart:      cart,
		sales:     sales,
		labels:    labels,
		resolver:  resolver,
	}
}

func (s *registerService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	return &ProductListResult{Products: s.inventory.Products()}, nil
}

func (s *registerService) SearchProducts(ctx context.Context, query string) (*ProductListResult, error) {
	return &ProductListResult{Products: s.inventory.SearchProducts(query)}, nil
}

// cartResult snapshots the cart after an operation.
func (s *registerService) cartResult(res core.ActionResult) *CartResult {
	return &CartResult{
		Cart:     s.cart.Cart(),
		HeldCart: s.cart.HasHeldCart(),
		Result:   res,
	}
}

func (s *registerService) GetCart(ctx context.Context) (*CartResult, error) {
	return s.cartResult(core.ActionResult{Success: true}), nil
}

func (s *registerService) AddItem(ctx context.Context, req AddItemRequest) (*CartResult, error) {
	product, ok := s.inventory.GetProduct(req.ProductID)
	if !ok {
		return s.cartResult(core.ActionResult{Success: false, Message: "Product not found"}), nil
	}
	qty := req.Quantity
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}
	if !product.IsLoose && !qty.IsInteger() {
		return s.cartResult(core.ActionResult{Success: false, Message: "Quantity must be a whole number"}), nil
	}
	return s.cartResult(s.cart.AddItem(product, qty)), nil
}

func (s *registerService) AddManualItem(ctx context.Context, req ManualItemRequest) (*CartResult, error) {
	res := s.cart.AddManualItem(core.ManualItemInput{
		Name:         req.Name,
		Unit:         req.Unit,
		PricePerUnit: req.PricePerUnit,
		Quantity:     req.Quantity,
		TaxRate:      req.TaxRate,
	})
	return s.cartResult(res), nil
}

func (s *registerService) UpdateQuantity(ctx context.Context, productID string, quantity decimal.Decimal) (*CartResult, error) {
	return s.cartResult(s.cart.UpdateQuantity(productID, quantity)), nil
}

func (s *registerService) UpdateItemDiscount(ctx context.Context, productID string, discount decimal.Decimal) (*CartResult, error) {
	s.cart.UpdateItemDiscount(productID, discount)
	return s.cartResult(core.ActionResult{Success: true}), nil
}

func (s *registerService) RemoveItem(ctx context.Context, productID string) (*CartResult, error) {
	s.cart.RemoveItem(productID)
	return s.cartResult(core.ActionResult{Success: true}), nil
}

func (s *registerService) SetCustomer(ctx context.Context, customer *core.Customer) (*CartResult, error) {
	s.cart.SetCustomer(customer)
	return s.cartResult(core.ActionResult{Success: true}), nil
}

func (s *registerService) SetDiscount(ctx context.Context, amount decimal.Decimal, discountType core.DiscountType) (*CartResult, error) {
	if discountType != core.DiscountPercentage && discountType != core.DiscountFixed {
		return nil, fmt.Errorf("unknown discount type %q", discountType)
	}
	s.cart.SetDiscount(amount, discountType)
	return s.cartResult(core.ActionResult{Success: true}), nil
}

func (s *registerService) SetCouponCode(ctx context.Context, code string) (*CartResult, error) {
	s.cart.SetCouponCode(code)
	return s.cartResult(core.ActionResult{Success: true}), nil
}

func (s *registerService) ClearCart(ctx context.Context) (*CartResult, error) {
	s.cart.ClearCart()
	return s.cartResult(core.ActionResult{Success: true}), nil
}

func (s *registerService) HoldCart(ctx context.Context) (*CartResult, error) {
	if !s.cart.HoldCart() {
		return s.cartResult(core.ActionResult{Success: false, Message: "Cannot hold an empty cart"}), nil
	}
	return s.cartResult(core.ActionResult{Success: true, Message: "Cart held"}), nil
}

func (s *registerService) RecallHeldCart(ctx context.Context) (*CartResult, error) {
	if !s.cart.RecallHeldCart() {
		return s.cartResult(core.ActionResult{Success: false, Message: "No held cart to recall"}), nil
	}
	return s.cartResult(core.ActionResult{Success: true, Message: "Held cart recalled"}), nil
}

func (s *registerService) CompleteSale(ctx context.Context) (*SaleResult, error) {
	sale, res := s.cart.CompleteSale(ctx)
	return &SaleResult{Sale: sale, Result: res}, nil
}

func (s *registerService) Scan(ctx context.Context, code string) (*CartResult, error) {
	return s.cartResult(s.resolver.HandleBarcodeScan(ctx, code)), nil
}

func (s *registerService) CreateLabel(ctx context.Context, req CreateLabelRequest) (*LabelResult, error) {
	label, err := s.labels.CreateLabel(ctx, core.LabelInput{
		ProductName:  req.ProductName,
		Unit:         req.Unit,
		PricePerUnit: req.PricePerUnit,
		Weight:       req.Weight,
		TaxRate:      req.TaxRate,
	})
	if err != nil {
		return nil, err
	}
	return &LabelResult{Label: label, Barcode: core.EncodeManualBarcode(label.ID)}, nil
}

func (s *registerService) StockAlerts(ctx context.Context) (*AlertListResult, error) {
	return &AlertListResult{Alerts: s.inventory.GetActiveAlerts()}, nil
}

func (s *registerService) DismissAlert(ctx context.Context, alertID string) error {
	s.inventory.DismissAlert(alertID)
	return nil
}

func (s *registerService) RestockProduct(ctx context.Context, productID string, quantity decimal.Decimal) (*ProductResult, error) {
	if _, ok := s.inventory.GetProduct(productID); !ok {
		return nil, fmt.Errorf("product %s not found", productID)
	}
	s.inventory.RestockProduct(productID, quantity)
	product, _ := s.inventory.GetProduct(productID)
	return &ProductResult{Product: product}, nil
}

func (s *registerService) UpdateStock(ctx context.Context, productID string, quantity decimal.Decimal) (*ProductResult, error) {
	if _, ok := s.inventory.GetProduct(productID); !ok {
		return nil, fmt.Errorf("product %s not found", productID)
	}
	s.inventory.UpdateStock(productID, quantity)
	product, _ := s.inventory.GetProduct(productID)
	return &ProductResult{Product: product}, nil
}

func (s *registerService) LowStockProducts(ctx context.Context) (*ProductListResult, error) {
	return &ProductListResult{Products: s.inventory.GetLowStockProducts()}, nil
}

func (s *registerService) OutOfStockProducts(ctx context.Context) (*ProductListResult, error) {
	return &ProductListResult{Products: s.inventory.GetOutOfStockProducts()}, nil
}

func (s *registerService) TodaySummary(ctx context.Context) (*SummaryResult, error) {
	return &SummaryResult{
		Date:              time.Now().Format("2006-01-02"),
		TotalSales:        s.sales.TodaySales(),
		InvoiceCount:      s.sales.TodayInvoiceCount(),
		NextInvoiceNumber: s.sales.NextInvoiceNumber(),
		LowStockCount:     len(s.inventory.GetLowStockProducts()),
		OutOfStockCount:   len(s.inventory.GetOutOfStockProducts()),
	}, nil
}
