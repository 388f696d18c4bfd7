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

// InventoryService is the single authoritative view of per-product stock and
// the alerts derived from it. Stock is mutated only through UpdateStock /
// DeductStock / RestockProduct, which keep the stock-nonnegative invariant
// and maintain at most one undismissed alert per product.
//
// Alert lifecycle asymmetry, preserved from the register's behavior:
// UpdateStock never removes an alert when stock rises above the threshold;
// only RestockProduct clears alerts for the product.
type InventoryService interface {
	// GetProduct returns the current product state, stock included.
	GetProduct(id string) (Product, bool)
	// FindByBarcode matches a literal barcode or SKU.
	FindByBarcode(code string) (Product, bool)
	// Products returns a snapshot of the catalog in load order.
	Products() []Product
	// SearchProducts matches active products by name, SKU, or barcode substring.
	SearchProducts(query string) []Product

	// UpdateStock sets absolute stock to max(0, quantity) and re-derives the
	// product's alert state.
	UpdateStock(id string, quantity decimal.Decimal)
	// DeductStock subtracts qty. It fails (false, no mutation) when the
	// product is unknown or the result would go negative.
	DeductStock(id string, qty decimal.Decimal) bool
	// RestockProduct adds qty and clears all of the product's alerts, active
	// or dismissed, once stock exceeds the threshold.
	RestockProduct(id string, qty decimal.Decimal)

	// CheckLowStock reports whether stock is in (0, threshold].
	CheckLowStock(id string) bool
	GetLowStockProducts() []Product
	GetOutOfStockProducts() []Product

	GetActiveAlerts() []StockAlert
	// DismissAlert marks an alert dismissed; the record is kept until a
	// restock above threshold removes it.
	DismissAlert(alertID string)
	ClearDismissedAlerts()

	// OnStockChanged registers a listener invoked after every stock mutation
	// with the product's post-mutation state.
	OnStockChanged(fn func(Product))
}

type inventoryService struct {
	mu        sync.RWMutex
	order     []string
	products  map[string]*Product
	alerts    []StockAlert
	listeners []func(Product)
}

// NewInventoryService loads the catalog from source and returns the ledger
// over it. The source is read exactly once; all later reads and writes go
// through the in-memory state.
func NewInventoryService(ctx context.Context, source ProductSource) (InventoryService, error) {
	catalog, err := source.LoadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}

	s := &inventoryService{
		products: make(map[string]*Product, len(catalog)),
		order:    make([]string, 0, len(catalog)),
	}
	for i := range catalog {
		p := catalog[i]
		if _, dup := s.products[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %s in catalog", p.ID)
		}
		s.products[p.ID] = &p
		s.order = append(s.order, p.ID)
	}
	return s, nil
}

func (s *inventoryService) GetProduct(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

func (s *inventoryService) FindByBarcode(code string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		p := s.products[id]
		if p.Barcode == code || p.SKU == code {
			return *p, true
		}
	}
	return Product{}, false
}

func (s *inventoryService) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.products[id])
	}
	return out
}

func (s *inventoryService) SearchProducts(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, id := range s.order {
		p := s.products[id]
		if !p.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) ||
			(p.Barcode != "" && strings.Contains(strings.ToLower(p.Barcode), q)) {
			out = append(out, *p)
		}
	}
	return out
}

func (s *inventoryService) UpdateStock(id string, quantity decimal.Decimal) {
	s.mu.Lock()
	changed, ok := s.updateStockLocked(id, quantity)
	s.mu.Unlock()
	if ok {
		s.notify(changed)
	}
}

// updateStockLocked sets stock to max(0, quantity) and re-derives the
// product's alert state. Caller holds the write lock; the returned snapshot
// is for listener notification after unlock.
func (s *inventoryService) updateStockLocked(id string, quantity decimal.Decimal) (Product, bool) {
	p, ok := s.products[id]
	if !ok {
		return Product{}, false
	}
	if quantity.IsNegative() {
		quantity = decimal.Zero
	}
	p.StockQuantity = quantity

	if p.StockQuantity.LessThanOrEqual(p.LowStockThreshold) {
		idx := -1
		for i := range s.alerts {
			if s.alerts[i].ProductID == id && !s.alerts[i].Dismissed {
				idx = i
				break
			}
		}
		if idx == -1 {
			s.alerts = append(s.alerts, newStockAlert(*p))
		} else {
			s.alerts[idx].CurrentStock = p.StockQuantity
			s.alerts[idx].Type = alertTypeFor(p.StockQuantity)
		}
	}
	// Stock above threshold leaves stale alerts in place; only
	// RestockProduct removes them.
	return *p, true
}

func (s *inventoryService) DeductStock(id string, qty decimal.Decimal) bool {
	s.mu.Lock()
	p, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	newQty := p.StockQuantity.Sub(qty)
	if newQty.IsNegative() {
		s.mu.Unlock()
		return false
	}
	changed, _ := s.updateStockLocked(id, newQty)
	s.mu.Unlock()
	s.notify(changed)
	return true
}

func (s *inventoryService) RestockProduct(id string, qty decimal.Decimal) {
	s.mu.Lock()
	p, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	newQty := p.StockQuantity.Add(qty)
	changed, _ := s.updateStockLocked(id, newQty)
	if newQty.GreaterThan(p.LowStockThreshold) {
		kept := s.alerts[:0]
		for _, a := range s.alerts {
			if a.ProductID != id {
				kept = append(kept, a)
			}
		}
		s.alerts = kept
	}
	s.mu.Unlock()
	s.notify(changed)
}

func (s *inventoryService) CheckLowStock(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return false
	}
	return p.StockQuantity.IsPositive() && p.StockQuantity.LessThanOrEqual(p.LowStockThreshold)
}

func (s *inventoryService) GetLowStockProducts() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, id := range s.order {
		p := s.products[id]
		if p.StockQuantity.IsPositive() && p.StockQuantity.LessThanOrEqual(p.LowStockThreshold) {
			out = append(out, *p)
		}
	}
	return out
}

func (s *inventoryService) GetOutOfStockProducts() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, id := range s.order {
		p := s.products[id]
		if p.StockQuantity.IsZero() {
			out = append(out, *p)
		}
	}
	return out
}

func (s *inventoryService) GetActiveAlerts() []StockAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []StockAlert
	for _, a := range s.alerts {
		if !a.Dismissed {
			out = append(out, a)
		}
	}
	return out
}

func (s *inventoryService) DismissAlert(alertID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == alertID {
			s.alerts[i].Dismissed = true
		}
	}
}

func (s *inventoryService) ClearDismissedAlerts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.alerts[:0]
	for _, a := range s.alerts {
		if !a.Dismissed {
			kept = append(kept, a)
		}
	}
	s.alerts = kept
}

func (s *inventoryService) OnStockChanged(fn func(Product)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// notify runs listeners outside the service lock so they may call back in.
func (s *inventoryService) notify(p Product) {
	s.mu.RLock()
	listeners := make([]func(Product), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(p)
	}
}

func newStockAlert(p Product) StockAlert {
	return StockAlert{
		ID:           uuid.NewString(),
		ProductID:    p.ID,
		ProductName:  p.Name,
		CurrentStock: p.StockQuantity,
		Threshold:    p.LowStockThreshold,
		Type:         alertTypeFor(p.StockQuantity),
		Timestamp:    time.Now(),
	}
}

func alertTypeFor(stock decimal.Decimal) AlertType {
	if stock.IsZero() {
		return AlertOutOfStock
	}
	return AlertLowStock
}
