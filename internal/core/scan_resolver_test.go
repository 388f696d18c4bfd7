package core_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"commerce-pos/internal/core"
)

func setupResolver(t *testing.T) (*core.ScanResolver, *cartFixture, *core.LabelService) {
	t.Helper()
	f := setupCart(t)
	labels := core.NewLabelService(f.store)
	return core.NewScanResolver(labels, f.inventory, f.cart), f, labels
}

func TestResolver_LiteralBarcode(t *testing.T) {
	r, f, _ := setupResolver(t)

	res := r.HandleBarcodeScan(context.Background(), "8901010101010")
	if !res.Success {
		t.Fatalf("scan: %s", res.Message)
	}
	if res.Message != "Sunflower Oil 1L added to cart" {
		t.Errorf("unexpected message: %s", res.Message)
	}
	cart := f.cart.Cart()
	if len(cart.Items) != 1 || cart.Items[0].Quantity.String() != "1" {
		t.Errorf("expected one unit of p1 in cart, got %v", cart.Items)
	}
}

func TestResolver_SKUFallback(t *testing.T) {
	r, f, _ := setupResolver(t)

	res := r.HandleBarcodeScan(context.Background(), "SOAP-01")
	if !res.Success {
		t.Fatalf("scan: %s", res.Message)
	}
	if got := f.cart.Cart().Items[0].ProductID; got != "p2" {
		t.Errorf("expected p2 in cart, got %s", got)
	}
}

func TestResolver_LooseBarcode(t *testing.T) {
	r, f, _ := setupResolver(t)

	code := core.EncodeLooseBarcode("loose-rice", decimal.RequireFromString("1.5"))
	res := r.HandleBarcodeScan(context.Background(), code)
	if !res.Success {
		t.Fatalf("scan: %s", res.Message)
	}
	if !strings.Contains(res.Message, "Basmati Rice") || !strings.Contains(res.Message, "added to cart") {
		t.Errorf("unexpected message: %s", res.Message)
	}
	if got := f.cart.Cart().Items[0].Quantity.String(); got != "1.5" {
		t.Errorf("expected quantity 1.5, got %s", got)
	}
}

func TestResolver_LooseBarcode_NonLooseProductRejected(t *testing.T) {
	r, _, _ := setupResolver(t)

	// p1 exists but is not weight-priced.
	res := r.HandleBarcodeScan(context.Background(), "LOOSE-p1-1.000")
	if res.Success || res.Message != "Product not found" {
		t.Errorf("expected Product not found, got (%v, %s)", res.Success, res.Message)
	}
}

func TestResolver_ManualLabel(t *testing.T) {
	r, f, labels := setupResolver(t)

	label, err := labels.CreateLabel(context.Background(), core.LabelInput{
		ProductName:  "Cashews",
		Unit:         "kg",
		PricePerUnit: decimal.NewFromInt(800),
		Weight:       decimal.RequireFromString("0.250"),
		TaxRate:      decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("CreateLabel: %v", err)
	}

	res := r.HandleBarcodeScan(context.Background(), core.EncodeManualBarcode(label.ID))
	if !res.Success {
		t.Fatalf("scan: %s", res.Message)
	}
	cart := f.cart.Cart()
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	item := cart.Items[0]
	if !strings.HasPrefix(item.ProductID, core.ManualProductPrefix) {
		t.Errorf("expected manual line, got %s", item.ProductID)
	}
	if got := item.Quantity.String(); got != "0.25" {
		t.Errorf("expected quantity 0.25, got %s", got)
	}
	// 800 x 0.25 = 200 + 5% tax = 210.
	if got := item.Total.String(); got != "210" {
		t.Errorf("expected line total 210, got %s", got)
	}
}

func TestResolver_StaleManualLabel(t *testing.T) {
	r, _, _ := setupResolver(t)

	res := r.HandleBarcodeScan(context.Background(), "MANUAL-no-such-label")
	if res.Success {
		t.Fatal("expected stale label scan to fail")
	}
	if res.Message != "This barcode label may have expired or was not found" {
		t.Errorf("unexpected message: %s", res.Message)
	}
}

func TestResolver_UnknownCode(t *testing.T) {
	r, _, _ := setupResolver(t)

	res := r.HandleBarcodeScan(context.Background(), "0000000000000")
	if res.Success {
		t.Fatal("expected unknown code to fail")
	}
	if res.Message != "No product matches barcode 0000000000000" {
		t.Errorf("unexpected message: %s", res.Message)
	}
}
