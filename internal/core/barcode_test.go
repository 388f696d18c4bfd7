package core_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"commerce-pos/internal/core"
)

func TestLooseBarcode_Encode(t *testing.T) {
	code := core.EncodeLooseBarcode("p1", decimal.NewFromFloat(1.5))
	if code != "LOOSE-p1-1.500" {
		t.Errorf("expected LOOSE-p1-1.500, got %s", code)
	}

	// Weight always renders with exactly three decimal places.
	code = core.EncodeLooseBarcode("p1", decimal.NewFromInt(2))
	if code != "LOOSE-p1-2.000" {
		t.Errorf("expected LOOSE-p1-2.000, got %s", code)
	}
}

func TestLooseBarcode_RoundTrip(t *testing.T) {
	cases := []struct {
		productID string
		weight    string
	}{
		{"p1", "1.500"},
		{"rice-25kg", "0.250"},
		{"a-b-c", "12.345"},
	}
	for _, tc := range cases {
		weight, _ := decimal.NewFromString(tc.weight)
		code := core.EncodeLooseBarcode(tc.productID, weight)
		decoded, ok := core.DecodeLooseBarcode(code)
		if !ok {
			t.Errorf("decode of %s failed", code)
			continue
		}
		if decoded.ProductID != tc.productID {
			t.Errorf("%s: expected product id %s, got %s", code, tc.productID, decoded.ProductID)
		}
		if !decoded.Weight.Equal(weight) {
			t.Errorf("%s: expected weight %s, got %s", code, weight, decoded.Weight)
		}
	}
}

func TestLooseBarcode_DashedProductID_SplitsOnLastDash(t *testing.T) {
	decoded, ok := core.DecodeLooseBarcode("LOOSE-rice-basmati-5kg-1.250")
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if decoded.ProductID != "rice-basmati-5kg" {
		t.Errorf("expected product id rice-basmati-5kg, got %s", decoded.ProductID)
	}
	if decoded.Weight.String() != "1.25" {
		t.Errorf("expected weight 1.25, got %s", decoded.Weight)
	}
}

func TestLooseBarcode_Malformed(t *testing.T) {
	cases := []string{
		"",
		"LOOSE-",
		"LOOSE-p1",
		"LOOSE-p1-",
		"LOOSE-p1-abc",
		"LOOSE-p1-0",
		"loose-p1-1.500",
		"EAN1234567890",
	}
	for _, code := range cases {
		if _, ok := core.DecodeLooseBarcode(code); ok {
			t.Errorf("expected decode of %q to fail", code)
		}
	}
}

func TestManualBarcode_RoundTrip(t *testing.T) {
	code := core.EncodeManualBarcode("abc-123")
	if code != "MANUAL-abc-123" {
		t.Errorf("expected MANUAL-abc-123, got %s", code)
	}
	id, ok := core.DecodeManualBarcode(code)
	if !ok || id != "abc-123" {
		t.Errorf("expected (abc-123, true), got (%s, %v)", id, ok)
	}
}

func TestManualBarcode_Malformed(t *testing.T) {
	for _, code := range []string{"", "MANUAL-", "manual-x", "LOOSE-p1-1.000"} {
		if _, ok := core.DecodeManualBarcode(code); ok {
			t.Errorf("expected decode of %q to fail", code)
		}
	}
}
