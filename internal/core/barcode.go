package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Synthetic barcode schemes for goods that have no printed EAN:
//
//	LOOSE-{productId}-{weight}  weight-priced catalog goods, 3dp weight
//	MANUAL-{labelId}            ad-hoc weighed labels
//
// Both are reversible pure functions. Decoding never fails loudly: malformed
// input yields (zero, false), matching the register's treat-as-unknown-scan
// behavior.

const (
	LooseBarcodePrefix  = "LOOSE-"
	ManualBarcodePrefix = "MANUAL-"
)

// LooseBarcode is the decoded form of a LOOSE-* code.
type LooseBarcode struct {
	ProductID string
	Weight    decimal.Decimal
}

// EncodeLooseBarcode renders a loose-product barcode. The weight is always
// formatted to exactly three decimal places.
func EncodeLooseBarcode(productID string, weight decimal.Decimal) string {
	return LooseBarcodePrefix + productID + "-" + weight.StringFixed(3)
}

// DecodeLooseBarcode parses a loose-product barcode. The product id may
// itself contain dashes, so the split is on the last dash. The weight must
// parse to a number greater than zero.
func DecodeLooseBarcode(code string) (LooseBarcode, bool) {
	rest, ok := strings.CutPrefix(code, LooseBarcodePrefix)
	if !ok {
		return LooseBarcode{}, false
	}
	lastDash := strings.LastIndex(rest, "-")
	if lastDash < 0 {
		return LooseBarcode{}, false
	}
	productID := rest[:lastDash]
	weight, err := decimal.NewFromString(rest[lastDash+1:])
	if err != nil || !weight.IsPositive() {
		return LooseBarcode{}, false
	}
	return LooseBarcode{ProductID: productID, Weight: weight}, true
}

// EncodeManualBarcode renders a manual-label barcode.
func EncodeManualBarcode(labelID string) string {
	return ManualBarcodePrefix + labelID
}

// DecodeManualBarcode strips the MANUAL- prefix. An absent prefix or empty
// remainder fails the decode.
func DecodeManualBarcode(code string) (string, bool) {
	rest, ok := strings.CutPrefix(code, ManualBarcodePrefix)
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}
