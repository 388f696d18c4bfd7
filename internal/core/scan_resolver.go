package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// ScanResolver is the single entry point every barcode source converges on:
// hardware scanner bursts (via the ScanClassifier), camera-decoded strings,
// and hand-typed codes. It tries the synthetic schemes first, then falls
// back to a literal barcode/SKU match.
type ScanResolver struct {
	labels    *LabelService
	inventory InventoryService
	cart      *CartService
}

func NewScanResolver(labels *LabelService, inventory InventoryService, cart *CartService) *ScanResolver {
	return &ScanResolver{labels: labels, inventory: inventory, cart: cart}
}

// HandleBarcodeScan resolves a code and adds the matching item to the cart.
// Resolution order: manual label → loose product → literal barcode/SKU.
func (r *ScanResolver) HandleBarcodeScan(ctx context.Context, code string) ActionResult {
	if labelID, ok := DecodeManualBarcode(code); ok {
		label, found, err := r.labels.GetLabel(ctx, labelID)
		if err != nil {
			return ActionResult{Success: false, Message: "Label lookup failed"}
		}
		if !found {
			return ActionResult{Success: false, Message: "This barcode label may have expired or was not found"}
		}
		res := r.cart.AddManualItem(ManualItemInput{
			Name:         label.ProductName,
			Unit:         label.Unit,
			PricePerUnit: label.PricePerUnit,
			Quantity:     label.Weight,
			TaxRate:      label.TaxRate,
		})
		if res.Success && res.Message == "" {
			res.Message = fmt.Sprintf("%s (%s %s) added to cart", label.ProductName, label.Weight, label.Unit)
		}
		return res
	}

	if loose, ok := DecodeLooseBarcode(code); ok {
		product, found := r.inventory.GetProduct(loose.ProductID)
		if !found || !product.IsLoose {
			return ActionResult{Success: false, Message: "Product not found"}
		}
		res := r.cart.AddItem(product, loose.Weight)
		if res.Success && res.Message == "" {
			res.Message = fmt.Sprintf("%s (%s %s) added to cart", product.Name, loose.Weight, product.Unit)
		}
		return res
	}

	if product, found := r.inventory.FindByBarcode(code); found {
		res := r.cart.AddItem(product, decimal.NewFromInt(1))
		if res.Success && res.Message == "" {
			res.Message = fmt.Sprintf("%s added to cart", product.Name)
		}
		return res
	}

	return ActionResult{Success: false, Message: fmt.Sprintf("No product matches barcode %s", code)}
}
