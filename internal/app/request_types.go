package app

import "github.com/shopspring/decimal"

// AddItemRequest is the input for adding a catalog product to the cart.
type AddItemRequest struct {
	ProductID string
	Quantity  decimal.Decimal // zero means 1
}

// ManualItemRequest is the input for adding an ad-hoc item to the cart.
type ManualItemRequest struct {
	Name         string
	Unit         string
	PricePerUnit decimal.Decimal
	Quantity     decimal.Decimal
	TaxRate      decimal.Decimal
}

// CreateLabelRequest is the input for printing a manual label at the scale.
type CreateLabelRequest struct {
	ProductName  string
	Unit         string
	PricePerUnit decimal.Decimal
	Weight       decimal.Decimal
	TaxRate      decimal.Decimal
}
