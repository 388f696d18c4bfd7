package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LabelService manages manual labels: ad-hoc weighed goods that get a
// printed MANUAL-* barcode at the counter scale and are resolved back into
// cart items at scan time, possibly days later and in another session.
type LabelService struct {
	store LabelStore
}

func NewLabelService(store LabelStore) *LabelService {
	return &LabelService{store: store}
}

// LabelInput is the data captured at the scale.
type LabelInput struct {
	ProductName  string
	Unit         string
	PricePerUnit decimal.Decimal
	Weight       decimal.Decimal
	TaxRate      decimal.Decimal
}

// CreateLabel persists a new immutable label and returns it with its
// generated id and computed total. The id is what EncodeManualBarcode puts
// on the printed barcode.
func (s *LabelService) CreateLabel(ctx context.Context, in LabelInput) (ManualLabel, error) {
	if strings.TrimSpace(in.ProductName) == "" {
		return ManualLabel{}, fmt.Errorf("label product name is required")
	}
	if !in.Weight.IsPositive() {
		return ManualLabel{}, fmt.Errorf("label weight must be positive, got %s", in.Weight)
	}
	if in.PricePerUnit.IsNegative() {
		return ManualLabel{}, fmt.Errorf("label price cannot be negative, got %s", in.PricePerUnit)
	}

	label := ManualLabel{
		ID:           uuid.NewString(),
		ProductName:  strings.TrimSpace(in.ProductName),
		Unit:         in.Unit,
		PricePerUnit: in.PricePerUnit,
		Weight:       in.Weight,
		TotalPrice:   in.PricePerUnit.Mul(in.Weight),
		TaxRate:      in.TaxRate,
		CreatedAt:    time.Now(),
	}
	if err := s.store.PutLabel(ctx, label); err != nil {
		return ManualLabel{}, fmt.Errorf("failed to persist label: %w", err)
	}
	return label, nil
}

// GetLabel looks a label up by id. Unknown ids are not an error; the
// barcode may simply be stale.
func (s *LabelService) GetLabel(ctx context.Context, id string) (ManualLabel, bool, error) {
	return s.store.GetLabel(ctx, id)
}
