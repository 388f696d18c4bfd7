package core

import "context"

// The register core owns all business logic but none of the durability.
// These interfaces are the persistence boundary; internal/store provides
// memory and postgres implementations. Store failures never become cart
// failures; the core's computed values are the source of truth for the
// active session, and write-through is best effort.

// ProductSource supplies the initial catalog the InventoryService loads at
// startup.
type ProductSource interface {
	LoadProducts(ctx context.Context) ([]Product, error)
}

// LabelStore persists manual labels keyed by id, surviving restarts.
type LabelStore interface {
	PutLabel(ctx context.Context, label ManualLabel) error
	GetLabel(ctx context.Context, id string) (ManualLabel, bool, error)
}

// SalesStore persists the invoice counter, invoice year, and the current
// day-stats bucket.
type SalesStore interface {
	LoadState(ctx context.Context) (SalesState, error)
	SaveState(ctx context.Context, state SalesState) error
}
