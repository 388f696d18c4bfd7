package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commerce-pos/internal/core"
)

// Store is the postgres implementation of the register's persistence
// boundary: the product catalog read at startup, the manual label registry,
// and the single-row sales state. Schema lives in migrations/.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) LoadProducts(ctx context.Context) ([]core.Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, sku, COALESCE(barcode, ''), unit,
		       base_price, tax_rate, stock_quantity, low_stock_threshold,
		       is_loose, is_active, created_at
		FROM products
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []core.Product
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.SKU, &p.Barcode, &p.Unit,
			&p.BasePrice, &p.TaxRate, &p.StockQuantity, &p.LowStockThreshold,
			&p.IsLoose, &p.IsActive, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) PutLabel(ctx context.Context, label core.ManualLabel) error {
	// Labels are immutable; a duplicate id is a no-op rather than an update.
	_, err := s.pool.Exec(ctx, `
		INSERT INTO manual_labels (id, product_name, unit, price_per_unit, weight, total_price, tax_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`, label.ID, label.ProductName, label.Unit, label.PricePerUnit, label.Weight,
		label.TotalPrice, label.TaxRate, label.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert manual label: %w", err)
	}
	return nil
}

func (s *Store) GetLabel(ctx context.Context, id string) (core.ManualLabel, bool, error) {
	var l core.ManualLabel
	err := s.pool.QueryRow(ctx, `
		SELECT id, product_name, unit, price_per_unit, weight, total_price, tax_rate, created_at
		FROM manual_labels
		WHERE id = $1
	`, id).Scan(&l.ID, &l.ProductName, &l.Unit, &l.PricePerUnit, &l.Weight, &l.TotalPrice, &l.TaxRate, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ManualLabel{}, false, nil
	}
	if err != nil {
		return core.ManualLabel{}, false, fmt.Errorf("failed to fetch manual label: %w", err)
	}
	return l, true, nil
}

func (s *Store) LoadState(ctx context.Context) (core.SalesState, error) {
	var state core.SalesState
	var dayDate *string
	var ds core.DayStats
	err := s.pool.QueryRow(ctx, `
		SELECT next_invoice_number, invoice_year, day_date, day_total_sales, day_invoice_count
		FROM sales_state
		WHERE id = 1
	`).Scan(&state.NextInvoiceNumber, &state.InvoiceYear, &dayDate, &ds.TotalSales, &ds.InvoiceCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.SalesState{}, nil
	}
	if err != nil {
		return core.SalesState{}, fmt.Errorf("failed to load sales state: %w", err)
	}
	if dayDate != nil {
		ds.Date = *dayDate
		state.DayStats = &ds
	}
	return state, nil
}

func (s *Store) SaveState(ctx context.Context, state core.SalesState) error {
	var dayDate *string
	var totalSales any
	var invoiceCount int
	if state.DayStats != nil {
		dayDate = &state.DayStats.Date
		totalSales = state.DayStats.TotalSales
		invoiceCount = state.DayStats.InvoiceCount
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sales_state (id, next_invoice_number, invoice_year, day_date, day_total_sales, day_invoice_count)
		VALUES (1, $1, $2, $3, COALESCE($4, 0), $5)
		ON CONFLICT (id) DO UPDATE SET
			next_invoice_number = EXCLUDED.next_invoice_number,
			invoice_year        = EXCLUDED.invoice_year,
			day_date            = EXCLUDED.day_date,
			day_total_sales     = EXCLUDED.day_total_sales,
			day_invoice_count   = EXCLUDED.day_invoice_count,
			updated_at          = NOW()
	`, state.NextInvoiceNumber, state.InvoiceYear, dayDate, totalSales, invoiceCount)
	if err != nil {
		return fmt.Errorf("failed to save sales state: %w", err)
	}
	return nil
}
