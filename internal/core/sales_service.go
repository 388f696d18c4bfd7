package core

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// SalesService is the sale ledger: the invoice number sequence and the
// rolling "today" statistics bucket. The counter resets to 1 when the
// wall-clock year changes; the day bucket expires lazily whenever it is
// read on a later date. State is written through to the SalesStore after
// every recorded sale; a store failure is logged and the in-memory state
// stays authoritative for the session.
type SalesService struct {
	mu    sync.Mutex
	store SalesStore
	state SalesState
	now   func() time.Time
}

// NewSalesService loads persisted counters. A fresh store yields counter 1
// for the current year.
func NewSalesService(ctx context.Context, store SalesStore) (*SalesService, error) {
	state, err := store.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales state: %w", err)
	}
	s := &SalesService{store: store, state: state, now: time.Now}
	if s.state.NextInvoiceNumber < 1 {
		s.state.NextInvoiceNumber = 1
	}
	if s.state.InvoiceYear == 0 {
		s.state.InvoiceYear = s.now().Year()
	}
	return s, nil
}

// NextInvoiceNumber previews the number the next sale will receive, as
// INV-{year}-{counter:04d}. Read-only: the year rollover is applied to the
// formatted result but not committed.
func (s *SalesService) NextInvoiceNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	year := s.now().Year()
	num := s.state.NextInvoiceNumber
	if year != s.state.InvoiceYear {
		num = 1
	}
	return fmt.Sprintf("INV-%d-%04d", year, num)
}

// RecordSale commits one completed sale: the invoice counter advances
// (resetting on a year change) and the day bucket accumulates, or is
// replaced when the stored date is not today.
func (s *SalesService) RecordSale(ctx context.Context, total decimal.Decimal) {
	s.mu.Lock()
	now := s.now()
	year := now.Year()
	if year != s.state.InvoiceYear {
		s.state.NextInvoiceNumber = 1
		s.state.InvoiceYear = year
	} else {
		s.state.NextInvoiceNumber++
	}

	today := now.Format("2006-01-02")
	if s.state.DayStats != nil && s.state.DayStats.Date == today {
		s.state.DayStats.TotalSales = s.state.DayStats.TotalSales.Add(total)
		s.state.DayStats.InvoiceCount++
	} else {
		s.state.DayStats = &DayStats{
			Date:         today,
			TotalSales:   total,
			InvoiceCount: 1,
		}
	}
	snapshot := s.state
	if s.state.DayStats != nil {
		ds := *s.state.DayStats
		snapshot.DayStats = &ds
	}
	s.mu.Unlock()

	if err := s.store.SaveState(ctx, snapshot); err != nil {
		log.Printf("sales: failed to persist state: %v", err)
	}
}

// TodaySales returns today's revenue, or zero when the stored bucket is
// from another day.
func (s *SalesService) TodaySales() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.now().Format("2006-01-02")
	if s.state.DayStats != nil && s.state.DayStats.Date == today {
		return s.state.DayStats.TotalSales
	}
	return decimal.Zero
}

// TodayInvoiceCount returns today's invoice count under the same lazy
// expiry as TodaySales.
func (s *SalesService) TodayInvoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.now().Format("2006-01-02")
	if s.state.DayStats != nil && s.state.DayStats.Date == today {
		return s.state.DayStats.InvoiceCount
	}
	return 0
}
