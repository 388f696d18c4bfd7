package core

import "time"

// SetClock overrides the sale ledger's time source for tests.
// NewSalesService derives a fresh store's InvoiceYear from the real clock;
// when the current year is that wall-clock default, re-derive it under the
// injected clock so tests stay hermetic whatever the real date is. A year
// loaded from persisted state is left alone.
func (s *SalesService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	if s.state.InvoiceYear == time.Now().Year() {
		s.state.InvoiceYear = now().Year()
	}
}
