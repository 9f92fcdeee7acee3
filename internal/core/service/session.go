package service

import (
	"sync"

	"github.com/google/uuid"
)

// Session is the per-operator dashboard state: the active product/size filters
// and the inventory-vs-log view toggle. It is created once at session start,
// passed by reference into each interaction cycle, and reset at session end.
type Session struct {
	mu sync.Mutex

	ID            string
	ProductFilter string
	SizeFilter    string
	ViewLog       bool
}

func NewSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// SetFilters stores the active filters. "All" and "" both mean unfiltered.
func (s *Session) SetFilters(product, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProductFilter = normalizeFilter(product)
	s.SizeFilter = normalizeFilter(size)
}

// Filters returns the active filters.
func (s *Session) Filters() (product, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ProductFilter, s.SizeFilter
}

// ToggleView flips between the inventory and log views and reports whether the
// log view is now active.
func (s *Session) ToggleView() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ViewLog = !s.ViewLog
	return s.ViewLog
}

// ViewingLog reports whether the log view is active.
func (s *Session) ViewingLog() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ViewLog
}

// Reset clears all session state back to defaults.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProductFilter = ""
	s.SizeFilter = ""
	s.ViewLog = false
}

func normalizeFilter(v string) string {
	if v == "All" {
		return ""
	}
	return v
}
