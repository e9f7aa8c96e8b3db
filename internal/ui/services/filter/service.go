package filter

import (
	"shuttle/internal/domain"
	"shuttle/internal/eventbus"
)

// Service holds the filter text of both transfer panels
type Service struct {
	queries map[domain.Direction]string
	bus     eventbus.EventBus
}

// NewService creates a filter service. bus may be nil.
func NewService(bus eventbus.EventBus) *Service {
	return &Service{
		queries: make(map[domain.Direction]string),
		bus:     bus,
	}
}

// Set stores the filter for a panel. It reports whether the value changed.
func (s *Service) Set(dir domain.Direction, query string) bool {
	if s.queries[dir] == query {
		return false
	}
	s.queries[dir] = query
	if s.bus != nil {
		s.bus.Publish(eventbus.FilterChangedEvent{Direction: dir, Filter: query})
	}
	return true
}

// Clear empties the filter of a panel
func (s *Service) Clear(dir domain.Direction) bool {
	return s.Set(dir, "")
}

// Query returns the filter of a panel
func (s *Service) Query(dir domain.Direction) string {
	return s.queries[dir]
}

// Active reports whether a panel has a filter
func (s *Service) Active(dir domain.Direction) bool {
	return s.queries[dir] != ""
}
