package selection

import (
	"shuttle/internal/domain"
	"shuttle/internal/eventbus"
)

// Service holds the checked keys of one transfer panel.
// Keys keep the order in which they were checked.
type Service struct {
	direction domain.Direction
	keys      []string
	index     map[string]bool
	bus       eventbus.EventBus
}

// NewService creates a selection service for a panel. bus may be nil.
func NewService(direction domain.Direction, bus eventbus.EventBus) *Service {
	return &Service{
		direction: direction,
		index:     make(map[string]bool),
		bus:       bus,
	}
}

// Set checks or unchecks a single key
func (s *Service) Set(key string, checked bool) {
	if checked {
		s.Add(key)
	} else {
		s.Remove(key)
	}
}

// Add checks keys that are not checked yet
func (s *Service) Add(keys ...string) {
	var added []string
	for _, key := range keys {
		if s.index[key] {
			continue
		}
		s.index[key] = true
		s.keys = append(s.keys, key)
		added = append(added, key)
	}
	s.publish(added, nil)
}

// Remove unchecks keys
func (s *Service) Remove(keys ...string) {
	drop := make(map[string]bool, len(keys))
	var removed []string
	for _, key := range keys {
		if s.index[key] && !drop[key] {
			drop[key] = true
			removed = append(removed, key)
		}
	}
	if len(removed) == 0 {
		return
	}

	kept := make([]string, 0, len(s.keys)-len(removed))
	for _, key := range s.keys {
		if drop[key] {
			delete(s.index, key)
			continue
		}
		kept = append(kept, key)
	}
	s.keys = kept
	s.publish(nil, removed)
}

// Retain drops checked keys that fail keep. Transfer uses it to forget keys that left the panel.
func (s *Service) Retain(keep func(key string) bool) {
	var stale []string
	for _, key := range s.keys {
		if !keep(key) {
			stale = append(stale, key)
		}
	}
	s.Remove(stale...)
}

// Keys returns a copy of the checked keys in check order
func (s *Service) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Count returns the number of checked keys
func (s *Service) Count() int {
	return len(s.keys)
}

func (s *Service) publish(added, removed []string) {
	if s.bus == nil || (len(added) == 0 && len(removed) == 0) {
		return
	}
	s.bus.Publish(eventbus.SelectionChangedEvent{
		Direction: s.direction,
		Added:     added,
		Removed:   removed,
		Total:     len(s.keys),
	})
}
