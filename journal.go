package main

import (
	"github.com/rs/zerolog"

	"shuttle/internal/eventbus"
)

// subscribeJournal records selection, filter and config-load events in the log file.
// The bus only logs event types; the journal adds their payloads.
func subscribeJournal(bus eventbus.EventBus, logger zerolog.Logger) (unsubscribe func()) {
	log := logger.With().Str("component", "journal").Logger()

	unsubs := []func(){
		bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
			if loaded, ok := e.(eventbus.ConfigLoadedEvent); ok {
				log.Info().
					Str("path", loaded.Path).
					Int("items", loaded.ItemCount).
					Strs("target_keys", loaded.TargetKeys).
					Msg("config loaded")
			}
		}),
		bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
			if changed, ok := e.(eventbus.SelectionChangedEvent); ok {
				log.Debug().
					Str("direction", string(changed.Direction)).
					Strs("added", changed.Added).
					Strs("removed", changed.Removed).
					Int("total", changed.Total).
					Msg("selection changed")
			}
		}),
		bus.Subscribe(eventbus.EventFilterChanged, func(e eventbus.DomainEvent) {
			if changed, ok := e.(eventbus.FilterChangedEvent); ok {
				log.Debug().
					Str("direction", string(changed.Direction)).
					Str("filter", changed.Filter).
					Msg("filter changed")
			}
		}),
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
