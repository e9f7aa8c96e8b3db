package main

import (
	"sync"

	"github.com/rs/zerolog"

	"shuttle/internal/config"
	"shuttle/internal/eventbus"
)

// autosaver writes target keys to the config file in move order. Bus handlers run
// concurrently, so a slow write must never be overtaken by an older move.
type autosaver struct {
	mu     sync.Mutex
	svc    config.ConfigService
	base   config.Config
	log    zerolog.Logger
	saved  uint64 // sequence of the last move written
	closed bool
}

func newAutosaver(svc config.ConfigService, base config.Config, logger zerolog.Logger) *autosaver {
	return &autosaver{svc: svc, base: base, log: logger}
}

// moved saves the target keys of a move unless a newer move or the final save got there first
func (a *autosaver) moved(e eventbus.ItemsMovedEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || e.Seq <= a.saved {
		a.log.Debug().Uint64("seq", e.Seq).Uint64("saved", a.saved).Msg("skipping stale autosave")
		return nil
	}
	if err := saveTargets(a.svc, a.base, e.TargetKeys, a.log); err != nil {
		return err
	}
	a.saved = e.Seq
	return nil
}

// final writes the accepted keys and turns later autosaves into no-ops
func (a *autosaver) final(targetKeys []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	return saveTargets(a.svc, a.base, targetKeys, a.log)
}
