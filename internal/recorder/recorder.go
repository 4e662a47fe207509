// Package recorder persists committed simulation events for later review.
// The server works fine without one; the noop implementation is the
// default when no database path is configured.
package recorder

import "github.com/ywen250/finsim-backend/internal/engine"

// Recorder receives every committed day.
type Recorder interface {
	RecordCommit(sessionID string, day int, events []*engine.CommittedEvent, ledger engine.Ledger) error
	Close() error
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordCommit(string, int, []*engine.CommittedEvent, engine.Ledger) error { return nil }
func (Noop) Close() error                                                            { return nil }
