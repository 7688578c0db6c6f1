package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/nba-possession-sim/internal/metrics"
)

// RecorderShutdown counts calls to the shutdown func returned by NewRecorderWithCountingShutdown.
type RecorderShutdown struct {
	calls atomic.Int32
}

// Calls reports how many times shutdown ran.
func (s *RecorderShutdown) Calls() int { return int(s.calls.Load()) }

// NewRecorderWithShutdown returns an in-memory recorder with a counting no-op shutdown, matching
// the shape metrics.Setup hands the server.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	rec, _, shutdown := NewRecorderWithCountingShutdown()
	return rec, shutdown
}

// NewRecorderWithCountingShutdown is NewRecorderWithShutdown that also exposes the call counter.
func NewRecorderWithCountingShutdown() (*metrics.Recorder, *RecorderShutdown, func(context.Context) error) {
	counter := &RecorderShutdown{}
	return metrics.NewRecorder(), counter, func(ctx context.Context) error {
		counter.calls.Add(1)
		return ctx.Err()
	}
}

// SimulatedGames returns how many finished games rec has seen.
func SimulatedGames(rec *metrics.Recorder) int {
	return rec.Simulations().Games
}
