package providers

import (
	"context"
	"time"

	"github.com/preston-bernstein/nba-possession-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-possession-sim/internal/metrics"
)

type instrumentedProvider struct {
	inner    RosterProvider
	name     string
	recorder *metrics.Recorder
}

// NewInstrumentedProvider records the latency and outcome of every fetch. A nil recorder is
// allowed.
func NewInstrumentedProvider(inner RosterProvider, name string, recorder *metrics.Recorder) RosterProvider {
	return &instrumentedProvider{inner: inner, name: name, recorder: recorder}
}

func (p *instrumentedProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	start := time.Now()
	items, err := p.inner.FetchTeams(ctx)
	p.recorder.RecordProviderAttempt(p.name, time.Since(start), err)
	return items, err
}
