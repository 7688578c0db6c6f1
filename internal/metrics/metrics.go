package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type simulationStats struct {
	games       int
	gameErrors  int
	possessions int
	points      int
	endReasons  map[string]int
	rateLimited int
	lastGame    time.Duration
}

// Recorder captures lightweight, in-memory metrics about roster loads and simulations. When
// telemetry is enabled it mirrors every event into OpenTelemetry instruments.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	sims  simulationStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		sims:  simulationStats{endReasons: make(map[string]int)},
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a roster fetch and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordPossession counts one finished possession for the offense.
func (r *Recorder) RecordPossession(teamID, endReason string, points int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sims.possessions++
	r.sims.points += points
	r.sims.endReasons[endReason]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPossession(teamID, endReason, points)
	}
}

// RecordGame tracks one simulated game and how long it took.
func (r *Recorder) RecordGame(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sims.games++
	r.sims.lastGame = duration
	if err != nil {
		r.sims.gameErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordGame(duration, err)
	}
}

// RecordRateLimit tracks a request rejected by the simulation rate limiter.
func (r *Recorder) RecordRateLimit(path string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sims.rateLimited++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(path)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// SimulationSnapshot is a copy of the simulation counters.
type SimulationSnapshot struct {
	Games        int
	GameErrors   int
	Possessions  int
	Points       int
	EndReasons   map[string]int
	RateLimited  int
	LastGameTime time.Duration
}

// PointsPerPossession is the running offensive efficiency.
func (s SimulationSnapshot) PointsPerPossession() float64 {
	if s.Possessions == 0 {
		return 0
	}
	return float64(s.Points) / float64(s.Possessions)
}

// Simulations returns a copy of the simulation counters.
func (r *Recorder) Simulations() SimulationSnapshot {
	if r == nil {
		return SimulationSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	reasons := make(map[string]int, len(r.sims.endReasons))
	for k, v := range r.sims.endReasons {
		reasons[k] = v
	}
	return SimulationSnapshot{
		Games:        r.sims.games,
		GameErrors:   r.sims.gameErrors,
		Possessions:  r.sims.possessions,
		Points:       r.sims.points,
		EndReasons:   reasons,
		RateLimited:  r.sims.rateLimited,
		LastGameTime: r.sims.lastGame,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

func (r *Recorder) ensureStats(provider string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
