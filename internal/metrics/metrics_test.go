package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("fixture", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("fixture", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("fixture"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("fixture"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("fixture"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}
	if snap := rec.Snapshot("unknown"); snap.Calls != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestRecorderTracksSimulations(t *testing.T) {
	rec := NewRecorder()
	rec.RecordPossession("bos", "made_basket", 3)
	rec.RecordPossession("lal", "turnover", 0)
	rec.RecordPossession("bos", "made_basket", 2)
	rec.RecordGame(20*time.Millisecond, nil)
	rec.RecordGame(time.Millisecond, errors.New("boom"))
	rec.RecordRateLimit("/simulations")

	snap := rec.Simulations()
	if snap.Possessions != 3 || snap.Points != 5 {
		t.Fatalf("unexpected possessions %+v", snap)
	}
	if snap.EndReasons["made_basket"] != 2 || snap.EndReasons["turnover"] != 1 {
		t.Fatalf("unexpected end reasons %v", snap.EndReasons)
	}
	if snap.Games != 2 || snap.GameErrors != 1 || snap.RateLimited != 1 {
		t.Fatalf("unexpected game counters %+v", snap)
	}
	if got := snap.PointsPerPossession(); got < 1.66 || got > 1.67 {
		t.Fatalf("expected 5/3 points per possession, got %f", got)
	}

	snap.EndReasons["made_basket"] = 99
	if rec.Simulations().EndReasons["made_basket"] != 2 {
		t.Fatalf("expected snapshot to be a copy")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("fixture", time.Millisecond, nil)
	rec.RecordPossession("bos", "turnover", 0)
	rec.RecordGame(time.Millisecond, nil)
	rec.RecordRateLimit("/x")
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	if rec.Simulations().Games != 0 || rec.ProviderCalls("fixture") != 0 {
		t.Fatalf("expected zero values from nil recorder")
	}
	if (SimulationSnapshot{}).PointsPerPossession() != 0 {
		t.Fatalf("expected zero efficiency without possessions")
	}
}
