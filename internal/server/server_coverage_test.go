package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-possession-sim/internal/config"
	"github.com/preston-bernstein/nba-possession-sim/internal/metrics"
	"github.com/preston-bernstein/nba-possession-sim/internal/testutil"
)

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()

	var seen metrics.TelemetryConfig
	metricsSetup = func(_ context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		seen = cfg
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled:     true,
			Port:        "9999",
			ServiceName: "sim-test",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics server on :9999, got %s", srv.Addr())
	}
	if seen.ServiceName != "sim-test" || !seen.Enabled {
		t.Fatalf("expected telemetry config to be forwarded, got %+v", seen)
	}
}

func TestBuildMetricsFallsBackWhenSetupFails(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("exporter down")
	}

	logger, buf := testutil.NewBufferLogger()
	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true, Port: "9999"}}, logger, nil)
	if rec == nil {
		t.Fatalf("expected in-memory recorder on setup failure")
	}
	if srv != nil || stop != nil {
		t.Fatalf("expected no metrics server or shutdown on setup failure")
	}
	if !strings.Contains(buf.String(), "continuing without telemetry") {
		t.Fatalf("expected warning to be logged, got %s", buf.String())
	}
}
