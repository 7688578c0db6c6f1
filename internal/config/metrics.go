package config

import (
	"strings"

	"github.com/preston-bernstein/nba-possession-sim/internal/metrics"
)

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// Telemetry converts the settings into the exporter config consumed by metrics.Setup.
func (m MetricsConfig) Telemetry() metrics.TelemetryConfig {
	return metrics.TelemetryConfig{
		Enabled:      m.Enabled,
		Port:         m.Port,
		ServiceName:  m.ServiceName,
		OtlpEndpoint: m.OtlpEndpoint,
		OtlpInsecure: m.OtlpInsecure,
	}
}

// loadMetrics reads the telemetry env. A metrics port equal to the API port disables the
// separate listener rather than failing the bind at startup.
func loadMetrics(apiPort string) MetricsConfig {
	cfg := MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: strings.TrimSpace(envOrDefault(envOtelEndpoint, "")),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
	if cfg.Port == apiPort {
		cfg.Enabled = false
	}
	return cfg
}
