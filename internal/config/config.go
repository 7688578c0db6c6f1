package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port       string
	LogLevel   string
	LogFormat  string
	Provider   string
	RosterPath string
	Store      string
	SQLitePath string
	TuningPath string
	AdminToken string
	Simulation SimulationConfig
	Metrics    MetricsConfig
}

// SimulationConfig bounds how much simulation work the API accepts.
type SimulationConfig struct {
	RatePerSec float64
	Burst      int
	MaxBatch   int
	Workers    int
}

// Load reads configuration from environment variables with sensible defaults. A .env file in the
// working directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	port := envOrDefault(envPort, defaultPort)
	return Config{
		Port:       port,
		LogLevel:   envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:  envOrDefault(envLogFormat, defaultLogFormat),
		Provider:   envOrDefault(envProvider, defaultProvider),
		RosterPath: envOrDefault(envRosterPath, ""),
		Store:      envOrDefault(envStore, defaultStore),
		SQLitePath: envOrDefault(envSQLitePath, defaultSQLitePath),
		TuningPath: envOrDefault(envTuningPath, ""),
		AdminToken: envOrDefault(envAdminToken, ""),
		Simulation: SimulationConfig{
			RatePerSec: floatEnvOrDefault(envSimRate, defaultSimRate),
			Burst:      intEnvOrDefault(envSimBurst, defaultSimBurst),
			MaxBatch:   intEnvOrDefault(envSimMaxBatch, defaultSimMaxBatch),
			Workers:    intEnvOrDefault(envSimWorkers, defaultSimWorkers),
		},
		Metrics: loadMetrics(port),
	}
}
