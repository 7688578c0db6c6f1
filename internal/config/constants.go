package config

const (
	envPort         = "PORT"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envProvider     = "PROVIDER"
	envRosterPath   = "ROSTER_PATH"
	envStore        = "STORE"
	envSQLitePath   = "SQLITE_PATH"
	envTuningPath   = "TUNING_PATH"
	envAdminToken   = "ADMIN_TOKEN"
	envSimRate      = "SIM_RATE_PER_SEC"
	envSimBurst     = "SIM_BURST"
	envSimMaxBatch  = "SIM_MAX_BATCH"
	envSimWorkers   = "SIM_WORKERS"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort        = "4000"
	defaultLogLevel    = "info"
	defaultLogFormat   = "json"
	defaultProvider    = "fixture"
	defaultStore       = StoreMemory
	defaultSQLitePath  = "data/simulations.db"
	defaultMetricsPort = "9090"
	defaultServiceName = "nba-possession-sim"
	// A full game takes a few milliseconds; the limiter protects the process, not an upstream.
	defaultSimRate     = 20.0
	defaultSimBurst    = 40
	defaultSimMaxBatch = 32
	defaultSimWorkers  = 4
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)
