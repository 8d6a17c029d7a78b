package config

// Default configuration values.
const (
	DefaultAddr = "127.0.0.1:6379"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// DefaultMetricsAddr is empty: the metrics HTTP listener is disabled
	// unless RUDIS_METRICS_ADDR is set.
	DefaultMetricsAddr = ""

	// DefaultRateLimit of 0 means unlimited: the server creates no limiter.
	DefaultRateLimit = 0
)

// Default returns the default rudis-server configuration, reproducing
// spec.md's documented wire behavior exactly when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Server: ServerSection{
			Addr: DefaultAddr,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsSection{
			Addr: DefaultMetricsAddr,
		},
		RateLimit: DefaultRateLimit,
	}
}
