// Package config loads rudis's runtime configuration from layered
// sources — built-in defaults, an optional YAML file, then environment
// variables — using github.com/knadh/koanf/v2, exactly the stack and
// priority order the teacher's internal/infra/confloader uses.
package config

// Config is the root configuration for rudis-server.
type Config struct {
	Server    ServerSection  `koanf:"server"`
	Log       LogSection     `koanf:"log"`
	Metrics   MetricsSection `koanf:"metrics"`
	RateLimit float64        `koanf:"rate_limit"`
}

// ServerSection configures the RESP listener.
type ServerSection struct {
	// Addr is the TCP address the server listens on, e.g. "127.0.0.1:6379".
	Addr string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsSection configures the optional Prometheus HTTP listener.
type MetricsSection struct {
	// Addr is the address to serve /metrics on. Empty disables it.
	Addr string `koanf:"addr"`
}
