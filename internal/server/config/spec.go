package config

import "time"

// ServerConfig is the root configuration for rustbucket-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Metrics MetricsSection `koanf:"metrics"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the RESP listener and connection behavior.
type ServerSection struct {
	// Addr is the TCP listen address for the RESP port.
	Addr string `koanf:"addr"`

	// RequirePass, when non-empty, makes AUTH mandatory: commands on an
	// unauthenticated connection are rejected with NOAUTH.
	RequirePass string `koanf:"requirepass"`

	// ReadBufferSize is the per-connection socket read chunk in bytes.
	ReadBufferSize int `koanf:"read_buffer_size"`

	// RateLimit is the maximum commands per second per connection.
	// 0 disables rate limiting.
	RateLimit int `koanf:"rate_limit"`

	// IdleTimeout closes connections idle longer than this.
	// 0 disables the idle timeout.
	IdleTimeout time.Duration `koanf:"idle_timeout"`
}

// MetricsSection configures the optional Prometheus endpoint.
type MetricsSection struct {
	// Enabled serves /metrics when true.
	Enabled bool `koanf:"enabled"`

	// Addr is the HTTP listen address for /metrics.
	Addr string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
