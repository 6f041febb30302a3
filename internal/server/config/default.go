package config

// Default configuration values.
const (
	DefaultAddr           = "127.0.0.1:6379"
	DefaultMetricsAddr    = "127.0.0.1:9121"
	DefaultReadBufferSize = 16 * 1024

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr:           DefaultAddr,
			ReadBufferSize: DefaultReadBufferSize,
		},
		Metrics: MetricsSection{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
