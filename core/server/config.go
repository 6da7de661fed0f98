package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// SyncOnStart runs one reconciliation as soon as the server is up.
	SyncOnStart bool `mapstructure:"sync_on_start" default:"false"`
	// MetricsEnabled serves Prometheus metrics at /metrics.
	MetricsEnabled bool `mapstructure:"metrics_enabled" default:"true"`
	// ReadTimeoutSeconds bounds how long a request may take to be read.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"30"`
}

// IsAuthEnabled reports whether requests must carry the API key.
func (c Config) IsAuthEnabled() bool {
	return c.ApiKey != ""
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}
