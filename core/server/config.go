package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the control endpoints. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// Upstream is the base URL filtered traffic is proxied to. Empty answers 204 locally.
	Upstream string `mapstructure:"upstream" default:""`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// HasUpstream reports whether traffic is forwarded.
func (c Config) HasUpstream() bool {
	return c.Upstream != ""
}
