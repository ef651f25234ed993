package control

// Config holds configuration for the Redis control channel.
type Config struct {
	// Addr is the Redis address (host:port). Empty disables the control channel.
	Addr string `mapstructure:"addr" default:""`
	// Password is the Redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis database number.
	DB int `mapstructure:"db" default:"0"`
	// Channel is the pub/sub channel carrying control message tags.
	Channel string `mapstructure:"channel" default:"id_check"`
}

// Enabled reports whether a Redis address is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}
