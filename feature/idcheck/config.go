package idcheck

import "time"

const (
	// ModeDeny rejects requests whose identifier is in the list.
	ModeDeny = "deny"
	// ModeAllow rejects requests whose identifier is not in the list.
	ModeAllow = "allow"
)

// Config holds configuration for the identifier filter.
type Config struct {
	// Path is the source location, overridden by a -path startup option.
	Path string `mapstructure:"path" default:""`
	// Mode is how the guard acts on membership (allow, deny).
	Mode string `mapstructure:"mode" default:"deny"`
	// Header is the request header carrying the identifier.
	Header string `mapstructure:"header" default:"X-Member-ID"`
	// SourceTimeoutSeconds bounds a single load of the source.
	SourceTimeoutSeconds int `mapstructure:"source_timeout_seconds" default:"300"`
}

// IsValidMode checks if the configured mode is valid.
func (c Config) IsValidMode() bool {
	switch c.Mode {
	case ModeAllow, ModeDeny:
		return true
	default:
		return false
	}
}

// SourceTimeout returns the load timeout, defaulting to five minutes.
func (c Config) SourceTimeout() time.Duration {
	if c.SourceTimeoutSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.SourceTimeoutSeconds) * time.Second
}
