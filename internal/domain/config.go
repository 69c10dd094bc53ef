package domain

import "fmt"

// Storage backend names for StoreConfig.Backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	Store StoreConfig `toml:"store"`
	Log   LogConfig   `toml:"log"`
}

// StoreConfig holds storage settings from the [store] section.
type StoreConfig struct {
	Backend string `toml:"backend,omitempty"` // Storage backend: "json" (default) or "sqlite"
	Path    string `toml:"path,omitempty"`    // Override for the data file path (empty = default location)
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// NewDefaultConfig returns the configuration used when no config file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendJSON,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q (valid: %s, %s)", c.Store.Backend, BackendJSON, BackendSQLite)
	}
	return nil
}

// DefaultConfigTemplate is the commented sample configuration written by init.
const DefaultConfigTemplate = `# goalpost configuration

[store]
# Storage backend: "json" (default) or "sqlite"
# backend = "json"
# Override the data file location (default: <data dir>/data.json or goalpost.db)
# path = ""

[log]
# Log level: debug, info, warn, error
# level = "info"
`
