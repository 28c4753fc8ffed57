// Package config holds the store defaults and config file discovery shared
// by the session and the CLI.
package config

import "github.com/leapstack-labs/mstables/pkg/core"

// Default configuration values.
const (
	DefaultStoreType    = "sqlite"
	DefaultStorePath    = "db/mstables.sqlite"
	DefaultPostgresPort = 5432
)

// ApplyStoreDefaults fills in the store type, and the path or port that the
// type needs when unset.
func ApplyStoreDefaults(c *core.StoreConfig) {
	if c == nil {
		return
	}
	if c.Type == "" {
		c.Type = DefaultStoreType
	}

	switch c.Type {
	case "postgres":
		if c.Port == 0 {
			c.Port = DefaultPostgresPort
		}
	default:
		if c.Path == "" {
			c.Path = DefaultStorePath
		}
	}
}
