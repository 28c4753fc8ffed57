// Package config provides configuration management for the mstables CLI.
package config

import (
	"github.com/leapstack-labs/mstables/internal/views"
	"github.com/leapstack-labs/mstables/pkg/core"
)

// StoreConfig locates the backing store.
type StoreConfig struct {
	Type     string            `koanf:"type"`
	Path     string            `koanf:"path"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Database string            `koanf:"database"`
	Options  map[string]string `koanf:"options"`
	Params   map[string]any    `koanf:"params"`
}

// Config holds all CLI configuration options.
type Config struct {
	Store      StoreConfig `koanf:"store"`
	Verbose    bool        `koanf:"verbose"`
	Resolution string      `koanf:"resolution"`
	Limit      int         `koanf:"limit"`
}

// Default configuration values.
const (
	DefaultResolution = string(views.DefaultMode)
	DefaultLimit      = 20
)

// Core converts the store section to the adapter configuration.
func (s StoreConfig) Core() core.StoreConfig {
	return core.StoreConfig{
		Type:     s.Type,
		Path:     s.Path,
		Host:     s.Host,
		Port:     s.Port,
		Database: s.Database,
		Username: s.User,
		Password: s.Password,
		Options:  s.Options,
		Params:   s.Params,
	}
}

// Mode returns the configured resolution mode. Validate must have passed.
func (c *Config) Mode() views.Mode {
	m, _ := views.ParseMode(c.Resolution)
	return m
}
