package config

import (
	"fmt"

	"github.com/leapstack-labs/mstables/internal/views"
	"github.com/leapstack-labs/mstables/pkg/adapter"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if _, err := views.ParseMode(c.Resolution); err != nil {
		return fmt.Errorf("invalid resolution: %w", err)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", c.Limit)
	}
	return nil
}

// Validate checks the store type against the registered adapters and the
// fields that type needs.
func (s *StoreConfig) Validate() error {
	if s.Type == "" {
		return fmt.Errorf("store type is required")
	}
	name, ok := adapter.Canonical(s.Type)
	if !ok {
		return &adapter.UnknownAdapterError{Type: s.Type, Available: adapter.ListAdapters()}
	}
	s.Type = name

	switch s.Type {
	case "postgres":
		if s.Host == "" {
			return fmt.Errorf("store.host is required for postgres")
		}
	default:
		if s.Path == "" {
			return fmt.Errorf("store.path is required for %s", s.Type)
		}
	}
	return nil
}
