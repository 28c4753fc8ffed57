package core

import (
	"context"
	"database/sql"
)

// Store defines the interface that all backing-store adapters must implement.
type Store interface {
	// Connect establishes a connection to the store.
	Connect(ctx context.Context, cfg StoreConfig) error

	// Close closes the connection. Closing twice is not an error.
	Close() error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// QuoteIdent quotes a table or column identifier for this store.
	QuoteIdent(name string) string

	// IsConnected reports whether Connect succeeded and Close has not run.
	IsConnected() bool
}

// StoreConfig holds configuration for connecting to a backing store.
type StoreConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Options  map[string]string
	Params   map[string]any
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}
