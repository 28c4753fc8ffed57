package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/mstables/pkg/core"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Query, QuoteIdent and IsConnected implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.StoreConfig
	Logger *slog.Logger

	closed bool
}

// Attach stores an opened database handle. The pool is capped at a single
// connection: a session owns exactly one connection to the store.
func (b *BaseSQLAdapter) Attach(db *sql.DB, cfg core.StoreConfig) {
	db.SetMaxOpenConns(1)
	b.DB = db
	b.Cfg = cfg
	b.closed = false
}

// Close closes the database connection. Subsequent calls are no-ops.
func (b *BaseSQLAdapter) Close() error {
	if b.DB == nil {
		return nil
	}
	if b.Logger != nil {
		b.Logger.Debug("closing database connection", slog.String("type", b.Cfg.Type))
	}
	err := b.DB.Close()
	b.DB = nil
	b.closed = true
	return err
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string) (*core.Rows, error) {
	if b.DB == nil {
		if b.closed {
			return nil, core.ErrSessionClosed
		}
		return nil, fmt.Errorf("database connection not established")
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &core.Rows{Rows: rows}, nil
}

// QuoteIdent quotes an identifier with ANSI double quotes.
func (b *BaseSQLAdapter) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}
