// Package loader reads whole tables from the backing store into frames.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/leapstack-labs/mstables/pkg/core"
	"github.com/leapstack-labs/mstables/pkg/frame"
)

// Loader issues full-table scans against a store.
type Loader struct {
	store    core.Store
	logger   *slog.Logger
	progress io.Writer
	verbose  bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithProgress sets the writer that receives progress lines in verbose mode.
func WithProgress(w io.Writer) Option {
	return func(l *Loader) {
		if w != nil {
			l.progress = w
		}
	}
}

// WithVerbose enables a progress line before every scan.
func WithVerbose(v bool) Option {
	return func(l *Loader) {
		l.verbose = v
	}
}

// New creates a loader over an already connected store.
func New(store core.Store, opts ...Option) *Loader {
	l := &Loader{
		store:    store,
		logger:   slog.New(slog.DiscardHandler),
		progress: io.Discard,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Verbose returns a copy of the loader with verbose mode set to v.
func (l *Loader) Verbose(v bool) *Loader {
	cp := *l
	cp.verbose = v
	return &cp
}

// Table reads every row of the named table. Columns are named as reported
// by the store, in declaration order; rows keep scan order.
func (l *Loader) Table(ctx context.Context, name string) (*frame.Frame, error) {
	if l.verbose {
		_, _ = fmt.Fprintf(l.progress, "Creating frame '%s' ...\n", strings.ToLower(name))
	}

	start := time.Now()
	rows, err := l.store.Query(ctx, "SELECT * FROM "+l.store.QuoteIdent(name))
	if err != nil {
		return nil, &core.DataAccessError{Table: name, Op: "query", Err: err}
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &core.DataAccessError{Table: name, Op: "read columns of", Err: err}
	}

	data := [][]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &core.DataAccessError{Table: name, Op: "scan", Err: err}
		}
		for i, v := range values {
			// Convert []byte to string; driver buffers are not ours to keep
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.DataAccessError{Table: name, Op: "iterate", Err: err}
	}

	l.logger.Debug("loaded table",
		slog.String("table", name),
		slog.String("rows", humanize.Comma(int64(len(data)))),
		slog.Duration("elapsed", time.Since(start)),
	)

	return frame.New(cols, data), nil
}
