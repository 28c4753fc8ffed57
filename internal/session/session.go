// Package session owns the store connection and reference catalog behind
// every view call.
//
// A Session loads the catalog once when opened and releases the connection
// exactly once when closed. Sessions are not safe for concurrent use;
// independent sessions hold independent connections.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"

	"github.com/google/uuid"
	"github.com/leapstack-labs/mstables/internal/catalog"
	"github.com/leapstack-labs/mstables/internal/config"
	"github.com/leapstack-labs/mstables/internal/loader"
	"github.com/leapstack-labs/mstables/internal/views"
	"github.com/leapstack-labs/mstables/pkg/adapter"
	"github.com/leapstack-labs/mstables/pkg/core"
	"github.com/leapstack-labs/mstables/pkg/frame"

	_ "github.com/leapstack-labs/mstables/pkg/adapters/sqlite" // default store
)

// Options configures Open.
type Options struct {
	// Store selects and locates the backing store. Unset fields take the
	// defaults of config.ApplyStoreDefaults.
	Store core.StoreConfig
	// Verbose writes a progress line before every table load.
	Verbose bool
	// Mode is the resolution mode of coded columns.
	Mode views.Mode
	// Progress receives human-readable status lines. Nil discards them.
	Progress io.Writer
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Session is an open connection to an mstables database with its reference
// catalog loaded.
type Session struct {
	id      string
	cfg     core.StoreConfig
	store   core.Store
	loader  *loader.Loader
	catalog *catalog.Catalog
	views   *views.Builder
	logger  *slog.Logger
	closed  bool
}

// Open connects to the store and loads the reference catalog. The
// connection is released if the catalog cannot be loaded.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg := opts.Store
	if name, ok := adapter.Canonical(cfg.Type); ok {
		cfg.Type = name
	}
	config.ApplyStoreDefaults(&cfg)

	mode, err := views.ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("session", id))

	store, err := adapter.NewAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}

	_, _ = fmt.Fprintf(progress, "Creating initial frames from file %s...\n", describe(cfg))

	if err := store.Connect(ctx, cfg); err != nil {
		return nil, &core.DataAccessError{Op: "connect", Err: err}
	}

	l := loader.New(store,
		loader.WithLogger(logger),
		loader.WithProgress(progress),
		loader.WithVerbose(opts.Verbose),
	)

	cat, err := catalog.Load(ctx, l, logger)
	if err != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("failed to close store", slog.String("error", cerr.Error()))
		}
		return nil, err
	}

	_, _ = fmt.Fprintln(progress, "Initial frames created.")
	logger.Debug("session opened",
		slog.String("store", cfg.Type),
		slog.String("mode", string(mode)),
	)

	return &Session{
		id:      id,
		cfg:     cfg,
		store:   store,
		loader:  l,
		catalog: cat,
		views:   views.NewBuilder(l, cat, views.WithMode(mode), views.WithLogger(logger)),
		logger:  logger,
	}, nil
}

// With opens a session, passes it to fn and closes it afterwards, including
// when fn fails or panics. A close failure is joined to fn's error.
func With(ctx context.Context, opts Options, fn func(*Session) error) (err error) {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(s)
}

// describe renders the store location for progress output.
func describe(cfg core.StoreConfig) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	addr := cfg.Host
	if cfg.Port != 0 {
		addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}
	if cfg.Database != "" {
		addr += "/" + cfg.Database
	}
	return addr
}

// ID returns the session identifier used in log records.
func (s *Session) ID() string {
	return s.id
}

// Store returns the store configuration the session was opened with,
// defaults applied.
func (s *Session) Store() core.StoreConfig {
	return s.cfg
}

// Catalog returns the reference catalog.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Mode returns the resolution mode.
func (s *Session) Mode() views.Mode {
	return s.views.Mode()
}

// LastStats returns the statistics of the most recent view build.
func (s *Session) LastStats() views.Stats {
	return s.views.LastStats()
}

// Close releases the store connection. Calling Close more than once is a
// no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Debug("closing session")
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed
}

// ViewNames returns the names accepted by View.
func (s *Session) ViewNames() []string {
	return views.Names()
}

// View builds the named view.
func (s *Session) View(ctx context.Context, name string) (*frame.Frame, error) {
	d, ok := views.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", views.ErrUnknownView, name)
	}
	return s.build(ctx, d)
}

// Reference returns a copy of the named reference table.
func (s *Session) Reference(name string) (*frame.Frame, error) {
	if s.closed {
		return nil, &core.DataAccessError{Table: name, Op: "read", Err: core.ErrSessionClosed}
	}
	return s.catalog.Frame(name)
}

func (s *Session) build(ctx context.Context, d views.Definition) (*frame.Frame, error) {
	if s.closed {
		return nil, &core.DataAccessError{Table: d.Table, Op: "query", Err: core.ErrSessionClosed}
	}
	s.logger.Debug("building view", slog.String("view", d.Name))
	return d.Build(s.views, ctx)
}
