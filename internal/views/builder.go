// Package views builds the consumer-facing frames of an mstables database.
//
// Each view reads one base table through the loader and either returns it
// unchanged or resolves its coded columns against the reference catalog.
// Nothing is cached: every call re-reads the base table.
package views

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/leapstack-labs/mstables/internal/catalog"
)

// Mode controls what happens to rows whose coded values cannot be resolved.
type Mode string

const (
	// ModeStrict fails the view on the first unresolvable value.
	ModeStrict Mode = "strict"
	// ModeDrop removes unresolvable rows and reports how many were lost.
	ModeDrop Mode = "drop"
)

// DefaultMode is used when no mode is configured.
const DefaultMode = ModeStrict

// ParseMode converts a configuration value to a Mode. The empty string
// selects DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return DefaultMode, nil
	case ModeStrict, ModeDrop:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown resolution mode %q (valid: %s, %s)", s, ModeStrict, ModeDrop)
	}
}

// Stats describes the most recent view build.
type Stats struct {
	View    string
	RowsIn  int
	RowsOut int
	// Dropped counts unresolvable values per coded column. Only populated
	// in ModeDrop.
	Dropped map[string]int
}

// DroppedRows returns the number of rows removed by the build.
func (s Stats) DroppedRows() int {
	return s.RowsIn - s.RowsOut
}

// Builder materializes views. It is not safe for concurrent use.
type Builder struct {
	loader  catalog.TableLoader
	catalog *catalog.Catalog
	mode    Mode
	logger  *slog.Logger
	last    Stats
}

// Option configures a Builder.
type Option func(*Builder)

// WithMode sets the resolution mode.
func WithMode(m Mode) Option {
	return func(b *Builder) {
		if m != "" {
			b.mode = m
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a builder reading base tables through tl and resolving
// codes against cat.
func NewBuilder(tl catalog.TableLoader, cat *catalog.Catalog, opts ...Option) *Builder {
	b := &Builder{
		loader:  tl,
		catalog: cat,
		mode:    DefaultMode,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Mode returns the configured resolution mode.
func (b *Builder) Mode() Mode {
	return b.mode
}

// LastStats returns the statistics of the most recent successful build.
func (b *Builder) LastStats() Stats {
	s := b.last
	s.Dropped = maps.Clone(b.last.Dropped)
	return s
}

func (b *Builder) record(s Stats) {
	b.last = s
	if n := s.DroppedRows(); n > 0 {
		b.logger.Warn("dropped rows with unresolvable codes",
			slog.String("view", s.View),
			slog.Int("dropped", n),
			slog.Int("rows_in", s.RowsIn),
			slog.Any("columns", s.Dropped),
		)
	}
}
