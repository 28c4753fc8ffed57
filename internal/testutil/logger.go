// Package testutil provides shared test helpers: loggers bound to the test
// and a small SQLite mstables database.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Record is a captured log entry with its attributes flattened by key.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Recorder is a slog.Handler that keeps every record for later assertions
// and mirrors it to the test log.
type Recorder struct {
	mu      sync.Mutex
	records []Record
	echo    slog.Handler
}

// NewRecorder returns a logger backed by a Recorder.
func NewRecorder(t testing.TB) (*slog.Logger, *Recorder) {
	t.Helper()
	r := &Recorder{echo: NewTestLogger(t).Handler()}
	return slog.New(r), r
}

// Enabled implements slog.Handler.
func (r *Recorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler.
func (r *Recorder) Handle(ctx context.Context, rec slog.Record) error {
	attrs := make(map[string]any, rec.NumAttrs())
	rec.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	r.mu.Lock()
	r.records = append(r.records, Record{Level: rec.Level, Message: rec.Message, Attrs: attrs})
	r.mu.Unlock()
	return r.echo.Handle(ctx, rec)
}

// WithAttrs implements slog.Handler. The returned handler shares storage.
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recorderView{root: r, attrs: attrs}
}

// WithGroup implements slog.Handler. Groups are not tracked.
func (r *Recorder) WithGroup(string) slog.Handler { return r }

// Records returns a copy of everything logged at or above level.
func (r *Recorder) Records(level slog.Level) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Record
	for _, rec := range r.records {
		if rec.Level >= level {
			out = append(out, rec)
		}
	}
	return out
}

type recorderView struct {
	root  *Recorder
	attrs []slog.Attr
}

func (v *recorderView) Enabled(ctx context.Context, l slog.Level) bool {
	return v.root.Enabled(ctx, l)
}

func (v *recorderView) Handle(ctx context.Context, rec slog.Record) error {
	rec = rec.Clone()
	rec.AddAttrs(v.attrs...)
	return v.root.Handle(ctx, rec)
}

func (v *recorderView) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, v.attrs...), attrs...)
	return &recorderView{root: v.root, attrs: merged}
}

func (v *recorderView) WithGroup(string) slog.Handler { return v }
