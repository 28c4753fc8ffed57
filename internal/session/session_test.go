package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/mstables/internal/config"
	"github.com/leapstack-labs/mstables/internal/schema"
	"github.com/leapstack-labs/mstables/internal/testutil"
	"github.com/leapstack-labs/mstables/internal/views"
	"github.com/leapstack-labs/mstables/pkg/adapter"
	"github.com/leapstack-labs/mstables/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureOptions(t *testing.T, extra ...string) Options {
	t.Helper()
	return Options{
		Store:  core.StoreConfig{Path: testutil.WriteFixture(t, extra...)},
		Logger: testutil.NewTestLogger(t),
	}
}

func openFixture(t *testing.T, extra ...string) *Session {
	t.Helper()
	s, err := Open(context.Background(), fixtureOptions(t, extra...))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_Progress(t *testing.T) {
	opts := fixtureOptions(t)
	var progress bytes.Buffer
	opts.Progress = &progress

	s, err := Open(context.Background(), opts)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	want := "Creating initial frames from file " + opts.Store.Path + "...\nInitial frames created.\n"
	assert.Equal(t, want, progress.String())
	assert.Equal(t, config.DefaultStoreType, s.Store().Type)
	assert.Equal(t, views.ModeStrict, s.Mode())

	_, err = uuid.Parse(s.ID())
	assert.NoError(t, err)
}

func TestOpen_VerboseProgress(t *testing.T) {
	opts := fixtureOptions(t)
	var progress bytes.Buffer
	opts.Progress = &progress
	opts.Verbose = true

	s, err := Open(context.Background(), opts)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	out := progress.String()
	for _, ref := range schema.ReferenceTables {
		assert.Contains(t, out, "Creating frame '"+strings.ToLower(ref.Name)+"' ...")
	}
	assert.True(t, strings.HasSuffix(out, "Initial frames created.\n"))

	progress.Reset()
	_, err = s.Growth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Creating frame 'msratio_growth' ...\n", progress.String())
}

func TestOpen_Errors(t *testing.T) {
	t.Run("unknown store type", func(t *testing.T) {
		opts := fixtureOptions(t)
		opts.Store.Type = "oracle"
		_, err := Open(context.Background(), opts)

		var unknown *adapter.UnknownAdapterError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "oracle", unknown.Type)
	})

	t.Run("unknown resolution mode", func(t *testing.T) {
		opts := fixtureOptions(t)
		opts.Mode = "inner"
		_, err := Open(context.Background(), opts)
		assert.Error(t, err)
	})

	t.Run("default path missing", func(t *testing.T) {
		var progress bytes.Buffer
		_, err := Open(context.Background(), Options{Progress: &progress})

		var dataErr *core.DataAccessError
		require.ErrorAs(t, err, &dataErr)
		assert.Contains(t, progress.String(), config.DefaultStorePath)
		assert.NotContains(t, progress.String(), "Initial frames created.")
	})

	t.Run("reference table missing", func(t *testing.T) {
		_, err := Open(context.Background(), fixtureOptions(t, `DROP TABLE TimeRefs;`))

		var dataErr *core.DataAccessError
		require.ErrorAs(t, err, &dataErr)
		assert.Equal(t, schema.TableTimeRefs, dataErr.Table)
	})
}

func TestSession_Views(t *testing.T) {
	s := openFixture(t, `UPDATE MSfinancials SET Y3 = 7 WHERE ticker_id = 1;`)
	ctx := context.Background()

	f, err := s.KeyRatios(ctx)
	require.NoError(t, err)
	y3, err := f.Value(0, "Y3")
	require.NoError(t, err)
	ts, ok := y3.(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC)), "got %s", ts)

	f, err = s.Valuation(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, f.NumRows())
	assert.Contains(t, f.Columns, "PE_TTM")

	assert.Equal(t, views.Names(), s.ViewNames())
	for _, name := range s.ViewNames() {
		_, err := s.View(ctx, name)
		assert.NoError(t, err, name)
	}

	_, err = s.View(ctx, "balance")
	assert.ErrorIs(t, err, views.ErrUnknownView)
}

func TestSession_Reference(t *testing.T) {
	s := openFixture(t)

	f, err := s.Reference(schema.TableCountries)
	require.NoError(t, err)
	assert.Contains(t, f.Columns, "country_c2")

	tickers, ok := s.Catalog().Get(schema.TableTickers)
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, tickers.Keys())
}

func TestSession_DropMode(t *testing.T) {
	opts := fixtureOptions(t, `UPDATE MSratio_cashflow SET cf_Y1 = 12 WHERE ticker_id = 3;`)
	opts.Mode = views.ModeDrop

	s, err := Open(context.Background(), opts)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	f, err := s.CashFlow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, 1, s.LastStats().DroppedRows())
}

func TestSession_Close(t *testing.T) {
	s := openFixture(t)
	ctx := context.Background()

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "second Close is a no-op")
	assert.True(t, s.Closed())

	calls := map[string]func() error{
		"KeyRatios": func() error { _, err := s.KeyRatios(ctx); return err },
		"View":      func() error { _, err := s.View(ctx, views.ViewPriceHistory); return err },
		"Reference": func() error { _, err := s.Reference(schema.TableTickers); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			var dataErr *core.DataAccessError
			require.ErrorAs(t, err, &dataErr)
			assert.ErrorIs(t, err, core.ErrSessionClosed)
		})
	}
}

func TestWith(t *testing.T) {
	t.Run("closes after success", func(t *testing.T) {
		var got *Session
		err := With(context.Background(), fixtureOptions(t), func(s *Session) error {
			got = s
			_, err := s.QuoteHeader(context.Background())
			return err
		})
		require.NoError(t, err)
		assert.True(t, got.Closed())
	})

	t.Run("closes after failure", func(t *testing.T) {
		boom := errors.New("boom")
		var got *Session
		err := With(context.Background(), fixtureOptions(t), func(s *Session) error {
			got = s
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.True(t, got.Closed())
	})

	t.Run("closes after panic", func(t *testing.T) {
		var got *Session
		assert.Panics(t, func() {
			_ = With(context.Background(), fixtureOptions(t), func(s *Session) error {
				got = s
				panic("boom")
			})
		})
		require.NotNil(t, got)
		assert.True(t, got.Closed())
	})

	t.Run("open failure skips fn", func(t *testing.T) {
		called := false
		opts := fixtureOptions(t)
		opts.Store.Type = "oracle"
		err := With(context.Background(), opts, func(*Session) error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.False(t, called)
	})
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		cfg  core.StoreConfig
		want string
	}{
		{core.StoreConfig{Path: "db/mstables.sqlite"}, "db/mstables.sqlite"},
		{core.StoreConfig{Host: "localhost", Port: 5432, Database: "mstables"}, "localhost:5432/mstables"},
		{core.StoreConfig{Host: "db.internal"}, "db.internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.cfg))
	}
}
