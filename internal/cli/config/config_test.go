package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/mstables/internal/views"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/mstables/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/mstables/pkg/adapters/sqlite"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("store", "", "")
	fs.String("store-type", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("resolution", "", "")
	fs.Int("limit", 0, "")
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mstables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadConfig_Defaults tests that defaults apply with no file, env or flags.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, "db/mstables.sqlite", cfg.Store.Path)
	assert.Equal(t, "strict", cfg.Resolution)
	assert.Equal(t, views.ModeStrict, cfg.Mode())
	assert.Equal(t, DefaultLimit, cfg.Limit)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

// TestLoadConfig_Precedence tests flags > env vars > config file > defaults.
func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `
store:
  path: from-file.sqlite
resolution: drop
limit: 5
`)

	t.Run("file", func(t *testing.T) {
		cfg, err := LoadConfig(path, newFlags())
		require.NoError(t, err)
		assert.Equal(t, "from-file.sqlite", cfg.Store.Path)
		assert.Equal(t, views.ModeDrop, cfg.Mode())
		assert.Equal(t, 5, cfg.Limit)
		assert.Equal(t, path, GetConfigFileUsed())
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("MSTABLES_STORE_PATH", "from-env.sqlite")
		t.Setenv("MSTABLES_LIMIT", "7")

		cfg, err := LoadConfig(path, newFlags())
		require.NoError(t, err)
		assert.Equal(t, "from-env.sqlite", cfg.Store.Path)
		assert.Equal(t, 7, cfg.Limit)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("MSTABLES_STORE_PATH", "from-env.sqlite")

		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--store", "from-flag.sqlite", "--resolution", "strict", "-v"}))

		cfg, err := LoadConfig(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "from-flag.sqlite", cfg.Store.Path)
		assert.Equal(t, views.ModeStrict, cfg.Mode())
		assert.True(t, cfg.Verbose)
		assert.Equal(t, 5, cfg.Limit, "unset flags do not override the file")
	})
}

// TestLoadConfig_Postgres tests store defaults and ${VAR} expansion.
func TestLoadConfig_Postgres(t *testing.T) {
	t.Setenv("MS_PG_PASSWORD", "s3cret")
	path := writeConfig(t, `
store:
  type: postgres
  host: localhost
  database: mstables
  user: reader
  password: ${MS_PG_PASSWORD}
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Store.Port)
	assert.Empty(t, cfg.Store.Path)
	assert.Equal(t, "s3cret", cfg.Store.Password)

	sc := cfg.Store.Core()
	assert.Equal(t, "reader", sc.Username)
	assert.Equal(t, "mstables", sc.Database)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"unknown store type", "store:\n  type: oracle\n", "unknown store type"},
		{"unknown resolution", "resolution: inner\n", "unknown resolution mode"},
		{"negative limit", "limit: -1\n", "limit must not be negative"},
		{"postgres without host", "store:\n  type: postgres\n", "store.host is required"},
		{"malformed yaml", "store: [\n", "error reading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

// TestStoreConfig_Validate tests store type normalization and lookup.
func TestStoreConfig_Validate(t *testing.T) {
	s := StoreConfig{Type: "SQLite", Path: "x.sqlite"}
	require.NoError(t, s.Validate())
	assert.Equal(t, "sqlite", s.Type)

	s = StoreConfig{Type: "PostgreSQL", Host: "db.internal"}
	require.NoError(t, s.Validate())
	assert.Equal(t, "postgres", s.Type, "aliases resolve to the canonical name")

	s = StoreConfig{Type: "invalid_db"}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite", "error should list available adapters")
	assert.Contains(t, err.Error(), "mstables.yaml", "error should mention config file")

	s = StoreConfig{}
	assert.ErrorContains(t, s.Validate(), "store type is required")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "store.path", envKey("MSTABLES_STORE_PATH"))
	assert.Equal(t, "store.type", envKey("MSTABLES_STORE_TYPE"))
	assert.Equal(t, "resolution", envKey("MSTABLES_RESOLUTION"))
}

// TestExpandEnvVars tests the expandEnvVars function.
func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")
	t.Setenv("TEST_VAR_TWO", "value_two")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single variable", "${TEST_VAR_ONE}", "value_one"},
		{"multiple variables", "${TEST_VAR_ONE}/${TEST_VAR_TWO}", "value_one/value_two"},
		{"unset variable stays as-is", "${UNSET_VARIABLE}", "${UNSET_VARIABLE}"},
		{"no variables", "plain string", "plain string"},
		{"empty string", "", ""},
		{"mixed set and unset", "${TEST_VAR_ONE}:${UNSET_VAR}", "value_one:${UNSET_VAR}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

func TestGetConfig_Fallback(t *testing.T) {
	cfg := GetConfig(context.Background())
	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, "db/mstables.sqlite", cfg.Store.Path)
	assert.Equal(t, views.ModeStrict, cfg.Mode())

	loaded := &Config{Limit: 3}
	ctx := context.WithValue(context.Background(), ConfigKey(), loaded)
	assert.Same(t, loaded, GetConfig(ctx))
	assert.NotNil(t, GetLogger(ctx))
}
