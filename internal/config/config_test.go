package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/mstables/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStoreDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   core.StoreConfig
		want core.StoreConfig
	}{
		{
			name: "empty",
			in:   core.StoreConfig{},
			want: core.StoreConfig{Type: "sqlite", Path: DefaultStorePath},
		},
		{
			name: "duckdb keeps path",
			in:   core.StoreConfig{Type: "duckdb", Path: "data/ms.duckdb"},
			want: core.StoreConfig{Type: "duckdb", Path: "data/ms.duckdb"},
		},
		{
			name: "postgres gets port, not path",
			in:   core.StoreConfig{Type: "postgres", Host: "localhost"},
			want: core.StoreConfig{Type: "postgres", Host: "localhost", Port: 5432},
		},
		{
			name: "postgres keeps port",
			in:   core.StoreConfig{Type: "postgres", Port: 6543},
			want: core.StoreConfig{Type: "postgres", Port: 6543},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			ApplyStoreDefaults(&got)
			assert.Equal(t, tt.want, got)
		})
	}

	ApplyStoreDefaults(nil)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, FindConfigFile(dir))

	alt := filepath.Join(dir, ConfigFileNameAlt)
	require.NoError(t, os.WriteFile(alt, []byte("verbose: true\n"), 0o600))
	assert.Equal(t, alt, FindConfigFile(dir))

	primary := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(primary, []byte("verbose: true\n"), 0o600))
	assert.Equal(t, primary, FindConfigFile(dir), "mstables.yaml wins over mstables.yml")
}
