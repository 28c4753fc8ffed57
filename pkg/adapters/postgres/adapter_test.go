package postgres

import (
	"context"
	"testing"

	"github.com/leapstack-labs/mstables/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   adapter.Config
		expected string
	}{
		{
			name: "basic connection",
			config: adapter.Config{
				Host:     "localhost",
				Port:     5432,
				Database: "mstables",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=mstables sslmode=disable user=user password=pass",
		},
		{
			name: "with custom sslmode",
			config: adapter.Config{
				Host:     "prod.example.com",
				Port:     5432,
				Database: "mstables",
				Username: "reader",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=prod.example.com port=5432 dbname=mstables sslmode=require user=reader",
		},
		{
			name: "defaults",
			config: adapter.Config{
				Database: "mstables",
			},
			expected: "host=localhost port=5432 dbname=mstables sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPostgresDSN(tt.config))
		})
	}
}

func TestAdapter_NotConnected(t *testing.T) {
	adp := New(nil)

	_, err := adp.Query(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.False(t, adp.IsConnected())
	assert.NoError(t, adp.Close())
}

func TestRegistered(t *testing.T) {
	assert.True(t, adapter.IsRegistered("postgres"))
	assert.Equal(t, `"MSvaluation"`, New(nil).QuoteIdent("MSvaluation"))
}
