package views

import (
	"context"
	"testing"

	"github.com/leapstack-labs/mstables/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLoader records every table read.
type countingLoader struct {
	reads []string
}

func (c *countingLoader) Table(_ context.Context, name string) (*frame.Frame, error) {
	c.reads = append(c.reads, name)
	return frame.New([]string{"ticker_id"}, [][]any{{int64(1)}}), nil
}

func TestNames(t *testing.T) {
	names := Names()
	require.Len(t, names, 15)

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate view %s", n)
		seen[n] = true

		d, ok := Lookup(n)
		require.True(t, ok)
		assert.Equal(t, n, d.Name)
		assert.NotEmpty(t, d.Table)
		assert.NotNil(t, d.Build)
	}

	_, ok := Lookup("balance")
	assert.False(t, ok)
}

func TestBuild_UnknownView(t *testing.T) {
	_, err := NewBuilder(&countingLoader{}, nil).Build(context.Background(), "balance")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestBuild_ReloadsBaseTable(t *testing.T) {
	tl := &countingLoader{}
	b := NewBuilder(tl, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := b.Build(ctx, ViewGrowth)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"MSratio_growth", "MSratio_growth"}, tl.reads)
}
