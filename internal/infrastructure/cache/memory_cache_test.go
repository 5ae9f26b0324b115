package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Total int64  `json:"total"`
	Date  string `json:"date"`
}

func TestMemoryCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	gen, err := c.Generation(ctx)
	require.NoError(t, err)

	var out payload
	ok, err := c.Get(ctx, gen, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, gen, "k", payload{Total: 10, Date: "2024-01-15"}, time.Minute))
	ok, err = c.Get(ctx, gen, "k", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Total: 10, Date: "2024-01-15"}, out)

	require.NoError(t, c.Invalidate(ctx))
	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)
	ok, err = c.Get(ctx, next, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_SetDeGeneracionViejaSeDescarta(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	old, err := c.Generation(ctx)
	require.NoError(t, err)

	// Una mutación confirma mientras se arma el reporte.
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, old, "k", payload{Total: 1}, time.Minute))
	assert.Equal(t, 0, c.Len())

	var out payload
	ok, err := c.Get(ctx, old, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_Expira(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, 0, "k", payload{Total: 1}, time.Minute))
	now = now.Add(2 * time.Minute)

	var out payload
	ok, err := c.Get(ctx, 0, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
