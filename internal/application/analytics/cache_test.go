package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/infrastructure/cache"
)

func TestCached_InvalidacionDuranteBuildNoDejaValorViejo(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()

	got, err := cached(ctx, c, "k", 0, func() (string, error) {
		// La mutación confirma e invalida mientras se arma el reporte con datos previos.
		require.NoError(t, c.Invalidate(ctx))
		return "viejo", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "viejo", got)

	got, err = cached(ctx, c, "k", 0, func() (string, error) { return "nuevo", nil })
	require.NoError(t, err)
	assert.Equal(t, "nuevo", got)

	got, err = cached(ctx, c, "k", 0, func() (string, error) { return "otro", nil })
	require.NoError(t, err)
	assert.Equal(t, "nuevo", got, "sin mutaciones se sirve desde el caché")
}

// genCache registra la generación con la que se guarda cada clave.
type genCache struct {
	gen    int64
	genErr error
	setGen []int64
}

func (c *genCache) Generation(context.Context) (int64, error) { return c.gen, c.genErr }
func (c *genCache) Get(context.Context, int64, string, any) (bool, error) {
	return false, nil
}
func (c *genCache) Set(_ context.Context, gen int64, _ string, _ any, _ time.Duration) error {
	c.setGen = append(c.setGen, gen)
	return nil
}
func (c *genCache) Invalidate(context.Context) error {
	c.gen++
	return nil
}

func TestCached_GuardaConLaGeneracionLeidaAntesDelBuild(t *testing.T) {
	ctx := context.Background()
	c := &genCache{gen: 4}

	_, err := cached(ctx, c, "k", time.Minute, func() (int, error) {
		return 1, c.Invalidate(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, c.setGen)
}

func TestCached_CacheCaidoCalculaIgual(t *testing.T) {
	c := &genCache{genErr: errors.New("redis: connection refused")}

	got, err := cached(context.Background(), c, "k", time.Minute, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Empty(t, c.setGen)
}
