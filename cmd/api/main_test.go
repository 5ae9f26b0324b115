package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	infracache "github.com/jhoicas/ledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/ledger-api/pkg/config"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

func TestOpenReportCache_SinRedisUsaMemoria(t *testing.T) {
	log := logger.New(logger.Config{Env: "test", Output: io.Discard})

	c, closeFn := openReportCache(context.Background(), config.RedisConfig{}, "ledger", log)
	defer closeFn()
	assert.IsType(t, &infracache.MemoryCache{}, c)
}

func TestOpenReportCache_RedisCaidoUsaMemoria(t *testing.T) {
	log := logger.New(logger.Config{Env: "test", Output: io.Discard})

	// Puerto 1 en loopback: la conexión se rechaza de inmediato.
	c, closeFn := openReportCache(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, "ledger", log)
	defer closeFn()
	assert.IsType(t, &infracache.MemoryCache{}, c)
}
