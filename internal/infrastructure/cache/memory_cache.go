package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jhoicas/ledger-api/internal/application/ports"
)

var _ ports.ReportCache = (*MemoryCache)(nil)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryCache caché de reportes en proceso. Se usa cuando no hay Redis configurado o no responde,
// y solo es coherente con una única instancia de la API.
// Guarda JSON para que Get devuelva copias, igual que Redis.
type MemoryCache struct {
	mu      sync.Mutex
	gen     int64
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache crea un caché vacío en la generación 0.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

// Generation generación vigente.
func (c *MemoryCache) Generation(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

// Get decodifica la entrada en dest. Una generación vieja o una entrada vencida son un fallo de caché.
func (c *MemoryCache) Get(_ context.Context, gen int64, key string, dest any) (bool, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if gen != c.gen {
		ok = false
	}
	if ok && !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(e.raw, dest)
}

// Set guarda value con el TTL dado (0 = sin vencimiento). Si gen ya no es la vigente
// el valor se descarta.
func (c *MemoryCache) Set(_ context.Context, gen int64, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e := memoryEntry{raw: raw}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.entries[key] = e
	return nil
}

// Invalidate descarta todas las entradas y pasa a la siguiente generación.
func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.gen++
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// Len cantidad de entradas guardadas (incluye vencidas aún no leídas).
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
