package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stock-register/internal/application/dto"
	"github.com/jhoicas/stock-register/internal/application/inventory"
)

var _ inventory.SnapshotCache = (*MemorySnapshotCache)(nil)

type memoryEntry struct {
	snapshot dto.StockSnapshotDTO
	storedAt time.Time
}

// MemorySnapshotCache caché en proceso, usada cuando no hay REDIS_URL.
type MemorySnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySnapshotCache construye la caché. ttl <= 0 significa sin expiración.
func NewMemorySnapshotCache(ttl time.Duration) *MemorySnapshotCache {
	return &MemorySnapshotCache{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (c *MemorySnapshotCache) WithClock(now func() time.Time) *MemorySnapshotCache {
	c.now = now
	return c
}

// Get devuelve una copia del snapshot guardado; las entradas vencidas se descartan.
func (c *MemorySnapshotCache) Get(_ context.Context, scope string) (*dto.StockSnapshotDTO, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[scope]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, scope)
		c.mu.Unlock()
		return nil, false, nil
	}
	snap := e.snapshot
	snap.Items = append([]dto.StockLineDTO(nil), e.snapshot.Items...)
	return &snap, true, nil
}

// Set reemplaza el snapshot de scope.
func (c *MemorySnapshotCache) Set(_ context.Context, scope string, snapshot *dto.StockSnapshotDTO) error {
	if snapshot == nil {
		return nil
	}
	snap := *snapshot
	snap.Items = append([]dto.StockLineDTO(nil), snapshot.Items...)
	c.mu.Lock()
	c.entries[scope] = memoryEntry{snapshot: snap, storedAt: c.now()}
	c.mu.Unlock()
	return nil
}
