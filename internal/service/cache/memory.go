package cache

import (
	"context"
	"sync"
	"time"

	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"go.uber.org/zap"
)

type memoryEntry struct {
	species   *pokeapi.Species
	expiresAt time.Time
}

// MemoryStore keeps species records in process. A ttl of 0 keeps entries
// forever.
type MemoryStore struct {
	entries sync.Map // map[int]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

func NewMemoryStore(ttl time.Duration, logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (m *MemoryStore) Get(_ context.Context, id int) (*pokeapi.Species, bool, error) {
	val, ok := m.entries.Load(id)
	if !ok {
		return nil, false, nil
	}
	entry := val.(memoryEntry)
	if m.expired(entry) {
		m.entries.CompareAndDelete(id, val)
		return nil, false, nil
	}
	return entry.species, true, nil
}

func (m *MemoryStore) Set(_ context.Context, id int, species *pokeapi.Species) error {
	entry := memoryEntry{species: species}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.entries.Store(id, entry)
	return nil
}

// Purge drops expired entries and returns how many were removed.
func (m *MemoryStore) Purge() int {
	removed := 0
	m.entries.Range(func(key, val any) bool {
		if m.expired(val.(memoryEntry)) && m.entries.CompareAndDelete(key, val) {
			removed++
		}
		return true
	})
	return removed
}

// RunSweeper purges expired entries every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.Purge(); removed > 0 {
				m.logger.Debug("Species cache purged", zap.Int("removed", removed))
			}
		}
	}
}

func (m *MemoryStore) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)
}

// NopStore never stores anything; used when caching is disabled.
type NopStore struct{}

func (NopStore) Get(context.Context, int) (*pokeapi.Species, bool, error) { return nil, false, nil }

func (NopStore) Set(context.Context, int, *pokeapi.Species) error { return nil }
