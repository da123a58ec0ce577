package cache

import (
	"context"
	"strconv"

	"github.com/kapu/pokedex-ja-go/internal/constants"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"go.uber.org/zap"
)

// SpeciesStore caches species records by national dex number.
// A miss is (nil, false, nil).
type SpeciesStore interface {
	Get(ctx context.Context, id int) (*pokeapi.Species, bool, error)
	Set(ctx context.Context, id int, species *pokeapi.Species) error
}

func speciesKey(id int) string {
	return constants.CacheConfig.SpeciesKeyPrefix + strconv.Itoa(id)
}

// SpeciesCache is a read-through pokeapi.SpeciesSource. Store errors are
// logged and treated as misses; they never fail a lookup.
type SpeciesCache struct {
	source pokeapi.SpeciesSource
	store  SpeciesStore
	logger *zap.Logger
}

func NewSpeciesCache(source pokeapi.SpeciesSource, store SpeciesStore, logger *zap.Logger) *SpeciesCache {
	return &SpeciesCache{
		source: source,
		store:  store,
		logger: logger,
	}
}

func (c *SpeciesCache) GetSpecies(ctx context.Context, id int) (*pokeapi.Species, error) {
	cached, found, err := c.store.Get(ctx, id)
	if err != nil {
		c.logger.Warn("Species cache read failed", zap.Int("id", id), zap.Error(err))
	}
	if found {
		c.logger.Debug("Species cache hit", zap.Int("id", id))
		return cached, nil
	}

	species, err := c.source.GetSpecies(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, id, species); err != nil {
		c.logger.Warn("Species cache write failed", zap.Int("id", id), zap.Error(err))
	}
	return species, nil
}
