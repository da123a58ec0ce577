package catalog

import (
	"context"
	"fmt"

	"github.com/kapu/pokedex-ja-go/internal/domain"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"github.com/kapu/pokedex-ja-go/internal/util"
	"github.com/kapu/pokedex-ja-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type RosterSource interface {
	GetRoster(ctx context.Context, limit int) (*pokeapi.RosterResponse, error)
}

// NameResolver never fails; see locale.Resolver.
type NameResolver interface {
	Resolve(ctx context.Context, id int) domain.LocalizedText
}

// Aggregator builds the localized listing from the roster.
type Aggregator struct {
	roster      RosterSource
	names       NameResolver
	concurrency int
	logger      *zap.Logger
}

func NewAggregator(roster RosterSource, names NameResolver, concurrency int, logger *zap.Logger) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{
		roster:      roster,
		names:       names,
		concurrency: concurrency,
		logger:      logger,
	}
}

type rosterItem struct {
	id          int
	englishName string
}

// BuildCatalog returns one entry per roster item in roster order. A failed
// roster fetch fails the whole call; a failed name lookup only degrades its
// own entry.
func (a *Aggregator) BuildCatalog(ctx context.Context, pageSize int) ([]domain.CatalogEntry, error) {
	if pageSize < 1 {
		return nil, errors.NewValidationError("page size must be positive", "limit", pageSize)
	}

	roster, err := a.roster.GetRoster(ctx, pageSize)
	if err != nil {
		a.logger.Error("Failed to fetch roster", zap.Int("limit", pageSize), zap.Error(err))
		return nil, err
	}

	items := make([]rosterItem, len(roster.Results))
	for i, res := range roster.Results {
		id, ok := util.IDFromURL(res.URL)
		if !ok {
			return nil, errors.NewParseError(fmt.Sprintf("roster entry %q has no numeric id", res.Name), res.URL, nil)
		}
		items[i] = rosterItem{id: id, englishName: res.Name}
	}

	// each task owns one slot, so order follows the roster regardless of completion order
	entries := make([]domain.CatalogEntry, len(items))
	p := pool.New().WithMaxGoroutines(a.concurrency)
	for idx, item := range items {
		p.Go(func() {
			text := a.names.Resolve(ctx, item.id)
			entries[idx] = domain.CatalogEntry{
				ID:            item.id,
				EnglishName:   item.englishName,
				LocalizedName: text.Name,
				ImageURL:      pokeapi.SpriteURL(item.id),
				NameSource:    text.Source,
			}
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	degraded := 0
	for _, entry := range entries {
		if entry.NameSource.IsFallback() {
			degraded++
		}
	}
	a.logger.Info("Catalog built",
		zap.Int("entries", len(entries)),
		zap.Int("degraded", degraded),
		zap.Int("concurrency", a.concurrency),
	)

	return entries, nil
}
