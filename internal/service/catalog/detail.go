package catalog

import (
	"context"

	"github.com/kapu/pokedex-ja-go/internal/domain"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"github.com/kapu/pokedex-ja-go/internal/service/locale"
	"github.com/kapu/pokedex-ja-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Enricher merges a detail record and its species record into a DetailRecord.
type Enricher struct {
	pokemon pokeapi.PokemonSource
	names   NameResolver
	logger  *zap.Logger
}

func NewEnricher(pokemon pokeapi.PokemonSource, names NameResolver, logger *zap.Logger) *Enricher {
	return &Enricher{
		pokemon: pokemon,
		names:   names,
		logger:  logger,
	}
}

// BuildDetail fails with *errors.DetailUnavailableError only when the primary
// record cannot be fetched or is unusable.
func (e *Enricher) BuildDetail(ctx context.Context, id int) (domain.DetailRecord, error) {
	var (
		pokemon *pokeapi.Pokemon
		text    domain.LocalizedText
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		pk, err := e.pokemon.GetPokemon(ctx, id)
		if err != nil {
			return err
		}
		pokemon = pk
		return nil
	})
	p.Go(func(ctx context.Context) error {
		text = e.names.Resolve(ctx, id)
		return nil
	})

	if err := p.Wait(); err != nil {
		e.logger.Warn("Detail fetch failed", zap.Int("id", id), zap.Error(err))
		return domain.DetailRecord{}, errors.NewDetailUnavailableError(id, err)
	}
	if len(pokemon.Types) == 0 {
		return domain.DetailRecord{}, errors.NewDetailUnavailableError(id,
			errors.NewParseError("detail record has no types", "", nil))
	}

	return domain.DetailRecord{
		ID:              pokemon.ID,
		LocalizedName:   text.Name,
		EnglishName:     pokemon.Name,
		ImageURL:        pokemon.ArtworkOrSprite(),
		Types:           locale.TranslateTypes(pokemon.TypeSlugs()),
		HeightRaw:       pokemon.Height,
		WeightRaw:       pokemon.Weight,
		HeightMeters:    domain.TenthsToUnit(pokemon.Height),
		WeightKilograms: domain.TenthsToUnit(pokemon.Weight),
		FlavorText:      text.FlavorText,
		Stats:           selectStats(pokemon.Stats),
		CryURL:          pokemon.CryURL(),
		NameSource:      text.Source,
	}, nil
}

// Fixed positions in the six element stat array; special attack and special
// defense (3, 4) are not shown.
var statIndex = struct {
	hp, attack, defense, speed int
}{0, 1, 2, 5}

func selectStats(stats []pokeapi.PokemonStat) domain.Stats {
	return domain.Stats{
		HP:      baseStat(stats, "hp", statIndex.hp),
		Attack:  baseStat(stats, "attack", statIndex.attack),
		Defense: baseStat(stats, "defense", statIndex.defense),
		Speed:   baseStat(stats, "speed", statIndex.speed),
	}
}

// baseStat looks the stat up by name and falls back to its fixed index.
func baseStat(stats []pokeapi.PokemonStat, name string, index int) int {
	for _, s := range stats {
		if s.Stat.Name == name {
			return nonNegative(s.BaseStat)
		}
	}
	if index < len(stats) {
		return nonNegative(stats[index].BaseStat)
	}
	return 0
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
