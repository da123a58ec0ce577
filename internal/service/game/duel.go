package game

import (
	"context"

	"github.com/kapu/pokedex-ja-go/internal/domain"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"go.uber.org/zap"
)

type DuelEngine struct {
	pokemon pokeapi.PokemonSource
	names   NameResolver
	ceiling int
	logger  *zap.Logger
}

func NewDuelEngine(pokemon pokeapi.PokemonSource, names NameResolver, ceiling int, logger *zap.Logger) *DuelEngine {
	if ceiling < 1 {
		ceiling = 1
	}
	return &DuelEngine{
		pokemon: pokemon,
		names:   names,
		ceiling: ceiling,
		logger:  logger,
	}
}

// StartRound draws two ids independently; the same id may appear on both sides.
func (d *DuelEngine) StartRound(ctx context.Context, rng Rand) (domain.DuelRound, error) {
	leftID := drawID(rng, d.ceiling)
	rightID := drawID(rng, d.ceiling)

	subjects, err := fetchSubjects(ctx, d.pokemon, d.names, leftID, rightID)
	if err != nil {
		d.logger.Warn("Duel round failed to start",
			zap.Int("left", leftID),
			zap.Int("right", rightID),
			zap.Error(err),
		)
		return domain.DuelRound{}, err
	}

	return domain.DuelRound{
		Left:   contender(leftID, subjects[0]),
		Right:  contender(rightID, subjects[1]),
		Status: domain.DuelStatusUnanswered,
	}, nil
}

func contender(id int, s subject) domain.Contender {
	return domain.Contender{
		ID:        id,
		Name:      s.text.Name,
		WeightRaw: s.pokemon.Weight,
		ImageURL:  s.pokemon.FrontDefault(),
	}
}
