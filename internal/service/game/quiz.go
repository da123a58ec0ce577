package game

import (
	"context"

	"github.com/kapu/pokedex-ja-go/internal/domain"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"github.com/kapu/pokedex-ja-go/internal/service/locale"
	"github.com/kapu/pokedex-ja-go/pkg/errors"
	"go.uber.org/zap"
)

type QuizEngine struct {
	pokemon pokeapi.PokemonSource
	names   NameResolver
	ceiling int
	logger  *zap.Logger
}

func NewQuizEngine(pokemon pokeapi.PokemonSource, names NameResolver, ceiling int, logger *zap.Logger) *QuizEngine {
	if ceiling < 1 {
		ceiling = 1
	}
	return &QuizEngine{
		pokemon: pokemon,
		names:   names,
		ceiling: ceiling,
		logger:  logger,
	}
}

// StartRound draws a target and builds a fresh round in the Playing state.
func (q *QuizEngine) StartRound(ctx context.Context, rng Rand) (domain.QuizRound, error) {
	id := drawID(rng, q.ceiling)

	subjects, err := fetchSubjects(ctx, q.pokemon, q.names, id)
	if err != nil {
		q.logger.Warn("Quiz round failed to start", zap.Int("id", id), zap.Error(err))
		return domain.QuizRound{}, err
	}
	target := subjects[0]
	if len(target.pokemon.Types) == 0 {
		err := errors.NewDetailUnavailableError(id, errors.NewParseError("detail record has no types", "", nil))
		q.logger.Warn("Quiz round failed to start", zap.Int("id", id), zap.Error(err))
		return domain.QuizRound{}, err
	}

	q.logger.Debug("Quiz round started",
		zap.Int("id", id),
		zap.String("name_source", target.text.Source.String()),
	)

	return domain.QuizRound{
		TargetID:    id,
		CorrectName: target.text.Name,
		ImageURL:    target.pokemon.FrontDefault(),
		Types:       locale.TranslateTypes(target.pokemon.TypeSlugs()),
		CryURL:      target.pokemon.CryURL(),
		Status:      domain.QuizStatusPlaying,
	}, nil
}
