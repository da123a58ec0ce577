// Package game starts quiz and weight duel rounds. Transitions after the start
// live on the round values in package domain.
package game

import (
	"context"

	"github.com/kapu/pokedex-ja-go/internal/domain"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"github.com/kapu/pokedex-ja-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// Rand is the random source a round is drawn from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type NameResolver interface {
	Resolve(ctx context.Context, id int) domain.LocalizedText
}

// drawID returns an id in [1, ceiling].
func drawID(rng Rand, ceiling int) int {
	return rng.IntN(ceiling) + 1
}

type subject struct {
	pokemon *pokeapi.Pokemon
	text    domain.LocalizedText
}

// fetchSubjects fetches every id concurrently, each as a detail record plus its
// localized text. The first detail failure cancels the rest.
func fetchSubjects(ctx context.Context, source pokeapi.PokemonSource, names NameResolver, ids ...int) ([]subject, error) {
	subjects := make([]subject, len(ids))

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for idx, id := range ids {
		p.Go(func(ctx context.Context) error {
			pk, err := source.GetPokemon(ctx, id)
			if err != nil {
				return errors.NewDetailUnavailableError(id, err)
			}
			subjects[idx].pokemon = pk
			return nil
		})
		p.Go(func(ctx context.Context) error {
			subjects[idx].text = names.Resolve(ctx, id)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return subjects, nil
}
