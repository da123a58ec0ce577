package game

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/kapu/pokedex-ja-go/internal/constants"
	"github.com/kapu/pokedex-ja-go/internal/domain"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi/pokeapitest"
	"github.com/kapu/pokedex-ja-go/internal/service/locale"
	"github.com/kapu/pokedex-ja-go/pkg/errors"
	"go.uber.org/zap"
)

// seqRand returns its values in order, each reduced modulo n.
type seqRand struct {
	values []int
	calls  []int
}

func (s *seqRand) IntN(n int) int {
	s.calls = append(s.calls, n)
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

func newSources(t *testing.T) (*pokeapitest.Server, *pokeapi.Client, *locale.Resolver) {
	t.Helper()

	srv := pokeapitest.NewServer(t)
	srv.Add(pokeapitest.NewPokemon(4, "charmander", 6, 85, 39, "fire"),
		pokeapitest.NewSpecies(4, "Charmander", "ヒトカゲ", ""))
	srv.Add(pokeapitest.NewPokemon(25, "pikachu", 4, 60, 35, "electric"),
		pokeapitest.NewSpecies(25, "Pikachu", "ピカチュウ", ""))
	srv.Add(pokeapitest.NewPokemon(143, "snorlax", 21, 4600, 110, "normal"), nil)
	srv.Add(pokeapitest.NewPokemon(7, "squirtle", 5, 90, 44),
		pokeapitest.NewSpecies(7, "Squirtle", "ゼニガメ", ""))

	client := pokeapi.NewClient(srv.BaseURL(), &http.Client{Timeout: 2 * time.Second}, nil, zap.NewNop())
	return srv, client, locale.NewResolver(client, "ja", zap.NewNop())
}

func TestQuizStartRoundDrawsFromCeiling(t *testing.T) {
	_, client, resolver := newSources(t)
	rng := &seqRand{values: []int{24}}

	round, err := NewQuizEngine(client, resolver, 151, zap.NewNop()).StartRound(context.Background(), rng)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(rng.calls) != 1 || rng.calls[0] != 151 {
		t.Fatalf("expected a single draw over 151, got %v", rng.calls)
	}
	if round.TargetID != 25 || round.CorrectName != "ピカチュウ" {
		t.Fatalf("unexpected round %+v", round)
	}
	if round.Status != domain.QuizStatusPlaying || round.HintRevealed {
		t.Fatalf("expected fresh playing round, got %+v", round)
	}
	if len(round.Types) != 1 || round.Types[0] != "でんき" {
		t.Fatalf("expected translated types, got %v", round.Types)
	}
	if round.ImageURL != "https://sprites.example/25.png" {
		t.Fatalf("expected front sprite, got %q", round.ImageURL)
	}
}

func TestQuizRoundPlaysThrough(t *testing.T) {
	_, client, resolver := newSources(t)

	round, err := NewQuizEngine(client, resolver, 151, zap.NewNop()).StartRound(context.Background(), &seqRand{values: []int{3}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	round = round.RevealHint().SubmitAnswer("charmander")
	if round.Status != domain.QuizStatusIncorrect || !round.HintRevealed {
		t.Fatalf("expected incorrect with hint kept, got %+v", round)
	}
	round = round.SubmitAnswer("ヒトカゲ")
	if round.Status != domain.QuizStatusCorrect {
		t.Fatalf("expected correct, got %s", round.Status)
	}
}

func TestQuizStartRoundDetailFailure(t *testing.T) {
	_, client, resolver := newSources(t)

	_, err := NewQuizEngine(client, resolver, 151, zap.NewNop()).StartRound(context.Background(), &seqRand{values: []int{0}})

	var unavailable *errors.DetailUnavailableError
	if !stderrors.As(err, &unavailable) || unavailable.ID != 1 {
		t.Fatalf("expected DetailUnavailableError for id 1, got %v", err)
	}
}

func TestDuelStartRoundBuildsContenders(t *testing.T) {
	_, client, resolver := newSources(t)

	round, err := NewDuelEngine(client, resolver, 151, zap.NewNop()).StartRound(context.Background(), &seqRand{values: []int{24, 142}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if round.Left.ID != 25 || round.Left.Name != "ピカチュウ" || round.Left.WeightRaw != 60 {
		t.Fatalf("unexpected left contender %+v", round.Left)
	}
	if round.Right.ID != 143 || round.Right.WeightRaw != 4600 {
		t.Fatalf("unexpected right contender %+v", round.Right)
	}
	if round.Right.Name != constants.FallbackMarker {
		t.Fatalf("expected missing species to degrade to marker, got %q", round.Right.Name)
	}
	if round.Status != domain.DuelStatusUnanswered {
		t.Fatalf("expected unanswered, got %s", round.Status)
	}

	resolved, err := round.Choose(domain.DuelSideLeft)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resolved.WinningSide != domain.DuelSideRight || resolved.IsCorrect() {
		t.Fatalf("expected the heavier right side to win, got %+v", resolved)
	}
}

func TestDuelStartRoundAllowsSameID(t *testing.T) {
	_, client, resolver := newSources(t)

	round, err := NewDuelEngine(client, resolver, 151, zap.NewNop()).StartRound(context.Background(), &seqRand{values: []int{3, 3}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if round.Left.ID != 4 || round.Right.ID != 4 {
		t.Fatalf("expected duplicate pairing, got %d vs %d", round.Left.ID, round.Right.ID)
	}

	resolved, _ := round.Choose(domain.DuelSideRight)
	if !resolved.IsCorrect() {
		t.Fatalf("expected tie to favour the chooser")
	}
}

func TestDuelStartRoundEitherFailureFails(t *testing.T) {
	srv, client, resolver := newSources(t)
	srv.SetFail("/pokemon/143", http.StatusInternalServerError)

	_, err := NewDuelEngine(client, resolver, 151, zap.NewNop()).StartRound(context.Background(), &seqRand{values: []int{24, 142}})

	var unavailable *errors.DetailUnavailableError
	if !stderrors.As(err, &unavailable) {
		t.Fatalf("expected DetailUnavailableError, got %v", err)
	}
}

func TestStartRoundHonoursCancellation(t *testing.T) {
	_, client, resolver := newSources(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewQuizEngine(client, resolver, 151, zap.NewNop()).StartRound(ctx, &seqRand{values: []int{24}})
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestQuizStartRoundRejectsUntypedRecord(t *testing.T) {
	_, client, resolver := newSources(t)

	_, err := NewQuizEngine(client, resolver, 151, zap.NewNop()).StartRound(context.Background(), &seqRand{values: []int{6}})

	var unavailable *errors.DetailUnavailableError
	if !stderrors.As(err, &unavailable) || unavailable.ID != 7 {
		t.Fatalf("expected DetailUnavailableError for id 7, got %v", err)
	}
	var parseErr *errors.ParseError
	if !stderrors.As(err, &parseErr) {
		t.Fatalf("expected ParseError in chain, got %v", err)
	}
}
