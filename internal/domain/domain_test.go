package domain

import (
	stderrors "errors"
	"testing"

	"github.com/kapu/pokedex-ja-go/pkg/errors"
)

func TestTenthsToUnit(t *testing.T) {
	if got := TenthsToUnit(100); got != 10.0 {
		t.Fatalf("expected 100 -> 10.0, got %v", got)
	}
	if got := TenthsToUnit(4); got != 0.4 {
		t.Fatalf("expected 4 -> 0.4, got %v", got)
	}
}

func newQuizRound() QuizRound {
	return QuizRound{
		TargetID:    25,
		CorrectName: "ピカチュウ",
		Types:       []string{"でんき"},
		Status:      QuizStatusPlaying,
	}
}

func TestQuizSubmitAnswerExactMatch(t *testing.T) {
	cases := []struct {
		input string
		want  QuizStatus
	}{
		{"ピカチュウ", QuizStatusCorrect},
		{"pikachu", QuizStatusIncorrect},
		{"ピカチュウ ", QuizStatusIncorrect},
		{"", QuizStatusIncorrect},
	}

	for _, tc := range cases {
		round := newQuizRound()
		got := round.SubmitAnswer(tc.input)
		if got.Status != tc.want {
			t.Errorf("SubmitAnswer(%q) status = %s, want %s", tc.input, got.Status, tc.want)
		}
		if round.Status != QuizStatusPlaying {
			t.Errorf("original round mutated to %s", round.Status)
		}
	}
}

func TestQuizIncorrectAllowsRetryKeepingHint(t *testing.T) {
	round := newQuizRound().RevealHint().SubmitAnswer("ライチュウ")
	if round.Status != QuizStatusIncorrect || !round.HintRevealed {
		t.Fatalf("expected incorrect round with hint kept, got %+v", round)
	}

	round = round.SubmitAnswer("ピカチュウ")
	if round.Status != QuizStatusCorrect {
		t.Fatalf("expected retry to succeed, got %s", round.Status)
	}
	if round.TargetID != 25 {
		t.Fatalf("expected round identity to be preserved")
	}

	round = round.SubmitAnswer("wrong")
	if round.Status != QuizStatusCorrect {
		t.Fatalf("expected correct to be terminal, got %s", round.Status)
	}
}

func TestQuizRevealHintIdempotent(t *testing.T) {
	round := newQuizRound().RevealHint().RevealHint()
	if !round.HintRevealed || round.Status != QuizStatusPlaying {
		t.Fatalf("unexpected round %+v", round)
	}
}

func TestQuizViewHidesAnswerUntilOver(t *testing.T) {
	round := newQuizRound()
	view := round.View()
	if view.Answer != "" || view.Hint != nil {
		t.Fatalf("expected answer and hint hidden, got %+v", view)
	}

	view = round.RevealHint().Surrender().View()
	if view.Status != QuizStatusRevealed {
		t.Fatalf("expected revealed status, got %s", view.Status)
	}
	if view.Answer != "ピカチュウ" || len(view.Hint) != 1 {
		t.Fatalf("expected answer and hint visible, got %+v", view)
	}
}

func newDuel(left, right int) DuelRound {
	return DuelRound{
		Left:   Contender{ID: 1, Name: "フシギダネ", WeightRaw: left},
		Right:  Contender{ID: 4, Name: "ヒトカゲ", WeightRaw: right},
		Status: DuelStatusUnanswered,
	}
}

func TestDuelChooseLighterSide(t *testing.T) {
	round, err := newDuel(60, 100).Choose(DuelSideLeft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if round.Status != DuelStatusResolved {
		t.Fatalf("expected resolved, got %s", round.Status)
	}
	if round.WinningSide != DuelSideRight {
		t.Fatalf("expected right to win, got %s", round.WinningSide)
	}
	if round.IsCorrect() {
		t.Fatalf("expected clicking the lighter side to be incorrect")
	}
}

func TestDuelTieFavorsChooser(t *testing.T) {
	for _, side := range []DuelSide{DuelSideLeft, DuelSideRight} {
		round, err := newDuel(60, 60).Choose(side)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if round.WinningSide != side || !round.IsCorrect() {
			t.Fatalf("expected %s to win a tie, got %s", side, round.WinningSide)
		}
	}
}

func TestDuelResolvedIsTerminal(t *testing.T) {
	round, _ := newDuel(100, 60).Choose(DuelSideLeft)
	again, err := round.Choose(DuelSideRight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Chosen != DuelSideLeft || again.WinningSide != DuelSideLeft {
		t.Fatalf("expected resolved round to be unchanged, got %+v", again)
	}
}

func TestDuelChooseRejectsInvalidSide(t *testing.T) {
	_, err := newDuel(1, 2).Choose(DuelSide("up"))
	var validationErr *errors.ValidationError
	if !stderrors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDuelViewRevealsWeightsAfterResolution(t *testing.T) {
	view := newDuel(60, 100).View()
	if view.LeftKilograms != nil || view.Correct != nil {
		t.Fatalf("expected weights hidden before resolution")
	}

	round, _ := newDuel(60, 100).Choose(DuelSideRight)
	view = round.View()
	if view.LeftKilograms == nil || *view.LeftKilograms != 6.0 || *view.RightKilograms != 10.0 {
		t.Fatalf("unexpected weights %+v", view)
	}
	if view.Correct == nil || !*view.Correct {
		t.Fatalf("expected correct feedback")
	}
}
