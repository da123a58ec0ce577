package domain

type QuizStatus string

const (
	QuizStatusPlaying   QuizStatus = "playing"
	QuizStatusCorrect   QuizStatus = "correct"
	QuizStatusIncorrect QuizStatus = "incorrect"
	QuizStatusRevealed  QuizStatus = "revealed"
)

func (s QuizStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the round accepts no further answers.
func (s QuizStatus) IsTerminal() bool {
	return s == QuizStatusCorrect || s == QuizStatusRevealed
}

// QuizRound is an immutable snapshot of one identification round. Every
// transition returns a new value; the holder replaces its reference.
type QuizRound struct {
	TargetID     int        `json:"target_id"`
	CorrectName  string     `json:"-"`
	ImageURL     string     `json:"image_url"`
	Types        []string   `json:"-"`
	CryURL       string     `json:"cry_url,omitempty"`
	HintRevealed bool       `json:"hint_revealed"`
	Status       QuizStatus `json:"status"`
}

// RevealHint marks the type hint as visible. Idempotent.
func (r QuizRound) RevealHint() QuizRound {
	r.HintRevealed = true
	return r
}

// SubmitAnswer compares input to the correct name byte for byte. No trimming
// or case folding is applied. Terminal rounds are returned unchanged.
func (r QuizRound) SubmitAnswer(input string) QuizRound {
	if r.Status.IsTerminal() {
		return r
	}
	if input == r.CorrectName {
		r.Status = QuizStatusCorrect
	} else {
		r.Status = QuizStatusIncorrect
	}
	return r
}

// Surrender ends the round and reveals the answer.
func (r QuizRound) Surrender() QuizRound {
	if r.Status.IsTerminal() {
		return r
	}
	r.Status = QuizStatusRevealed
	return r
}

// QuizView is what a player may see of a round: the name only once the round
// is over, the types only once the hint is revealed.
type QuizView struct {
	QuizRound
	Answer string   `json:"answer,omitempty"`
	Hint   []string `json:"hint,omitempty"`
}

func (r QuizRound) View() QuizView {
	view := QuizView{QuizRound: r}
	if r.Status.IsTerminal() {
		view.Answer = r.CorrectName
	}
	if r.HintRevealed {
		view.Hint = r.Types
	}
	return view
}
