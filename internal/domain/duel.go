package domain

import (
	"github.com/kapu/pokedex-ja-go/pkg/errors"
)

type DuelSide string

const (
	DuelSideNone  DuelSide = ""
	DuelSideLeft  DuelSide = "left"
	DuelSideRight DuelSide = "right"
)

func (s DuelSide) String() string {
	return string(s)
}

func (s DuelSide) IsValid() bool {
	return s == DuelSideLeft || s == DuelSideRight
}

func (s DuelSide) Opposite() DuelSide {
	switch s {
	case DuelSideLeft:
		return DuelSideRight
	case DuelSideRight:
		return DuelSideLeft
	default:
		return DuelSideNone
	}
}

type DuelStatus string

const (
	DuelStatusUnanswered DuelStatus = "unanswered"
	DuelStatusResolved   DuelStatus = "resolved"
)

func (s DuelStatus) String() string {
	return string(s)
}

// Contender is the lightweight record shown on one side of a duel.
// WeightRaw is in hectograms.
type Contender struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	WeightRaw int    `json:"-"`
	ImageURL  string `json:"image_url"`
}

func (c Contender) WeightKilograms() float64 {
	return TenthsToUnit(c.WeightRaw)
}

// DuelRound is an immutable snapshot of one weight comparison.
type DuelRound struct {
	Left        Contender  `json:"left"`
	Right       Contender  `json:"right"`
	Status      DuelStatus `json:"status"`
	Chosen      DuelSide   `json:"chosen,omitempty"`
	WinningSide DuelSide   `json:"winning_side,omitempty"`
}

func (r DuelRound) Side(side DuelSide) Contender {
	if side == DuelSideRight {
		return r.Right
	}
	return r.Left
}

// Choose resolves the round. The chosen side wins when it is at least as heavy
// as the other side, so ties go to the chooser. A resolved round is returned
// unchanged.
func (r DuelRound) Choose(side DuelSide) (DuelRound, error) {
	if !side.IsValid() {
		return r, errors.NewValidationError("side must be left or right", "side", string(side))
	}
	if r.Status == DuelStatusResolved {
		return r, nil
	}

	chosen := r.Side(side)
	other := r.Side(side.Opposite())

	r.Status = DuelStatusResolved
	r.Chosen = side
	if chosen.WeightRaw >= other.WeightRaw {
		r.WinningSide = side
	} else {
		r.WinningSide = side.Opposite()
	}
	return r, nil
}

// IsCorrect reports whether the chosen side is the winning side.
func (r DuelRound) IsCorrect() bool {
	return r.Status == DuelStatusResolved && r.Chosen == r.WinningSide
}

// DuelView hides the weights until the round is resolved.
type DuelView struct {
	DuelRound
	LeftKilograms  *float64 `json:"left_kilograms,omitempty"`
	RightKilograms *float64 `json:"right_kilograms,omitempty"`
	Correct        *bool    `json:"correct,omitempty"`
}

func (r DuelRound) View() DuelView {
	view := DuelView{DuelRound: r}
	if r.Status == DuelStatusResolved {
		left := r.Left.WeightKilograms()
		right := r.Right.WeightKilograms()
		correct := r.IsCorrect()
		view.LeftKilograms = &left
		view.RightKilograms = &right
		view.Correct = &correct
	}
	return view
}
