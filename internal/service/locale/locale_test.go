package locale

import (
	"context"
	"errors"
	"testing"

	"github.com/kapu/pokedex-ja-go/internal/constants"
	"github.com/kapu/pokedex-ja-go/internal/domain"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"go.uber.org/zap"
)

type fakeSpecies struct {
	records map[int]*pokeapi.Species
	err     error
}

func (f *fakeSpecies) GetSpecies(_ context.Context, id int) (*pokeapi.Species, error) {
	if f.err != nil {
		return nil, f.err
	}
	sp, ok := f.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return sp, nil
}

func lang(name string) pokeapi.NamedResource {
	return pokeapi.NamedResource{Name: name}
}

func TestResolveFindsTargetLocale(t *testing.T) {
	source := &fakeSpecies{records: map[int]*pokeapi.Species{
		25: {
			ID: 25,
			Names: []pokeapi.LocalizedName{
				{Name: "Pikachu", Language: lang("en")},
				{Name: "ピカチュウ(かな)", Language: lang("ja-Hrkt")},
				{Name: "ピカチュウ", Language: lang("ja")},
			},
			FlavorTextEntries: []pokeapi.FlavorTextEntry{
				{FlavorText: "English.", Language: lang("en")},
				{FlavorText: "ほっぺたの\nりょうがわに\fちいさい　でんきぶくろを　もつ。", Language: lang("ja")},
			},
		},
	}}

	got := NewResolver(source, "ja", zap.NewNop()).Resolve(context.Background(), 25)

	if got.Name != "ピカチュウ" {
		t.Fatalf("expected exact ja entry, got %q", got.Name)
	}
	if got.Source != domain.NameSourceFound {
		t.Fatalf("expected found source, got %s", got.Source)
	}
	if got.FlavorText != "ほっぺたの りょうがわに ちいさい　でんきぶくろを　もつ。" {
		t.Fatalf("unexpected flavor text %q", got.FlavorText)
	}
}

func TestResolveMissingLocaleReturnsMarker(t *testing.T) {
	source := &fakeSpecies{records: map[int]*pokeapi.Species{
		1: {
			ID:    1,
			Names: []pokeapi.LocalizedName{{Name: "Bulbasaur", Language: lang("en")}},
		},
	}}

	got := NewResolver(source, "ja", zap.NewNop()).Resolve(context.Background(), 1)

	if got.Name != constants.FallbackMarker || got.FlavorText != constants.FallbackMarker {
		t.Fatalf("expected fallback markers, got %+v", got)
	}
	if got.Source != domain.NameSourceMissing {
		t.Fatalf("expected missing source, got %s", got.Source)
	}
}

func TestResolveFetchFailureReturnsMarker(t *testing.T) {
	source := &fakeSpecies{err: errors.New("connection refused")}

	got := NewResolver(source, "ja", zap.NewNop()).Resolve(context.Background(), 1)

	if got.Name != constants.FallbackMarker {
		t.Fatalf("expected fallback marker, got %q", got.Name)
	}
	if got.Source != domain.NameSourceFailed {
		t.Fatalf("expected failed source, got %s", got.Source)
	}
	if !got.Source.IsFallback() {
		t.Fatalf("expected failed source to count as fallback")
	}
}

func TestResolveCanonicalizesConfiguredLocale(t *testing.T) {
	source := &fakeSpecies{records: map[int]*pokeapi.Species{
		4: {
			ID:    4,
			Names: []pokeapi.LocalizedName{{Name: "ヒトカゲ", Language: lang("ja")}},
		},
	}}

	resolver := NewResolver(source, "JA", zap.NewNop())
	if resolver.Locale() != "ja" {
		t.Fatalf("expected canonical locale, got %q", resolver.Locale())
	}
	if got := resolver.Resolve(context.Background(), 4); got.Name != "ヒトカゲ" {
		t.Fatalf("expected ヒトカゲ, got %q", got.Name)
	}
}

func TestExtractNilSpecies(t *testing.T) {
	got := NewResolver(&fakeSpecies{}, "ja", zap.NewNop()).Extract(nil)
	if got.Name == "" || got.FlavorText == "" {
		t.Fatalf("expected non-empty fallback values, got %+v", got)
	}
}

func TestTranslateType(t *testing.T) {
	if got := TranslateType("electric"); got != "でんき" {
		t.Fatalf("expected でんき, got %q", got)
	}
	if got := TranslateType("unknown-slug"); got != "unknown-slug" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if len(typeNames) != 18 {
		t.Fatalf("expected 18 known types, got %d", len(typeNames))
	}
}

func TestTranslateTypesKeepsOrder(t *testing.T) {
	got := TranslateTypes([]string{"grass", "poison", "stellar"})
	want := []string{"くさ", "どく", "stellar"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TranslateTypes = %v, want %v", got, want)
		}
	}
}
