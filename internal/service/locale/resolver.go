package locale

import (
	"context"

	"github.com/kapu/pokedex-ja-go/internal/constants"
	"github.com/kapu/pokedex-ja-go/internal/domain"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"github.com/kapu/pokedex-ja-go/internal/util"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Resolver extracts the target-locale name and flavor text from species
// records. It never returns an error: failures degrade to the fallback marker.
type Resolver struct {
	species pokeapi.SpeciesSource
	target  string
	logger  *zap.Logger
}

func NewResolver(species pokeapi.SpeciesSource, targetLocale string, logger *zap.Logger) *Resolver {
	return &Resolver{
		species: species,
		target:  canonicalTag(targetLocale),
		logger:  logger,
	}
}

// Resolve fetches the species record for id and picks its localized entries.
func (r *Resolver) Resolve(ctx context.Context, id int) domain.LocalizedText {
	species, err := r.species.GetSpecies(ctx, id)
	if err != nil {
		r.logger.Warn("Species lookup failed, using fallback",
			zap.Int("id", id),
			zap.Error(err),
		)
		return domain.LocalizedText{
			Name:       constants.FallbackMarker,
			FlavorText: constants.FallbackMarker,
			Source:     domain.NameSourceFailed,
		}
	}
	return r.Extract(species)
}

// Extract applies the find-or-fallback rule to an already fetched record.
func (r *Resolver) Extract(species *pokeapi.Species) domain.LocalizedText {
	text := domain.LocalizedText{
		Name:       constants.FallbackMarker,
		FlavorText: constants.FallbackMarker,
		Source:     domain.NameSourceMissing,
	}
	if species == nil {
		return text
	}

	for _, n := range species.Names {
		if n.Name != "" && r.matches(n.Language.Name) {
			text.Name = n.Name
			text.Source = domain.NameSourceFound
			break
		}
	}

	for _, entry := range species.FlavorTextEntries {
		if !r.matches(entry.Language.Name) {
			continue
		}
		if flavor := util.CollapseControl(entry.FlavorText); flavor != "" {
			text.FlavorText = flavor
			break
		}
	}

	if text.Source == domain.NameSourceMissing {
		r.logger.Debug("No localized name for target locale",
			zap.Int("id", species.ID),
			zap.String("locale", r.target),
		)
	}
	return text
}

// Locale returns the canonical target tag.
func (r *Resolver) Locale() string {
	return r.target
}

func (r *Resolver) matches(tag string) bool {
	return canonicalTag(tag) == r.target
}

// canonicalTag normalizes case and aliases ("JA" -> "ja") so that tags are
// compared by identity. Unparsable tags are kept verbatim.
func canonicalTag(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return parsed.String()
}
