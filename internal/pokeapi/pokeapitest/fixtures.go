package pokeapitest

import (
	"fmt"

	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
)

var statOrder = []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

// NewPokemon builds a detail record with sprites, artwork, cries and a six
// element stat array whose base stats are base, base+1, ... base+5.
func NewPokemon(id int, name string, height, weight, base int, typeSlugs ...string) *pokeapi.Pokemon {
	sprite := fmt.Sprintf("https://sprites.example/%d.png", id)
	artwork := fmt.Sprintf("https://sprites.example/official-artwork/%d.png", id)
	cry := fmt.Sprintf("https://cries.example/latest/%d.ogg", id)

	p := &pokeapi.Pokemon{
		ID:     id,
		Name:   name,
		Height: height,
		Weight: weight,
		Sprites: pokeapi.Sprites{
			FrontDefault: &sprite,
			Other: pokeapi.OtherSprites{
				OfficialArtwork: pokeapi.ArtworkSprites{FrontDefault: &artwork},
			},
		},
		Cries:   pokeapi.Cries{Latest: &cry},
		Species: pokeapi.NamedResource{Name: name, URL: fmt.Sprintf("https://pokeapi.example/pokemon-species/%d/", id)},
	}
	for i, slug := range typeSlugs {
		p.Types = append(p.Types, pokeapi.PokemonType{Slot: i + 1, Type: pokeapi.NamedResource{Name: slug}})
	}
	for i, stat := range statOrder {
		p.Stats = append(p.Stats, pokeapi.PokemonStat{BaseStat: base + i, Stat: pokeapi.NamedResource{Name: stat}})
	}
	return p
}

// NewSpecies builds a species record with an English entry and, when
// localizedName is non-empty, a "ja" entry. Flavor text follows the same rule.
func NewSpecies(id int, englishName, localizedName, localizedFlavor string) *pokeapi.Species {
	sp := &pokeapi.Species{
		ID:   id,
		Name: englishName,
		Names: []pokeapi.LocalizedName{
			{Name: englishName, Language: pokeapi.NamedResource{Name: "en"}},
		},
		FlavorTextEntries: []pokeapi.FlavorTextEntry{
			{FlavorText: "An English entry.", Language: pokeapi.NamedResource{Name: "en"}},
		},
	}
	if localizedName != "" {
		sp.Names = append(sp.Names,
			pokeapi.LocalizedName{Name: localizedName + "(かな)", Language: pokeapi.NamedResource{Name: "ja-Hrkt"}},
			pokeapi.LocalizedName{Name: localizedName, Language: pokeapi.NamedResource{Name: "ja"}},
		)
	}
	if localizedFlavor != "" {
		sp.FlavorTextEntries = append(sp.FlavorTextEntries,
			pokeapi.FlavorTextEntry{FlavorText: localizedFlavor, Language: pokeapi.NamedResource{Name: "ja"}},
		)
	}
	return sp
}
