package pokeapi

// NamedResource is PokeAPI's {name, url} reference.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RosterResponse represents GET /pokemon?limit=N
type RosterResponse struct {
	Count   int             `json:"count"`
	Results []NamedResource `json:"results"`
}

// Pokemon represents the subset of GET /pokemon/{id} used here.
// Height is in decimetres and Weight in hectograms.
type Pokemon struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Height  int           `json:"height"`
	Weight  int           `json:"weight"`
	Sprites Sprites       `json:"sprites"`
	Types   []PokemonType `json:"types"`
	Stats   []PokemonStat `json:"stats"`
	Cries   Cries         `json:"cries"`
	Species NamedResource `json:"species"`
}

type Sprites struct {
	FrontDefault *string      `json:"front_default"`
	Other        OtherSprites `json:"other"`
}

type OtherSprites struct {
	OfficialArtwork ArtworkSprites `json:"official-artwork"`
}

type ArtworkSprites struct {
	FrontDefault *string `json:"front_default"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

type Cries struct {
	Latest *string `json:"latest"`
	Legacy *string `json:"legacy"`
}

// Species represents the localization source GET /pokemon-species/{id}.
type Species struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	Names             []LocalizedName   `json:"names"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
}

type LocalizedName struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

// TypeSlugs returns the type slugs ordered as listed by the API.
func (p *Pokemon) TypeSlugs() []string {
	slugs := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		slugs = append(slugs, t.Type.Name)
	}
	return slugs
}

// FrontDefault returns the default sprite or "".
func (p *Pokemon) FrontDefault() string {
	return deref(p.Sprites.FrontDefault)
}

// ArtworkOrSprite prefers the high-resolution official artwork.
func (p *Pokemon) ArtworkOrSprite() string {
	if art := deref(p.Sprites.Other.OfficialArtwork.FrontDefault); art != "" {
		return art
	}
	return p.FrontDefault()
}

// CryURL prefers the latest cry over the legacy one. Empty when neither exists.
func (p *Pokemon) CryURL() string {
	if latest := deref(p.Cries.Latest); latest != "" {
		return latest
	}
	return deref(p.Cries.Legacy)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
