package domain

// NameSource tells where a localized value came from. A fallback marker is
// returned for both NameSourceMissing and NameSourceFailed; the tag is the only
// way to tell them apart.
type NameSource string

const (
	NameSourceFound   NameSource = "found"
	NameSourceMissing NameSource = "missing"
	NameSourceFailed  NameSource = "failed"
)

func (s NameSource) String() string {
	return string(s)
}

// IsFallback reports whether the value is a placeholder.
func (s NameSource) IsFallback() bool {
	return s != NameSourceFound
}

// LocalizedText is the result of resolving a species record for the target
// locale. Name and FlavorText are never empty.
type LocalizedText struct {
	Name       string     `json:"name"`
	FlavorText string     `json:"flavor_text"`
	Source     NameSource `json:"source"`
}

// CatalogEntry is one row of the listing view, in roster order.
type CatalogEntry struct {
	ID            int        `json:"id"`
	EnglishName   string     `json:"english_name"`
	LocalizedName string     `json:"localized_name"`
	ImageURL      string     `json:"image_url"`
	NameSource    NameSource `json:"name_source"`
}

type Stats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
}

// DetailRecord is the merged, localized view of a single entry.
// HeightRaw and WeightRaw keep the catalog's tenths (decimetres, hectograms).
type DetailRecord struct {
	ID              int        `json:"id"`
	LocalizedName   string     `json:"localized_name"`
	EnglishName     string     `json:"english_name"`
	ImageURL        string     `json:"image_url"`
	Types           []string   `json:"types"`
	HeightRaw       int        `json:"height_raw"`
	WeightRaw       int        `json:"weight_raw"`
	HeightMeters    float64    `json:"height_meters"`
	WeightKilograms float64    `json:"weight_kilograms"`
	FlavorText      string     `json:"flavor_text"`
	Stats           Stats      `json:"stats"`
	CryURL          string     `json:"cry_url,omitempty"`
	NameSource      NameSource `json:"name_source"`
}

// HasCry reports whether a cry recording is available.
func (d DetailRecord) HasCry() bool {
	return d.CryURL != ""
}

// TenthsToUnit converts a raw catalog measurement (tenths of the display unit)
// into the display unit.
func TenthsToUnit(raw int) float64 {
	return float64(raw) / 10
}
