package locale

// typeNames maps catalog type slugs to their Japanese display names.
var typeNames = map[string]string{
	"normal":   "ノーマル",
	"fire":     "ほのお",
	"water":    "みず",
	"electric": "でんき",
	"grass":    "くさ",
	"ice":      "こおり",
	"fighting": "かくとう",
	"poison":   "どく",
	"ground":   "じめん",
	"flying":   "ひこう",
	"psychic":  "エスパー",
	"bug":      "むし",
	"rock":     "いわ",
	"ghost":    "ゴースト",
	"dragon":   "ドラゴン",
	"dark":     "あく",
	"steel":    "はがね",
	"fairy":    "フェアリー",
}

// TranslateType returns the localized token for slug, or slug itself when the
// slug is unknown.
func TranslateType(slug string) string {
	if name, ok := typeNames[slug]; ok {
		return name
	}
	return slug
}

// TranslateTypes translates every slug, keeping order.
func TranslateTypes(slugs []string) []string {
	out := make([]string, len(slugs))
	for i, slug := range slugs {
		out[i] = TranslateType(slug)
	}
	return out
}
