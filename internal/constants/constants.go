package constants

import "time"

// FallbackMarker replaces any localized name or flavor text that could not be
// resolved. It is never empty.
const FallbackMarker = "unknown"

var APIConfig = struct {
	PokeAPIBaseURL string
	Timeout        time.Duration
	UserAgent      string
}{
	PokeAPIBaseURL: "https://pokeapi.co/api/v2",
	Timeout:        10 * time.Second,
	UserAgent:      "pokedex-ja-go/1.0",
}

var SpriteConfig = struct {
	DefaultSpriteURL string
}{
	// %d is the national dex number
	DefaultSpriteURL: "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png",
}

var CatalogConfig = struct {
	Size             int
	QuizCeiling      int
	FetchConcurrency int
}{
	Size:             1025,
	QuizCeiling:      151, // 初代
	FetchConcurrency: 16,
}

var CacheConfig = struct {
	SpeciesTTL       time.Duration
	SpeciesKeyPrefix string
	SweepInterval    time.Duration
}{
	SpeciesTTL:       1 * time.Hour,
	SpeciesKeyPrefix: "pokedex:species:",
	SweepInterval:    5 * time.Minute,
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 5,
	ResetTimeout:     30 * time.Second,
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var WebSocketConfig = struct {
	ReadLimit    int64
	WriteTimeout time.Duration
	PongTimeout  time.Duration
}{
	ReadLimit:    4096,
	WriteTimeout: 10 * time.Second,
	PongTimeout:  60 * time.Second,
}
