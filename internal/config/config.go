package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	PokeAPI PokeAPIConfig
	Catalog CatalogConfig
	Circuit CircuitConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Server  ServerConfig
	Logging LoggingConfig
}

type PokeAPIConfig struct {
	BaseURL string        `env:"POKEAPI_BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	Timeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
}

type CatalogConfig struct {
	TargetLocale     string `env:"TARGET_LOCALE" envDefault:"ja"`
	Size             int    `env:"CATALOG_SIZE" envDefault:"1025"`
	QuizCeiling      int    `env:"QUIZ_SPECIES_CEILING" envDefault:"151"`
	FetchConcurrency int    `env:"FETCH_CONCURRENCY" envDefault:"16"`
}

type CircuitConfig struct {
	FailureThreshold int           `env:"CIRCUIT_FAILURE_THRESHOLD" envDefault:"5"`
	ResetTimeout     time.Duration `env:"CIRCUIT_RESET_TIMEOUT" envDefault:"30s"`
}

type CacheConfig struct {
	Backend string        `env:"CACHE_BACKEND" envDefault:"memory"`
	TTL     time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type ServerConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
}

type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	File  string `env:"LOG_FILE"`
}

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
	cfg.PokeAPI.BaseURL = strings.TrimRight(cfg.PokeAPI.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PokeAPI.BaseURL == "" {
		return fmt.Errorf("POKEAPI_BASE_URL is required")
	}
	if c.PokeAPI.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if _, err := language.Parse(c.Catalog.TargetLocale); err != nil {
		return fmt.Errorf("TARGET_LOCALE %q is not a valid language tag: %w", c.Catalog.TargetLocale, err)
	}
	if c.Catalog.Size < 1 {
		return fmt.Errorf("CATALOG_SIZE must be at least 1")
	}
	if c.Catalog.QuizCeiling < 1 || c.Catalog.QuizCeiling > c.Catalog.Size {
		return fmt.Errorf("QUIZ_SPECIES_CEILING must be within [1, CATALOG_SIZE]")
	}
	if c.Catalog.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	if c.Circuit.FailureThreshold < 0 {
		return fmt.Errorf("CIRCUIT_FAILURE_THRESHOLD must not be negative")
	}
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of memory, redis, none")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	return nil
}
