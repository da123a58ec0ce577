package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kapu/pokedex-ja-go/internal/config"
	"github.com/kapu/pokedex-ja-go/internal/constants"
	"github.com/kapu/pokedex-ja-go/internal/pokeapi"
	"github.com/kapu/pokedex-ja-go/internal/server"
	"github.com/kapu/pokedex-ja-go/internal/service/cache"
	"github.com/kapu/pokedex-ja-go/internal/service/catalog"
	"github.com/kapu/pokedex-ja-go/internal/service/game"
	"github.com/kapu/pokedex-ja-go/internal/service/locale"
	"github.com/kapu/pokedex-ja-go/internal/util"
	"go.uber.org/zap"
)

// Container holds the assembled services and the HTTP server built on them.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Catalog *catalog.Aggregator
	Detail  *catalog.Enricher
	Quiz    *game.QuizEngine
	Duel    *game.DuelEngine
	Server  *server.Server

	closers []func()
}

// Close releases background workers and connections in reverse order of
// creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build wires the gateway, species cache, resolvers, game engines and server.
// ctx bounds only the startup checks; background workers live until Close.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Gateway
	httpClient := &http.Client{Timeout: cfg.PokeAPI.Timeout}
	breaker := util.NewCircuitBreaker(cfg.Circuit.FailureThreshold, cfg.Circuit.ResetTimeout, logger)
	client := pokeapi.NewClient(cfg.PokeAPI.BaseURL, httpClient, breaker, logger)
	// species lookups degrade per entry, so they stay off the breaker that
	// guards roster and detail fetches
	speciesClient := pokeapi.NewClient(cfg.PokeAPI.BaseURL, httpClient, nil, logger)

	// Species cache
	var (
		store cache.SpeciesStore
		probe server.CacheProbe
	)
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisStore, redisErr := cache.NewRedisStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Cache.TTL, logger)
		if redisErr != nil {
			return nil, fmt.Errorf("failed to create redis species cache: %w", redisErr)
		}
		closers = append(closers, func() {
			_ = redisStore.Close()
		})
		if err := redisStore.WaitUntilReady(ctx, constants.RedisConfig.ReadyTimeout); err != nil {
			return nil, fmt.Errorf("redis species cache not ready: %w", err)
		}
		store = redisStore
		probe = redisStore

	case config.CacheBackendNone:
		store = cache.NopStore{}

	default:
		memoryStore := cache.NewMemoryStore(cfg.Cache.TTL, logger)
		sweepCtx, stopSweep := context.WithCancel(context.Background())
		go memoryStore.RunSweeper(sweepCtx, constants.CacheConfig.SweepInterval)
		closers = append(closers, stopSweep)
		store = memoryStore
	}
	logger.Info("Species cache configured",
		zap.String("backend", cfg.Cache.Backend),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	species := cache.NewSpeciesCache(speciesClient, store, logger)
	resolver := locale.NewResolver(species, cfg.Catalog.TargetLocale, logger)

	// Aggregation and games
	aggregator := catalog.NewAggregator(client, resolver, cfg.Catalog.FetchConcurrency, logger)
	enricher := catalog.NewEnricher(client, resolver, logger)
	quiz := game.NewQuizEngine(client, resolver, cfg.Catalog.QuizCeiling, logger)
	duel := game.NewDuelEngine(client, resolver, cfg.Catalog.QuizCeiling, logger)

	deps := &server.Dependencies{
		Catalog:     aggregator,
		Detail:      enricher,
		Quiz:        quiz,
		Duel:        duel,
		CatalogSize: cfg.Catalog.Size,
		Logger:      logger,
	}
	if probe != nil {
		deps.Cache = probe
	}

	srv, err := server.NewServer(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("Services assembled",
		zap.String("pokeapi", cfg.PokeAPI.BaseURL),
		zap.String("locale", resolver.Locale()),
		zap.Int("catalog_size", cfg.Catalog.Size),
		zap.Int("quiz_ceiling", cfg.Catalog.QuizCeiling),
		zap.Int("fetch_concurrency", cfg.Catalog.FetchConcurrency),
	)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Catalog: aggregator,
		Detail:  enricher,
		Quiz:    quiz,
		Duel:    duel,
		Server:  srv,
		closers: closers,
	}, nil
}
