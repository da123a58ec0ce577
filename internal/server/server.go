package server

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kapu/pokedex-ja-go/internal/domain"
	"github.com/kapu/pokedex-ja-go/internal/service/game"
	"go.uber.org/zap"
)

type CatalogBuilder interface {
	BuildCatalog(ctx context.Context, pageSize int) ([]domain.CatalogEntry, error)
}

type DetailBuilder interface {
	BuildDetail(ctx context.Context, id int) (domain.DetailRecord, error)
}

type QuizStarter interface {
	StartRound(ctx context.Context, rng game.Rand) (domain.QuizRound, error)
}

type DuelStarter interface {
	StartRound(ctx context.Context, rng game.Rand) (domain.DuelRound, error)
}

// CacheProbe reports whether a shared cache backend is reachable.
type CacheProbe interface {
	IsConnected(ctx context.Context) bool
}

// Dependencies lists everything the HTTP and websocket handlers need.
type Dependencies struct {
	Catalog     CatalogBuilder
	Detail      DetailBuilder
	Quiz        QuizStarter
	Duel        DuelStarter
	CatalogSize int
	Logger      *zap.Logger

	// Cache is optional; when set, /healthz reports its reachability.
	Cache CacheProbe

	// NewRand returns the random source for one game session. Defaults to a
	// PCG seeded from the session id.
	NewRand func(sessionID uuid.UUID) game.Rand
}

type Server struct {
	deps       *Dependencies
	logger     *zap.Logger
	router     *gin.Engine
	mu         sync.Mutex
	httpServer *http.Server
}

func NewServer(deps *Dependencies) (*Server, error) {
	if deps == nil {
		return nil, fmt.Errorf("dependencies must not be nil")
	}
	if deps.Catalog == nil || deps.Detail == nil || deps.Quiz == nil || deps.Duel == nil {
		return nil, fmt.Errorf("catalog, detail, quiz and duel services are required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.NewRand == nil {
		deps.NewRand = seededRand
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(deps.Logger))

	s := &Server{
		deps:   deps,
		logger: deps.Logger,
		router: router,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.health)

	api := s.router.Group("/api")
	api.GET("/catalog", s.catalog)
	api.GET("/pokemon/:id", s.pokemon)

	s.router.GET("/ws/game", s.game)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}
	return httpServer.Shutdown(ctx)
}

func seededRand(sessionID uuid.UUID) game.Rand {
	return rand.New(rand.NewPCG(
		binary.BigEndian.Uint64(sessionID[:8]),
		binary.BigEndian.Uint64(sessionID[8:]),
	))
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
