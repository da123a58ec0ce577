package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kapu/pokedex-ja-go/pkg/errors"
	"go.uber.org/zap"
)

func (s *Server) health(c *gin.Context) {
	if s.deps.Cache == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if !s.deps.Cache.IsConnected(ctx) {
		c.JSON(http.StatusOK, gin.H{"status": "degraded", "cache": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": "up"})
}

func (s *Server) catalog(c *gin.Context) {
	limit := s.deps.CatalogSize
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(c, errors.NewValidationError("limit must be a positive integer", "limit", raw))
			return
		}
		limit = n
	}

	entries, err := s.deps.Catalog.BuildCatalog(c.Request.Context(), limit)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) pokemon(c *gin.Context) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		s.writeError(c, errors.NewValidationError("id must be a positive integer", "id", raw))
		return
	}

	record, err := s.deps.Detail.BuildDetail(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn("Request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"code": code, "error": err.Error()})
}

// classify maps an error to its HTTP status and error code.
func classify(err error) (int, string) {
	var (
		validationErr  *errors.ValidationError
		unavailableErr *errors.DetailUnavailableError
		transportErr   *errors.TransportError
		parseErr       *errors.ParseError
	)

	switch {
	case stderrors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Code
	case stderrors.As(err, &unavailableErr):
		return http.StatusBadGateway, unavailableErr.Code
	case stderrors.As(err, &transportErr):
		return http.StatusBadGateway, transportErr.Code
	case stderrors.As(err, &parseErr):
		return http.StatusBadGateway, parseErr.Code
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "CANCELED"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
