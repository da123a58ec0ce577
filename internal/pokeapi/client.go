package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kapu/pokedex-ja-go/internal/constants"
	"github.com/kapu/pokedex-ja-go/internal/util"
	"github.com/kapu/pokedex-ja-go/pkg/errors"
	"go.uber.org/zap"
)

// PokemonSource is satisfied by Client and by test fakes.
type PokemonSource interface {
	GetPokemon(ctx context.Context, id int) (*Pokemon, error)
}

// SpeciesSource is satisfied by Client and by the species cache.
type SpeciesSource interface {
	GetSpecies(ctx context.Context, id int) (*Species, error)
}

// Client is the read-only gateway to the remote catalog. It never retries;
// callers decide how to recover.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *util.CircuitBreaker
	logger     *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, breaker *util.CircuitBreaker, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.APIConfig.Timeout}
	}
	if baseURL == "" {
		baseURL = constants.APIConfig.PokeAPIBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		breaker:    breaker,
		logger:     logger,
	}
}

// FetchJSON issues a GET request. Network failures and non-2xx statuses become
// *errors.TransportError, an undecodable body becomes *errors.ParseError.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, out any) error {
	if ok, retryAfter := c.breaker.Allow(); !ok {
		c.logger.Debug("Circuit breaker rejected request",
			zap.String("url", rawURL),
			zap.Duration("retry_after", retryAfter),
		)
		return errors.NewTransportError("circuit breaker open", rawURL, 0, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		c.breaker.Abandon()
		return errors.NewTransportError("build request", rawURL, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.APIConfig.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordTransportFailure(ctx)
		c.logger.Debug("Request failed", zap.String("url", rawURL), zap.Error(err))
		return errors.NewTransportError("request failed", rawURL, 0, err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		c.recordTransportFailure(ctx)
		return errors.NewTransportError("read body", rawURL, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 4xx means the catalog answered; only server-side trouble trips the breaker
		if resp.StatusCode >= 500 {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		c.logger.Debug("Upstream returned non-success status",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
		)
		return errors.NewTransportError(fmt.Sprintf("upstream status %d", resp.StatusCode), rawURL, resp.StatusCode, nil)
	}
	c.breaker.RecordSuccess()

	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewParseError("invalid json", rawURL, err)
	}
	return nil
}

// a cancelled caller says nothing about upstream health
func (c *Client) recordTransportFailure(ctx context.Context) {
	if ctx.Err() != nil {
		c.breaker.Abandon()
		return
	}
	c.breaker.RecordFailure()
}

// GetRoster lists the first limit entries.
func (c *Client) GetRoster(ctx context.Context, limit int) (*RosterResponse, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var roster RosterResponse
	if err := c.FetchJSON(ctx, c.baseURL+"/pokemon?"+params.Encode(), &roster); err != nil {
		return nil, err
	}
	return &roster, nil
}

func (c *Client) GetPokemon(ctx context.Context, id int) (*Pokemon, error) {
	var pokemon Pokemon
	if err := c.FetchJSON(ctx, fmt.Sprintf("%s/pokemon/%d", c.baseURL, id), &pokemon); err != nil {
		return nil, err
	}
	return &pokemon, nil
}

func (c *Client) GetSpecies(ctx context.Context, id int) (*Species, error) {
	var species Species
	if err := c.FetchJSON(ctx, fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, id), &species); err != nil {
		return nil, err
	}
	return &species, nil
}

// SpriteURL builds the templated default sprite URL for an id.
func SpriteURL(id int) string {
	return fmt.Sprintf(constants.SpriteConfig.DefaultSpriteURL, id)
}
