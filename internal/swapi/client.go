// Package swapi is a starwars.DataService backed by the swapi.dev REST API.
package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"starsearch/internal/starwars"
	"starsearch/pkg/stream"
)

// ErrUnexpectedStatus is returned when the API answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("swapi: unexpected status")

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second
	Burst     int
}

// Client talks to swapi.dev. Every outbound request waits on a shared rate
// limiter so a burst of lookups cannot flood the API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger

	characters *starwars.Loader
	planets    *starwars.Loader
}

var _ starwars.DataService = (*Client)(nil)

type page struct {
	Count   int               `json:"count"`
	Next    *string           `json:"next"`
	Results []starwars.Record `json:"results"`
}

// NewClient creates a Client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := max(opts.Burst, 1)

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		http:       &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
		characters: starwars.NewLoader(),
		planets:    starwars.NewLoader(),
	}
}

// SearchCharacters follows the paginated search and emits one list per page.
func (c *Client) SearchCharacters(term string) stream.Stream[[]starwars.Record] {
	first := c.baseURL + "/people/?search=" + url.QueryEscape(term)
	return stream.Source(func(ctx context.Context, out chan<- []starwars.Record) error {
		c.characters.Begin()
		defer c.characters.End()

		for next := first; next != ""; {
			p, err := c.getPage(ctx, next)
			if err != nil {
				return fmt.Errorf("search %q: %w", term, err)
			}
			select {
			case out <- p.Results:
			case <-ctx.Done():
				return ctx.Err()
			}
			next = ""
			if p.Next != nil {
				next = *p.Next
			}
		}
		return nil
	}, stream.WithBatchSize(1))
}

// Characters fetches the first page of characters.
func (c *Client) Characters() stream.Stream[[]starwars.Record] {
	return c.fetchFirst(c.characters, c.baseURL+"/people/")
}

// Planets fetches the first page of planets.
func (c *Client) Planets() stream.Stream[[]starwars.Record] {
	return c.fetchFirst(c.planets, c.baseURL+"/planets/")
}

// CharactersLoader is true while a people request is in flight.
func (c *Client) CharactersLoader() stream.Stream[bool] {
	return c.characters.Signal()
}

// PlanetLoader is true while a planets request is in flight.
func (c *Client) PlanetLoader() stream.Stream[bool] {
	return c.planets.Signal()
}

// Close completes both loader signals and drops idle connections.
func (c *Client) Close() {
	c.characters.Close()
	c.planets.Close()
	c.http.CloseIdleConnections()
}

func (c *Client) fetchFirst(l *starwars.Loader, endpoint string) stream.Stream[[]starwars.Record] {
	return stream.FromFunc(func(ctx context.Context) ([]starwars.Record, error) {
		l.Begin()
		defer l.End()

		p, err := c.getPage(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		return p.Results, nil
	})
}

func (c *Client) getPage(ctx context.Context, endpoint string) (*page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("swapi request failed", "url", endpoint, "error", err)
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("swapi response",
		"url", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %w: %d", endpoint, ErrUnexpectedStatus, resp.StatusCode)
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	return &p, nil
}
