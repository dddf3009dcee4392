// Package catalog is a client for the CheapShark game-deal API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
	"github.com/dmitrijs2005/gamedeals/internal/logging"
	"github.com/dmitrijs2005/gamedeals/internal/netx"
)

const (
	// searchLimit is the number of titles requested per search.
	searchLimit = 5
	maxRetries  = 2
)

// Catalog is the lookup surface used by the CLI.
type Catalog interface {
	SearchTitles(ctx context.Context, title string) ([]models.GameSummary, error)
	FetchDeals(ctx context.Context, gameID string) (*models.GameDeals, error)
	StoreNames(ctx context.Context) (map[string]string, error)
}

// Client talks to the catalog over HTTP. Requests are spaced by a limiter;
// 429, 5xx and transport failures are retried with exponential backoff.
type Client struct {
	endpoint  string
	http      *http.Client
	limiter   *rate.Limiter
	retryBase time.Duration
	log       logging.Logger
}

// New returns a Client for endpoint (e.g. https://www.cheapshark.com/api/1.0).
// A non-positive interval disables request spacing.
func New(endpoint string, timeout, interval time.Duration, log logging.Logger) *Client {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Client{
		endpoint:  strings.TrimRight(endpoint, "/"),
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, 1),
		retryBase: 200 * time.Millisecond,
		log:       log,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	attempt := 0
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(c.retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		err := netx.GetJSON(ctx, c.http, u, out)
		if err == nil {
			c.log.Debug(ctx, "catalog request", "path", path, "attempt", attempt)
			return nil
		}

		var se *netx.StatusError
		switch {
		case errors.As(err, &se):
			if !se.Temporary() {
				return err
			}
		case errors.Is(err, netx.ErrDecode), ctx.Err() != nil:
			return err
		}

		c.log.Warn(ctx, "catalog request failed, retrying", "path", path, "attempt", attempt, "error", err)
		return retry.RetryableError(err)
	})
}

// SearchTitles returns up to five titles matching title.
func (c *Client) SearchTitles(ctx context.Context, title string) ([]models.GameSummary, error) {
	q := url.Values{}
	q.Set("title", title)
	q.Set("limit", fmt.Sprint(searchLimit))

	var games []models.GameSummary
	if err := c.get(ctx, "/games", q, &games); err != nil {
		return nil, fmt.Errorf("search titles: %w", err)
	}
	if games == nil {
		games = []models.GameSummary{}
	}
	return games, nil
}

// FetchDeals returns the store offers for one game.
func (c *Client) FetchDeals(ctx context.Context, gameID string) (*models.GameDeals, error) {
	q := url.Values{}
	q.Set("id", gameID)

	var deals models.GameDeals
	if err := c.get(ctx, "/games", q, &deals); err != nil {
		return nil, fmt.Errorf("fetch deals: %w", err)
	}
	return &deals, nil
}

// StoreNames maps store IDs to display names.
func (c *Client) StoreNames(ctx context.Context) (map[string]string, error) {
	var stores []models.Store
	if err := c.get(ctx, "/stores", nil, &stores); err != nil {
		return nil, fmt.Errorf("store names: %w", err)
	}

	names := make(map[string]string, len(stores))
	for _, s := range stores {
		names[s.StoreID] = s.StoreName
	}
	return names, nil
}
