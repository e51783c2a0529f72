// Marquee - Movie Catalog and Watchlist
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package external

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/client"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultTimeout bounds every provider request.
const DefaultTimeout = 10 * time.Second

// findLimit is the page size requested from the find endpoint.
const findLimit = 20

// Record is one raw provider object.
type Record map[string]interface{}

// ClientInterface defines the provider operations. Both Client and
// CircuitBreakerClient implement it.
type ClientInterface interface {
	AutoComplete(ctx context.Context, query string) ([]Record, error)
	Find(ctx context.Context, query string) (Record, error)
	Details(ctx context.Context, id string) (Record, error)
	Overview(ctx context.Context, id string) (Record, error)
}

var _ ClientInterface = (*Client)(nil)

// Config holds the provider connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	APIHost string
	Timeout time.Duration
	// RequestsPerSecond enables client-side throttling when positive.
	RequestsPerSecond float64
	Burst             int
}

// Client provides access to the provider REST API.
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a provider client. The API key and host are sent on
// every request as x-rapidapi-key and x-rapidapi-host.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiHost:    cfg.APIHost,
		httpClient: &http.Client{Timeout: timeout},
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return c
}

// AutoComplete calls /title/auto-complete and returns the records under "d".
func (c *Client) AutoComplete(ctx context.Context, query string) ([]Record, error) {
	var out struct {
		D []Record `json:"d"`
	}
	if err := c.doRequest(ctx, "auto-complete", "/title/auto-complete", url.Values{"q": {query}}, &out); err != nil {
		return nil, err
	}
	return out.D, nil
}

// Find calls /title/v2/find.
func (c *Client) Find(ctx context.Context, query string) (Record, error) {
	var out Record
	q := url.Values{"q": {query}, "limit": {fmt.Sprint(findLimit)}}
	if err := c.doRequest(ctx, "find", "/title/v2/find", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Details calls /title/get-details for a title ID such as "tt0111161".
func (c *Client) Details(ctx context.Context, id string) (Record, error) {
	var out Record
	if err := c.doRequest(ctx, "get-details", "/title/get-details", url.Values{"tconst": {id}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Overview calls /title/get-overview-details.
func (c *Client) Overview(ctx context.Context, id string) (Record, error) {
	var out Record
	if err := c.doRequest(ctx, "overview", "/title/get-overview-details", url.Values{"tconst": {id}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// wait blocks until the limiter admits one request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	start := time.Now()
	err := c.limiter.Wait(ctx)
	metrics.ExternalThrottleWait.Observe(time.Since(start).Seconds())
	return err
}

func (c *Client) doRequest(ctx context.Context, endpoint, path string, query url.Values, out interface{}) error {
	if err := c.wait(ctx); err != nil {
		return fmt.Errorf("external %s: throttle: %w", endpoint, err)
	}

	reqURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(ctx, c.httpClient, req, "external")
	if err != nil {
		if errors.Is(err, context.Canceled) {
			metrics.RecordExternalRequest(endpoint, "canceled")
			return err
		}
		metrics.RecordExternalRequest(endpoint, outcomeOf(err))
		logging.Ctx(ctx).Warn().Err(err).Str("endpoint", endpoint).Msg("External metadata request failed")
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		serr := client.NewStatusError("external "+endpoint, resp)
		metrics.RecordExternalRequest(endpoint, outcomeOf(serr))
		logging.Ctx(ctx).Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("External metadata request rejected")
		return serr
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		metrics.RecordExternalRequest(endpoint, "error")
		return fmt.Errorf("%w: external %s: failed to decode response: %v", client.ErrRequestFailed, endpoint, err)
	}
	metrics.RecordExternalRequest(endpoint, "ok")
	return nil
}

func outcomeOf(err error) string {
	switch client.KindOf(err) {
	case client.KindRateLimited:
		return "rate_limited"
	case client.KindAuth:
		return "auth_failed"
	case client.KindUnreachable:
		return "unreachable"
	default:
		return "error"
	}
}
