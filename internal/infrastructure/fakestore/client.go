package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxErrorBodyBytes caps how much of an error response is kept for logging
const maxErrorBodyBytes = 512

// ClientConfig tunes the feed client. Zero values fall back to defaults.
type ClientConfig struct {
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	MaxRetries    int
	Logger        *zap.Logger
}

// Client handles communication with the third-party catalog feed
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	maxRetries  int
	logger      *zap.Logger
	debug       bool
}

// NewClient creates a new catalog feed client
func NewClient(baseURL string, cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 10
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		maxRetries:  retries,
		logger:      logger.Named("fakestore"),
	}
}

// SetDebug toggles per-attempt request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(msg string, fields ...zap.Field) {
	if c.debug {
		c.logger.Debug(msg, fields...)
	}
}

// FetchCatalog retrieves the full, unfiltered catalog. The feed has no filter surface.
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.RemoteProduct, error) {
	body, err := c.get(ctx, c.baseURL+"/products")
	if err != nil {
		return nil, err
	}

	var products []domain.RemoteProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstreamUnavailable, err)
	}

	c.debugLog("catalog fetched", zap.Int("count", len(products)))
	return products, nil
}

// FetchProduct retrieves a single item by its feed-native id
func (c *Client) FetchProduct(ctx context.Context, id string) (*domain.RemoteProduct, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidRequest
	}

	body, err := c.get(ctx, c.baseURL+"/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	// The feed answers unknown ids with 200 and an empty body
	if len(strings.TrimSpace(string(body))) == 0 || strings.TrimSpace(string(body)) == "null" {
		return nil, domain.ErrProductNotFound
	}

	var product domain.RemoteProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstreamUnavailable, err)
	}
	if product.ID == 0 {
		return nil, domain.ErrProductNotFound
	}

	return &product, nil
}

// get executes a GET with rate limiting and retries on transport errors, 429 and 5xx
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamUnavailable, err)
		}

		c.debugLog("request", zap.String("url", reqURL), zap.Int("attempt", attempt))

		body, retry, err := c.doRequest(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || attempt == c.maxRetries {
			break
		}

		c.logger.Warn("request failed, retrying",
			zap.String("url", reqURL),
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, ctx.Err())
		case <-time.After(exponentialBackoff(attempt)):
		}
	}

	return nil, lastErr
}

// doRequest performs one attempt and reports whether a failure is worth retrying
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Storefront/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, domain.ErrProductNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		body, _ := readLimitedBody(resp.Body, maxErrorBodyBytes)
		return nil, true, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	case resp.StatusCode != http.StatusOK:
		body, _ := readLimitedBody(resp.Body, maxErrorBodyBytes)
		return nil, false, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return body, false, nil
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
