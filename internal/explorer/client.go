// Package explorer is a client for the explorer HTTP API of a Rivine-based
// chain that fails over between several explorer URLs.
package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	klog "github.com/Klingon-tech/tfwallet/internal/log"
	"github.com/Klingon-tech/tfwallet/internal/metrics"
)

// Defaults for Config fields left zero.
const (
	DefaultTimeout       = 5 * time.Second
	DefaultMaxAttempts   = 5
	DefaultResetInterval = 5 * time.Minute
)

const maxResponseSize = 32 << 20

// Config holds the explorer client settings.
type Config struct {
	URLs []string
	// Timeout bounds each attempt, not the whole request.
	Timeout       time.Duration
	MaxAttempts   int
	ResetInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for every attempt.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMetrics records attempts and failovers.
func WithMetrics(m *metrics.Explorer) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger replaces the explorer component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRand sets the source of URL selection.
func WithRand(r *rand.Rand) Option {
	return func(c *Client) { c.rng = r }
}

// WithClock replaces time.Now for the unavailable-set reset.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client sends requests to a randomly chosen explorer, retrying on another
// one when an explorer is down. It is safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	pool    *pool
	metrics *metrics.Explorer
	logger  zerolog.Logger
	rng     *rand.Rand
	now     func() time.Time
}

// New creates a client over cfg.URLs.
func New(cfg Config, opts ...Option) (*Client, error) {
	if len(cfg.URLs) == 0 {
		return nil, errors.New("no explorer URLs configured")
	}
	urls := make([]string, len(cfg.URLs))
	for i, u := range cfg.URLs {
		if u == "" {
			return nil, fmt.Errorf("explorer URL %d is empty", i)
		}
		urls[i] = strings.TrimRight(u, "/")
	}
	cfg.URLs = urls
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.ResetInterval <= 0 {
		cfg.ResetInterval = DefaultResetInterval
	}

	c := &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: klog.Explorer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.pool = newPool(cfg.URLs, cfg.ResetInterval, c.now, c.rng, c.metrics)
	return c, nil
}

// Get fetches path and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON to path and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, data, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		base := c.pool.pick()
		started := time.Now()
		err := c.attempt(ctx, method, base+path, body, out)
		if err == nil {
			c.metrics.ObserveAttempt(method, metrics.StatusSuccess, started)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		if !retryable(err) {
			c.metrics.ObserveAttempt(method, failureStatus(err), started)
			return err
		}
		c.metrics.ObserveAttempt(method, metrics.StatusRetry, started)
		lastErr = err
		down := c.pool.markUnavailable(base)
		c.logger.Warn().
			Err(err).
			Str("url", base).
			Str("path", path).
			Int("attempt", attempt).
			Int("unavailable", down).
			Msg("Explorer attempt failed")
	}
	return fmt.Errorf("%w: %s %s failed %d times: %w", ErrExplorerUnavailable, method, path, c.cfg.MaxAttempts, lastErr)
}

func (c *Client) attempt(ctx context.Context, method, url string, body []byte, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &transportError{err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &transportError{err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Method: method, URL: url, Status: resp.StatusCode, Message: errorMessage(data)}
		if IsUnrecognizedHash(apiErr.Message) {
			return fmt.Errorf("%w: %w", ErrUnrecognizedHash, apiErr)
		}
		return apiErr
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, url, err)
	}
	return nil
}

// errorMessage extracts the message of an explorer error body, which is
// {"message": "..."} or plain text.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(data))
}

func failureStatus(err error) string {
	if errors.Is(err, ErrUnrecognizedHash) {
		return metrics.StatusUnrecognized
	}
	return metrics.StatusRejected
}
