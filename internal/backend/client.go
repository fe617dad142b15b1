// Package backend is a typed client for the tutoring platform's REST API.
//
// Every endpoint answers with the envelope {success, data?, message?}. Client
// methods unwrap data into model types and report every failure as an
// *AppError so callers can tell network trouble, rejected input and backend
// refusals apart.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"medprep/internal/logging"
)

const (
	DefaultVersion    = "v1"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3

	maxResponseBytes = 10 << 20
)

// Config holds backend connection settings
type Config struct {
	BaseURL    string // scheme and host, e.g. https://api.example.com
	Version    string // API version path segment
	Timeout    time.Duration
	MaxRetries int // attempts for idempotent requests
}

// Client calls the backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    func(attempt int) time.Duration
	log        zerolog.Logger
}

// Option customises a Client
type Option func(*Client)

// WithBackoff replaces the delay between retries
func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(c *Client) { c.backoff = fn }
}

// New creates a client for {BaseURL}/api/{Version}
func New(cfg Config, opts ...Option) *Client {
	version := cfg.Version
	if version == "" {
		version = DefaultVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = DefaultMaxRetries
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + "/api/" + version,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: retries,
		backoff:    exponentialBackoff,
		log:        logging.Component("backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL is the versioned API root requests are sent to
func (c *Client) BaseURL() string { return c.baseURL }

func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * 250 * time.Millisecond
}

// envelope is the response shape of every backend endpoint
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// request describes one backend call
type request struct {
	method      string
	path        string
	query       url.Values
	contentType string
	body        []byte
}

func (r request) idempotent() bool {
	return r.method == http.MethodGet
}

// do performs the call. GET requests are retried on network failure, 429 and
// 5xx with exponential backoff; everything else is attempted once.
func (c *Client) do(ctx context.Context, r request) (*envelope, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	logger := c.log.With().Str("method", r.method).Str("path", r.path).Logger()

	attempts := 1
	if r.idempotent() {
		attempts = c.maxRetries
	}

	var lastErr *AppError
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := c.backoff(attempt - 1)
			logger.Warn().Int("attempt", attempt+1).Dur("backoff", wait).Err(lastErr).Msg("retrying backend request")
			select {
			case <-ctx.Done():
				return nil, networkError(ctx.Err())
			case <-time.After(wait):
			}
		}

		var body io.Reader
		if r.body != nil {
			body = bytes.NewReader(r.body)
		}
		req, err := http.NewRequestWithContext(ctx, r.method, u, body)
		if err != nil {
			return nil, &AppError{Kind: KindNetwork, Message: "invalid backend request", Err: err}
		}
		req.Header.Set("Accept", "application/json")
		if r.contentType != "" {
			req.Header.Set("Content-Type", r.contentType)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = networkError(err)
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		resp.Body.Close()
		if err != nil {
			lastErr = networkError(err)
			continue
		}
		logger.Debug().Int("status", resp.StatusCode).Int("bytes", len(raw)).Dur("took", time.Since(start)).Msg("backend response")

		env, appErr := decodeEnvelope(resp.StatusCode, raw)
		if appErr == nil {
			return env, nil
		}
		if retryable(resp.StatusCode) {
			lastErr = appErr
			continue
		}
		return nil, appErr
	}

	logger.Error().Err(lastErr).Int("attempts", attempts).Msg("backend request failed")
	return nil, lastErr
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// decodeEnvelope turns a raw response into an envelope or an *AppError.
func decodeEnvelope(status int, raw []byte) (*envelope, *AppError) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if status >= 400 {
			return nil, serverError(status, "")
		}
		return nil, &AppError{Kind: KindServer, Status: status, Message: "malformed backend response", Err: err}
	}

	switch {
	case (status == http.StatusBadRequest || status == http.StatusUnprocessableEntity) && len(env.Errors) > 0:
		e := ValidationError(env.Message, env.Errors)
		e.Status = status
		if e.Message == "" {
			e.Message = "invalid input"
		}
		return nil, e
	case status >= 400:
		return nil, serverError(status, env.Message)
	case !env.Success:
		return nil, serverError(status, env.Message)
	}
	return &env, nil
}

// decodeData unmarshals the envelope data into out
func decodeData(env *envelope, out any) error {
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &AppError{Kind: KindServer, Message: "malformed backend response", Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	env, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}
	env, err := c.do(ctx, request{method: method, path: path, contentType: "application/json", body: body})
	if err != nil {
		return err
	}
	return decodeData(env, out)
}
