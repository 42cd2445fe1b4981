// Package medusa is a client for the commerce backend's Store API.
package medusa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	HeaderPublishableKey = "x-publishable-api-key"

	maxErrorBody    = 64 << 10
	maxResponseBody = 8 << 20
)

// Observer receives one call per backend request. status is 0 on transport errors.
type Observer func(op string, status int, d time.Duration)

type Options struct {
	BaseURL        string
	PublishableKey string
	Timeout        time.Duration
	HTTPClient     *http.Client
	Observer       Observer
	Logger         *slog.Logger
}

type Client struct {
	baseURL        string
	publishableKey string
	http           *http.Client
	observe        Observer
	logger         *slog.Logger
}

func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observe := opts.Observer
	if observe == nil {
		observe = func(string, int, time.Duration) {}
	}
	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		publishableKey: opts.PublishableKey,
		http:           hc,
		observe:        observe,
		logger:         logger,
	}
}

type tokenKey struct{}

// WithToken attaches a customer auth token; requests made with the returned
// context carry it as a bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the customer token stored by WithToken.
func TokenFrom(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey{}).(string)
	return s
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, path, q, nil, out)
}

func (c *Client) post(ctx context.Context, op, path string, q url.Values, body, out any) error {
	return c.do(ctx, op, http.MethodPost, path, q, body, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, q url.Values, body, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.publishableKey != "" {
		req.Header.Set(HeaderPublishableKey, c.publishableKey)
	}
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0, time.Since(start))
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.observe(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := parseError(resp.StatusCode, raw)
		c.logger.LogAttrs(ctx, slog.LevelDebug, "medusa_error",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("type", apiErr.Type),
			slog.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func idPath(format string, ids ...string) string {
	esc := make([]any, len(ids))
	for i, id := range ids {
		esc[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, esc...)
}
