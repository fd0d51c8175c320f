// Package gateway wraps all outbound HTTP calls to the loyalty backend.
// It attaches the bearer token, maps failures onto the client's error
// taxonomy, and turns a 401 into a single session-invalidation signal.
// It never retries; a retry is always an explicit user action upstream.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// RequestTimeout is the fixed upper bound on any single call.
const RequestTimeout = 30 * time.Second

// TokenSource supplies the bearer token for outbound requests and is told
// when the server has rejected it. Implemented by the session store.
type TokenSource interface {
	Token() string // empty when anonymous
	Invalidate()   // called once per 401 response
}

// Client is the HTTP gateway to the backend REST API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	log            zerolog.Logger
}

// Config holds gateway configuration. Tokens and OnUnauthorized are
// optional; a nil TokenSource sends unauthenticated requests.
type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	Tokens         TokenSource
	OnUnauthorized func() // navigation-to-login signal, fired once per 401
	Logger         zerolog.Logger
}

// New creates a gateway client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("[gateway.New] BaseURL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:     httpClient,
		tokens:         cfg.Tokens,
		onUnauthorized: cfg.OnUnauthorized,
		log:            cfg.Logger,
	}, nil
}

// Request performs one call against the backend. body, when non-nil, is
// JSON-encoded; query, when non-nil, is appended to the path. A non-2xx
// response returns both the parsed *Response and a classified error.
func (c *Client) Request(ctx context.Context, method, path string, body any, query url.Values) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "[gateway.Request] marshal body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	reqURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, errors.Wrap(err, "[gateway.newRequest] create request")
	}
	c.setHeaders(req)
	return req, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
}

func (c *Client) do(req *http.Request) (*Response, error) {
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("method", req.Method).Str("path", req.URL.Path).
			Dur("duration", time.Since(started)).Err(err).Msg("request failed")
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "[gateway.do] read response")
	}

	c.log.Debug().Str("method", req.Method).Str("path", req.URL.Path).
		Int("status", resp.StatusCode).Dur("duration", time.Since(started)).
		Msg("request completed")

	response := &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		Headers:    resp.Header,
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(req)
		return response, unauthorizedError(response)
	}
	if resp.StatusCode >= 400 {
		return response, serverError(response)
	}

	return response, nil
}

// handleUnauthorized clears the shared token and fires the login redirect
// signal. Both happen exactly once per 401 response and are never retried.
func (c *Client) handleUnauthorized(req *http.Request) {
	c.log.Info().Str("path", req.URL.Path).Msg("session rejected by server")
	if c.tokens != nil {
		c.tokens.Invalidate()
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
