// Package client is the single point of egress to the Frog Cafe backend.
// Every call carries the session token when one is stored and is logged
// with the token masked.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/frog-cafe/frogcafe/internal/models"
	"github.com/frog-cafe/frogcafe/internal/session"
)

const (
	bearerPrefix    = "Bearer "
	requestIDHeader = "X-Request-ID"
)

// Config configures a Client
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	Redirects    RedirectPolicy
	MaxRedirects int
}

// Client represents an HTTP client for the Frog Cafe API
type Client struct {
	http         *resty.Client
	store        session.Store
	logger       zerolog.Logger
	redirects    RedirectPolicy
	maxRedirects int
}

// Descriptor describes one outbound request
type Descriptor struct {
	Method  string
	Path    string
	Body    interface{}
	Query   url.Values
	Headers map[string]string
}

// Response is a received HTTP response with its body fully read
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
	Redirects  int
	Duration   time.Duration
}

// Decode unmarshals the JSON body into v
func (r *Response) Decode(v interface{}) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// New creates a new API client. A nil store dispatches every request unauthenticated.
func New(cfg Config, store session.Store, logger zerolog.Logger) *Client {
	if store == nil {
		store = session.NewMemoryStore("")
	}

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetLogger(restyLogger{logger: logger}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		// Redirects are handled by Request according to the policy
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))

	return &Client{
		http:         rc,
		store:        store,
		logger:       logger,
		redirects:    cfg.Redirects,
		maxRedirects: cfg.MaxRedirects,
	}
}

// SetTransport replaces the underlying round tripper (tests, custom TLS)
func (c *Client) SetTransport(transport http.RoundTripper) {
	c.http.SetTransport(transport)
}

// WithSession returns a copy of the client bound to store. The copy
// shares the transport and logger.
func (c *Client) WithSession(store session.Store) *Client {
	copied := *c
	copied.store = store
	return &copied
}

// Session returns the store the client reads the token from
func (c *Client) Session() session.Store {
	return c.store
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Request sends d and applies the redirect policy. The returned Response
// is non-nil whenever a response was received, including alongside an
// *APIError or *RedirectError.
func (c *Client) Request(ctx context.Context, d Descriptor) (*Response, error) {
	token, err := c.store.Load()
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to load session token, sending request unauthenticated")
		token = ""
	}

	requestID := ulid.Make().String()
	target := d.Path
	limit := c.redirects.hopLimit(c.maxRedirects)
	hops := 0
	origin := ""

	for {
		resp, err := c.send(ctx, d, target, token, requestID)
		if err != nil {
			return nil, err
		}
		resp.Redirects = hops
		if hops == 0 {
			origin = hostOf(resp.URL)
		}

		if !isRedirect(resp.StatusCode) {
			return resp, c.checkStatus(d.Method, resp, token, requestID)
		}

		location := resp.Header.Get("Location")
		if location == "" || hops >= limit {
			redirectErr := &RedirectError{
				Method:     d.Method,
				URL:        resp.URL,
				StatusCode: resp.StatusCode,
				Location:   location,
				Hops:       hops,
			}
			c.logger.Error().
				Str("request_id", requestID).
				Int("status", resp.StatusCode).
				Str("url", resp.URL).
				Str("location", location).
				Msg("API redirect not followed")
			return resp, redirectErr
		}

		next, err := resolveLocation(resp.URL, location)
		if err != nil {
			return resp, &RedirectError{
				Method:     d.Method,
				URL:        resp.URL,
				StatusCode: resp.StatusCode,
				Location:   location,
				Hops:       hops,
			}
		}

		c.logger.Info().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Str("from", resp.URL).
			Str("to", next).
			Msg("Following API redirect")

		// The token only goes to the backend host, as net/http does
		if token != "" && hostOf(next) != origin {
			c.logger.Warn().
				Str("request_id", requestID).
				Str("to", next).
				Msg("Redirect leaves the backend host, dropping session token")
			token = ""
		}

		target = next
		hops++
	}
}

// send performs a single round trip without following redirects
func (c *Client) send(ctx context.Context, d Descriptor, target, token, requestID string) (*Response, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID)

	if len(d.Headers) > 0 {
		req.SetHeaders(d.Headers)
	}
	if len(d.Query) > 0 {
		req.SetQueryParamsFromValues(d.Query)
	}
	if d.Body != nil {
		req.SetBody(d.Body)
	}

	event := c.logger.Debug().
		Str("request_id", requestID).
		Str("method", d.Method).
		Str("url", target)
	if token != "" {
		req.SetHeader("Authorization", bearerPrefix+token)
		event = event.Str("token", session.Masked(token))
	} else {
		event = event.Bool("anonymous", true)
	}
	event.Msg("API request")

	resp, err := req.Execute(d.Method, target)
	if err != nil {
		fullURL := target
		if req.URL != "" {
			fullURL = req.URL
		}
		c.logger.Error().
			Err(err).
			Str("request_id", requestID).
			Str("method", d.Method).
			Str("url", fullURL).
			Msg("API request failed")
		return nil, &TransportError{Method: d.Method, URL: fullURL, Err: err}
	}

	out := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
		URL:        responseURL(resp),
		Duration:   resp.Time(),
	}

	c.logger.Info().
		Str("request_id", requestID).
		Str("method", d.Method).
		Str("url", out.URL).
		Int("status", out.StatusCode).
		Dur("duration", out.Duration).
		Msg("API response")

	return out, nil
}

// checkStatus maps non-2xx responses to *APIError. A 401 for a request
// that carried a token destroys the token.
func (c *Client) checkStatus(method string, resp *Response, token, requestID string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{
		Method:     method,
		URL:        resp.URL,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}

	var body models.ErrorBody
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		apiErr.Detail = body.Message()
	}

	message := apiErr.Detail
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	c.logger.Error().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Str("url", resp.URL).
		Str("detail", message).
		Msg("API error")

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		c.logger.Warn().
			Str("request_id", requestID).
			Str("token", session.Masked(token)).
			Msg("Session token rejected, clearing session")
		if err := c.store.Clear(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to clear rejected session token")
		}
	}

	return apiErr
}

// call sends d and decodes a successful body into out (which may be nil)
func (c *Client) call(ctx context.Context, d Descriptor, out interface{}) error {
	resp, err := c.Request(ctx, d)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

func responseURL(resp *resty.Response) string {
	if resp.RawResponse != nil && resp.RawResponse.Request != nil && resp.RawResponse.Request.URL != nil {
		return resp.RawResponse.Request.URL.String()
	}
	if resp.Request != nil {
		return resp.Request.URL
	}
	return ""
}

// resolveLocation resolves a Location header against the URL that produced it
func resolveLocation(base, location string) (string, error) {
	loc, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return "", fmt.Errorf("invalid Location header: %w", err)
	}
	if loc.IsAbs() {
		return loc.String(), nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}
	return baseURL.ResolveReference(loc).String(), nil
}

// hostOf returns the host:port of rawURL, or "" when it does not parse
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// restyLogger routes resty's internal warnings through zerolog
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), v...)
}
