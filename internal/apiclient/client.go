// Package apiclient is the single point of network egress to the partnership
// API. Every request carries the stored access token as a bearer credential.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/princeprakhar/partnerhub/internal/credentials"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

type Client struct {
	baseURL   *url.URL
	http      *http.Client
	creds     credentials.Store
	userAgent string
	timeout   time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets an overall per-request timeout. It applies to whichever
// HTTP client the options end up selecting. Zero keeps the transport
// default, which is no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Response is a successful (2xx) reply. Use Decode or DecodeList to read the
// envelope.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func New(baseURL string, creds credentials.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme and host required", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if creds == nil {
		creds = credentials.NewMemoryStore()
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		h := *c.http
		h.Timeout = c.timeout
		c.http = &h
	}
	return c, nil
}

// Credentials returns the store the client reads the access token from.
func (c *Client) Credentials() credentials.Store {
	return c.creds
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, nil, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

// Do sends one request. Non-2xx statuses and transport failures come back as
// *Error. There is no retry and no credential refresh.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	c.authorize(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithFields(logrus.Fields{"method": method, "path": path}).Debug("api request failed: ", err)
		return nil, &Error{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Method: method, Path: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	logger.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Body: data}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}
