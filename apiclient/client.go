// Package apiclient is the console's single HTTP client for the POS API.
//
// Every call runs the request interceptors (JSON headers, request id, bearer token) before the
// exchange and the response interceptors after it. A 401 from any endpoint clears the token
// store and navigates to the login page.
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

	"github.com/jrsteele09/pos-console/tokenstore"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type Client struct {
	baseURL              *url.URL
	httpClient           *http.Client
	store                tokenstore.Store
	navigator            Navigator
	timeout              time.Duration
	logger               zerolog.Logger
	metrics              *metrics
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithNavigator sets where 401 redirects are sent. A nil navigator is ignored.
func WithNavigator(navigator Navigator) Option {
	return func(c *Client) {
		if navigator != nil {
			c.navigator = navigator
		}
	}
}

// WithTimeout bounds every call. Zero leaves calls bounded only by the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRegisterer enables request and revocation counters.
func WithRegisterer(registry prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = newMetrics(registry)
	}
}

// WithRequestInterceptor appends an interceptor that runs after the built in ones.
func WithRequestInterceptor(interceptor RequestInterceptor) Option {
	return func(c *Client) {
		c.requestInterceptors = append(c.requestInterceptors, interceptor)
	}
}

// WithResponseInterceptor appends an interceptor that runs after the 401 handler.
func WithResponseInterceptor(interceptor ResponseInterceptor) Option {
	return func(c *Client) {
		c.responseInterceptors = append(c.responseInterceptors, interceptor)
	}
}

func New(baseURL string, store tokenstore.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "[apiclient.New] invalid base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[apiclient.New] base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
		store:      store,
		navigator:  noopNavigator{},
		logger:     zerolog.Nop(),
	}
	c.requestInterceptors = []RequestInterceptor{c.defaultHeaders, c.attachBearer}
	c.responseInterceptors = []ResponseInterceptor{c.revokeOnUnauthorized}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL is the API root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do sends in as the JSON body and decodes a 2xx response into out. Either may be nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	body, err := c.send(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "[Client.Do] decoding %s %s response", method, path)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, in, out)
}

func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// GetRaw returns the undecoded body of a 2xx GET, for binary exports.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.send(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, in any) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return nil, errors.Wrapf(err, "[Client.send] encoding %s %s body", method, path)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.send] NewRequest")
	}

	for _, intercept := range c.requestInterceptors {
		if err := intercept(req); err != nil {
			return nil, errors.Wrap(err, "[Client.send] request interceptor")
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, 0)
		c.logger.Debug().Err(err).
			Str("request_id", req.Header.Get(RequestIDHeader)).
			Str("method", method).
			Str("path", req.URL.Path).
			Msg("api request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)

	c.metrics.observe(method, resp.StatusCode)
	c.logger.Debug().
		Str("request_id", req.Header.Get(RequestIDHeader)).
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	for _, intercept := range c.responseInterceptors {
		intercept(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newResponseError(resp.StatusCode, respBody)
	}
	if readErr != nil {
		return nil, fmt.Errorf("%w: reading %s %s response: %w", ErrTransport, method, path, readErr)
	}
	return respBody, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}
