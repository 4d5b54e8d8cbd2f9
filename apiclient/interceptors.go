package apiclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"golang.org/x/oauth2"
)

// RequestInterceptor runs before the request is sent. Returning an error aborts the call.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor runs after a response is received and before the caller sees it.
type ResponseInterceptor func(resp *http.Response)

const RequestIDHeader = "X-Request-ID"

func (c *Client) defaultHeaders(req *http.Request) error {
	req.Header.Set("Accept", "application/json")
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return nil
}

// attachBearer sends the stored token, if any, with every request.
func (c *Client) attachBearer(req *http.Request) error {
	raw, err := c.store.Load(req.Context())
	if poserrors.Is(err, poserrors.ErrNoToken) {
		return nil
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("token store unavailable, sending request without credentials")
		return nil
	}
	tok := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	tok.SetAuthHeader(req)
	return nil
}

// revokeOnUnauthorized clears the stored token and sends the console to the login page.
func (c *Client) revokeOnUnauthorized(resp *http.Response) {
	if resp.StatusCode != http.StatusUnauthorized {
		return
	}
	if err := c.store.Clear(context.WithoutCancel(resp.Request.Context())); err != nil {
		c.logger.Err(err).Msg("failed to clear token after 401")
	}
	c.metrics.revoked()
	c.logger.Info().Str("path", resp.Request.URL.Path).Msg("session revoked by server")
	c.navigator.Navigate(LoginPath)
}
