package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	poserrors "github.com/jrsteele09/pos-console/internal/errors"
)

// ErrTransport marks failures that happened before a response was received.
var ErrTransport = poserrors.ErrTransport

// ResponseError is returned for every non-2xx response.
type ResponseError struct {
	StatusCode int
	Message    string // "message" field of a JSON error body, if any
	Body       []byte
}

func newResponseError(statusCode int, body []byte) *ResponseError {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	return &ResponseError{
		StatusCode: statusCode,
		Message:    payload.Message,
		Body:       body,
	}
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api responded %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("api responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap exposes ErrSessionRevoked for 401 responses.
func (e *ResponseError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return poserrors.ErrSessionRevoked
	}
	return nil
}

// Message returns the server supplied message carried by err, or "".
func Message(err error) string {
	var respErr *ResponseError
	if poserrors.As(err, &respErr) {
		return respErr.Message
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0 when there was no response.
func StatusCode(err error) int {
	var respErr *ResponseError
	if poserrors.As(err, &respErr) {
		return respErr.StatusCode
	}
	return 0
}
