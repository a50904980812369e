package anypoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-2xx response from the platform. The response
// body is preserved verbatim so callers can inspect server detail; Message
// is filled from the body's "message" field when the body is JSON.
type APIError struct {
	Status  int    `json:"status"            yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Body    string `json:"body,omitempty"    yaml:"body,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("platform returned %d: %s", e.Status, e.Message)
	}

	if e.Body != "" {
		return fmt.Sprintf("platform returned %d: %s", e.Status, e.Body)
	}

	return fmt.Sprintf("platform returned %d", e.Status)
}

// NewAPIError builds an APIError from a response status and raw body.
func NewAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status: status,
		Body:   string(body),
	}

	var detail struct {
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &detail); err == nil {
		apiErr.Message = detail.Message
	}

	return apiErr
}

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired          = errors.New("config is required")
	ErrEndpointRequired        = errors.New("platform endpoint is required")
	ErrNotAuthenticated        = errors.New("not authenticated")
	ErrNoAccessToken           = errors.New("login response contained no access token")
	ErrOrganizationNotFound    = errors.New("organization not found for the authenticated user")
	ErrEnvironmentNotFound     = errors.New("environment not found")
	ErrApplicationNotFound     = errors.New("application not found")
	ErrAPINotFound             = errors.New("API not found")
	ErrVersionNotFound         = errors.New("API version not found")
	ErrApplicationNameRequired = errors.New("application name is required")
	ErrAPINameRequired         = errors.New("API name is required")
	ErrAssetIDRequired         = errors.New("asset id is required")
	ErrGroupIDRequired         = errors.New("group id is required")
	ErrEnvironmentNameRequired = errors.New("environment name is required")
	ErrOriginAPIIDRequired     = errors.New("origin API id is required")
	ErrInvalidProxyURL         = errors.New("invalid proxy URL")
)

// IsNotFound reports whether err is a resolution miss or an HTTP 404.
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrApplicationNotFound),
		errors.Is(err, ErrAPINotFound),
		errors.Is(err, ErrVersionNotFound),
		errors.Is(err, ErrEnvironmentNotFound),
		errors.Is(err, ErrOrganizationNotFound):
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}

	return false
}

// IsUnauthorized reports whether err is an HTTP 401 from the platform.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}

	return false
}
