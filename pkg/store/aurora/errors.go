package aurora

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized   = errors.New("aurora: authentication failed, check the API key")
	ErrForbidden      = errors.New("aurora: authorization failed, check the tenant ID and permissions")
	ErrTenantNotFound = errors.New("aurora: tenant not found")
	ErrEmptyPayload   = errors.New("aurora: empty response payload")
	ErrNotImage       = errors.New("aurora: response is not an image")
)

// StatusError is returned for non-2xx responses that have no dedicated sentinel.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("aurora: %s returned HTTP %d", e.URL, e.StatusCode)
}
