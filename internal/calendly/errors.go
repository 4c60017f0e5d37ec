package calendly

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means the access token is absent; no outbound
	// call is attempted.
	ErrNotConfigured = errors.New("calendly: access token not configured")

	// ErrAuth means Calendly rejected the credential.
	ErrAuth = errors.New("calendly: authentication failed")

	// ErrLinkCreation means the scheduling-link creation call failed.
	ErrLinkCreation = errors.New("calendly: scheduling link creation failed")
)

// APIError is a non-2xx response from Calendly, with the upstream body
// kept for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("calendly: upstream status %d: %s", e.StatusCode, e.Body)
}
