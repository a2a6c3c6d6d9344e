package plausible

import "fmt"

// The client distinguishes four failure classes. Callers pick them apart
// with errors.As; every type carries a human-readable message that includes
// whatever the API itself said.

// AuthError means the API rejected the credentials (401/403).
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// ConnectionError is a network-layer failure: DNS, refused connection,
// timeout. The API was never reached.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response other than an auth rejection. Message is
// taken verbatim from the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// NoDataError means the query succeeded but returned no rows. It is never
// fatal in batch paths; summaries zero-fill instead.
type NoDataError struct {
	SiteID string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data returned for %s", e.SiteID)
}
