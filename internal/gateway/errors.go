package gateway

import "fmt"

// TransportError is returned for any non-2xx partner-API response. The body
// is kept verbatim so callers can surface the server's own error message.
type TransportError struct {
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway: %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}
