package zendesk

import (
	"fmt"
	"time"
)

// ConfigurationError is returned when the client is missing a setting it needs
// before any request can be made (subdomain, credentials).
type ConfigurationError struct {
	Setting string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Message)
}

// ValidationError is returned for malformed search parameters. It is always
// detected before any network call.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// RemoteServiceError wraps a non-2xx response from the Help Center API.
type RemoteServiceError struct {
	StatusCode int
	Status     string
	Body       string
	URL        string
	RetryAfter time.Duration // set for 429 responses that carry Retry-After
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Body)
}

// Unauthorized reports whether the remote service rejected the credentials.
func (e *RemoteServiceError) Unauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// RateLimited reports whether the remote service throttled the request.
func (e *RemoteServiceError) RateLimited() bool {
	return e.StatusCode == 429
}
