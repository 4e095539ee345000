package upstream

import (
	"fmt"
	"strings"
)

// ConfigError reports required credentials that are absent from the
// environment. It is returned before any network call is attempted and
// enumerates every missing variable so a single message is fully diagnostic.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	suffix := "env var"
	if len(e.Missing) > 1 {
		suffix = "env vars"
	}
	return fmt.Sprintf("Missing %s %s", strings.Join(e.Missing, ", "), suffix)
}

// NewConfigError creates a ConfigError for the given missing variable names.
func NewConfigError(missing ...string) *ConfigError {
	return &ConfigError{Missing: missing}
}

// ValidationError reports a malformed tool input. It is returned before any
// network call is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError reports a failed token refresh against the secondary API's OAuth
// endpoint. It carries the upstream status code and the parsed-or-raw
// response body; a failed refresh has no further fallback and is never
// retried.
type AuthError struct {
	Status int
	Body   interface{}
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token refresh failed with status %d: %v", e.Status, e.Body)
}

// TransportError reports a network-level failure (timeout, DNS, connection)
// caught at the HTTP-call boundary. Upstream non-2xx responses are NOT
// transport errors; they are surfaced in the envelope with their status
// intact.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
