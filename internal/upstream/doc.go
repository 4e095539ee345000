// Package upstream provides the shared outbound HTTP layer for the two
// proxied fitness APIs.
//
// Every call goes through a timed client (20s, including token refreshes)
// and produces exactly one Envelope: the request that was made, the upstream
// status code, and the response body parsed as JSON or wrapped as
// {"raw": <text>} when parsing fails. Upstream non-2xx responses are passed
// through with their status intact rather than converted into errors, so
// callers can make their own policy decisions.
//
// The package also defines the error taxonomy used across the proxy:
//
//   - ConfigError: required credentials absent, reported before any network
//     call, enumerating every missing variable
//   - ValidationError: malformed tool input, reported before any network call
//   - AuthError: the secondary API's token refresh itself failed
//   - TransportError: timeout, DNS, or connection failure at the HTTP boundary
package upstream
