// Package strava provides the secondary-API accessor for Strava activity
// detail, including the OAuth2 bearer-token lifecycle.
//
// The token refresh unit exchanges the configured refresh token for a new
// access token at the Strava token endpoint. Refreshed triples are returned
// to the caller and never persisted; a process without a static access
// token re-refreshes on every call. The activity accessor retries a 401
// exactly once after refreshing the bearer token; there is no unbounded
// retry loop.
//
// The package also carries the one-time authorization-code bootstrap used
// by the auth CLI command to obtain the initial token pair.
package strava
