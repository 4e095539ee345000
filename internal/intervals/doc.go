// Package intervals provides the client for the Intervals.icu REST API,
// the primary upstream of the proxy.
//
// All calls authenticate with HTTP Basic auth using the fixed username
// "API_KEY" and the configured API key as password. Responses are returned
// as upstream.Envelope values with the Intervals.icu status and body passed
// through unchanged.
//
// The client carries an injectable clock so the trailing-four-weeks window
// (computed in Europe/Berlin) can be pinned in tests.
package intervals
