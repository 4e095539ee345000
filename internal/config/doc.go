// Package config holds the read-once credential and identity store for the
// two proxied fitness APIs.
//
// Credentials come from environment variables (INTERVALS_*, STRAVA_*) and
// are read exactly once at startup into an explicit Config value that gets
// injected into every component. A missing credential is deliberately NOT a
// startup failure: each tool call gates on the credentials it needs and
// reports every absent variable by name, so the server can run partially
// configured (for example Intervals-only, without Strava fallback).
package config
