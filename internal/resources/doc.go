// Package resources registers MCP resources exposing server metadata and
// upstream configuration status. Resources report whether credentials are
// present as booleans only; the credential values themselves never appear.
package resources
