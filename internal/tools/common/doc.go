// Package common provides shared helpers for MCP tool handlers, most notably
// instrumentation wrappers that record metrics and audit logs around tool
// execution.
package common
