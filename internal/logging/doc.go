// Package logging provides structured logging utilities for the intervals-mcp
// application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Credential sanitization (API keys and OAuth tokens are never logged)
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "intervals.events")
//	logger.Info("fetched events",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Debug("refreshed token",
//	    "access_token", logging.SanitizeToken(triple.AccessToken))
//
// # Security Considerations
//
// API keys and bearer/refresh tokens are only ever logged through
// SanitizeToken, which reports length without exposing content.
package logging
