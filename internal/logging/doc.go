// Package logging provides structured logging utilities for the
// ms-365-mcp-server application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Credential masking (tokens are logged as length indicators only)
//   - Host/URL sanitization
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Log a Graph operation with standard attributes:
//
//	logger.Info("graph request completed",
//	    logging.Method("GET"),
//	    logging.Path("/me/messages"),
//	    logging.Status(200))
//
// Mask sensitive data before logging:
//
//	logger.Debug("using token", "token", logging.SanitizeToken(token))
//
// Access tokens and refresh tokens are never logged directly anywhere in the
// codebase; even partial token prefixes can aid attacks.
package logging
