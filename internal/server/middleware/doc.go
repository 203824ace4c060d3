// Package middleware provides HTTP middleware for the streamable HTTP
// transport: request metrics recording with cardinality-safe path
// normalization.
package middleware
