// Package graph implements the authenticated Microsoft Graph API client used
// by the MCP tool handlers.
//
// The central type is Client, which owns the credential state for the process
// and performs one HTTP round trip per call against the Graph REST endpoint.
// On a 401 response the client refreshes the access token once (coalesced
// across concurrent calls) and retries the original request once; no other
// status code triggers a retry.
//
// # Credential resolution
//
// An access token for a call is resolved in priority order:
//
//  1. the per-call override in RequestOptions
//  2. the client's stored credential pair
//  3. a pull from the configured TokenSource
//
// If all three yield nothing the call fails with ErrNoToken before any
// network I/O.
//
// # Response normalization
//
// Response bodies are normalized before being handed to the tool layer:
// empty bodies become {"message":"OK!"}, bodies that fail to parse as JSON
// are wrapped with the original text preserved, and the ETag header is
// attached as "_etag" when the caller requested headers. OData service
// metadata (keys prefixed "@odata.") is stripped at envelope-formatting time,
// see the tools package.
package graph
