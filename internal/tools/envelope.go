package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/graph"
)

// FormatResult converts a normalized Graph response value into the MCP content
// envelope. The result always carries exactly one text content element whose
// text is a JSON serialization of the payload.
//
// Values carrying a "_headers" wrapper (set by callers that captured response
// headers) have the wrapper lifted into the result meta as {etag, headers},
// and the inner "data" value becomes the payload.
//
// When rawResponse is false the payload is recursively stripped of
// "@odata."-prefixed keys and pretty-printed with two-space indentation; when
// true it is serialized compactly with no stripping. A nil payload becomes
// {"success":true}.
func FormatResult(value any, rawResponse bool) *mcp.CallToolResult {
	payload := value
	var meta map[string]any

	if m, ok := value.(map[string]any); ok {
		if headers, has := m["_headers"]; has {
			meta = map[string]any{}
			if etag, ok := m["_etag"]; ok {
				meta["etag"] = etag
			}
			meta["headers"] = headers
			payload = m["data"]
		}
	}

	var text string
	switch {
	case rawResponse:
		b, err := json.Marshal(payload)
		if err != nil {
			return FormatError(fmt.Errorf("serialize response: %w", err))
		}
		text = string(b)
	case payload == nil:
		text = `{"success":true}`
	default:
		stripped := graph.StripODataProperties(payload)
		b, err := json.MarshalIndent(stripped, "", "  ")
		if err != nil {
			return FormatError(fmt.Errorf("serialize response: %w", err))
		}
		text = string(b)
	}

	result := mcp.NewToolResultText(text)
	if meta != nil {
		result.Meta = &mcp.Meta{AdditionalFields: meta}
	}
	return result
}

// FormatError converts any adapter failure into the terminal error envelope:
// a single text content element holding {"error": <message>} with IsError set.
// This path never fails further.
func FormatError(err error) *mcp.CallToolResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	b, marshalErr := json.Marshal(map[string]string{"error": msg})
	if marshalErr != nil {
		// Unreachable for plain string maps, kept for the contract.
		return mcp.NewToolResultError(`{"error":"unserializable error"}`)
	}
	return mcp.NewToolResultError(string(b))
}
