package graph

import (
	"encoding/json"
	"strings"
)

// odataPrefix marks service metadata keys injected by the Graph API.
const odataPrefix = "@odata."

// okMessage is the synthetic payload for responses without a usable JSON body.
const okMessage = "OK!"

// DecodeBody normalizes a raw response body into a JSON-compatible value:
//
//   - empty text decodes to {"message":"OK!"}
//   - valid JSON decodes to the parsed value (object, array, or scalar)
//   - anything else decodes to {"message":"OK!","rawResponse":<text>} so the
//     original payload is never silently dropped
//
// Only the truly empty body takes the first branch. A whitespace-only body is
// non-empty undecodable text and keeps its rawResponse.
func DecodeBody(text string) any {
	if text == "" {
		return map[string]any{"message": okMessage}
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return map[string]any{"message": okMessage, "rawResponse": text}
	}
	return v
}

// StripODataProperties returns a copy of v with every key prefixed "@odata."
// removed, at any nesting depth. Arrays are recursed into element-wise;
// scalars pass through unchanged. The input is never mutated, so callers may
// keep aliases to the original payload.
func StripODataProperties(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if strings.HasPrefix(k, odataPrefix) {
				continue
			}
			out[k] = StripODataProperties(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = StripODataProperties(elem)
		}
		return out
	default:
		return v
	}
}
