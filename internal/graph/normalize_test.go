package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{
			name: "empty body",
			body: "",
			want: map[string]any{"message": "OK!"},
		},
		{
			name: "whitespace only keeps original text",
			body: "  \n\t ",
			want: map[string]any{"message": "OK!", "rawResponse": "  \n\t "},
		},
		{
			name: "valid object",
			body: `{"id":"1"}`,
			want: map[string]any{"id": "1"},
		},
		{
			name: "valid array",
			body: `[1,"two"]`,
			want: []any{float64(1), "two"},
		},
		{
			name: "valid scalar",
			body: `42`,
			want: float64(42),
		},
		{
			name: "invalid JSON keeps original text",
			body: "<html>oops</html>",
			want: map[string]any{"message": "OK!", "rawResponse": "<html>oops</html>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeBody(tt.body))
		})
	}
}

func TestStripODataProperties(t *testing.T) {
	input := map[string]any{
		"@odata.context":  "https://graph.microsoft.com/v1.0/$metadata#users",
		"@odata.nextLink": "https://graph.microsoft.com/v1.0/users?$skip=10",
		"value": []any{
			map[string]any{
				"@odata.etag": `W/"x"`,
				"id":          "1",
				"manager": map[string]any{
					"@odata.type": "#microsoft.graph.user",
					"id":          "2",
				},
			},
		},
		"count": float64(1),
	}

	got := StripODataProperties(input)

	want := map[string]any{
		"value": []any{
			map[string]any{
				"id": "1",
				"manager": map[string]any{
					"id": "2",
				},
			},
		},
		"count": float64(1),
	}
	assert.Equal(t, want, got)

	// Pure transform: the input still carries its OData keys.
	assert.Contains(t, input, "@odata.context")
	inner := input["value"].([]any)[0].(map[string]any)
	assert.Contains(t, inner, "@odata.etag")
}

func TestStripODataPropertiesScalars(t *testing.T) {
	assert.Equal(t, "text", StripODataProperties("text"))
	assert.Equal(t, float64(7), StripODataProperties(float64(7)))
	assert.Nil(t, StripODataProperties(nil))
}

func TestStripODataPropertiesExactPrefixOnly(t *testing.T) {
	input := map[string]any{
		"@odata.id": "x",
		"odata.id":  "kept",   // no leading @
		"@other":    "kept",   // different prefix
		"email":     "a@b.io", // @ elsewhere
	}
	got := StripODataProperties(input).(map[string]any)
	assert.NotContains(t, got, "@odata.id")
	assert.Equal(t, "kept", got["odata.id"])
	assert.Equal(t, "kept", got["@other"])
	assert.Equal(t, "a@b.io", got["email"])
}
