package logging

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHost(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{
			name: "empty host",
			host: "",
			want: "<empty>",
		},
		{
			name: "hostname URL unchanged",
			host: "https://graph.microsoft.com/v1.0",
			want: "https://graph.microsoft.com/v1.0",
		},
		{
			name: "IP URL redacted",
			host: "https://10.0.0.5:8443",
			want: "https://<redacted-ip>:8443",
		},
		{
			name: "bare IP redacted",
			host: "10.0.0.5",
			want: "<redacted-ip>",
		},
		{
			name: "bare hostname unchanged",
			host: "graph.microsoft.com",
			want: "graph.microsoft.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeHost(tt.host))
		})
	}
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))

	token := "eyJhbGciOiJIUzI1NiJ9.payload.signature"
	got := SanitizeToken(token)
	assert.Equal(t, fmt.Sprintf("[token:%d chars]", len(token)), got)
	assert.NotContains(t, got, "eyJ", "no token content leaks into logs")
}

func TestAttrHelpers(t *testing.T) {
	assert.Equal(t, slog.String(KeyMethod, "GET"), Method("GET"))
	assert.Equal(t, slog.String(KeyPath, "/me"), Path("/me"))
	assert.Equal(t, slog.Int(KeyStatus, 200), Status(200))
	assert.Equal(t, slog.String(KeyOperation, "token_refresh"), Operation("token_refresh"))
}

func TestErrAttr(t *testing.T) {
	assert.Equal(t, slog.String(KeyError, ""), Err(nil))
	assert.Equal(t, slog.String(KeyError, "boom"), Err(fmt.Errorf("boom")))
}

func TestHostAttrSanitizes(t *testing.T) {
	attr := Host("https://10.1.2.3")
	assert.Equal(t, KeyHost, attr.Key)
	assert.NotContains(t, attr.Value.String(), "10.1.2.3")
}
