package tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/graph"
	"github.com/steffen-heil-secforge/ms-365-mcp-server/internal/server"
)

func newTestServerContext(t *testing.T, readOnly bool) *server.ServerContext {
	t.Helper()
	client, err := graph.NewClient(graph.NewDefaultConfig())
	require.NoError(t, err)

	sc, err := server.NewServerContext(context.Background(),
		server.WithGraphClient(client),
		server.WithReadOnly(readOnly),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestCheckMutatingOperationAllowed(t *testing.T) {
	sc := newTestServerContext(t, false)
	assert.Nil(t, CheckMutatingOperation(sc, "post"))
	assert.Nil(t, CheckMutatingOperation(sc, "delete"))
}

func TestCheckMutatingOperationBlockedInReadOnly(t *testing.T) {
	sc := newTestServerContext(t, true)

	result := CheckMutatingOperation(sc, "delete")
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Delete operations are not allowed in read-only mode")
}
