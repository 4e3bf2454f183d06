package mcpserver

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rpcdoc/internal/testutil"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "rpcdoc-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	// Start server in background; it blocks until the connection closes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Tools, 5, "expected 5 registered tools")

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	for _, name := range []string{"parse", "list_methods", "method_tree", "resolve_ref", "describe_method"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}

	for _, tool := range result.Tools {
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
}

func TestIntegration_CallTool_Parse(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "parse",
		Arguments: map[string]any{
			"spec": map[string]any{"content": testutil.SampleDocumentYAML},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError, "parse should succeed on a valid document")

	structured := unmarshalStructured(t, result)
	assert.Equal(t, true, structured["valid"])
	assert.Equal(t, "1.2.6", structured["openrpc"])
	assert.Equal(t, "Ethereum JSON-RPC API", structured["title"])
	assert.Equal(t, float64(6), structured["method_count"])
	assert.Equal(t, float64(4), structured["schema_count"])
}

func TestIntegration_CallTool_ListMethods(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "list_methods",
		Arguments: map[string]any{
			"spec":  map[string]any{"content": testutil.SampleDocumentYAML},
			"query": "balance",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, float64(6), structured["total"])
	assert.Equal(t, float64(1), structured["matched"])

	methods, ok := structured["methods"].([]any)
	require.True(t, ok, "methods should be an array")
	require.Len(t, methods, 1)
	m, ok := methods[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "eth/getBalance", m["name"])
	assert.Equal(t, "/methods/eth/getBalance", m["path"])
}

func TestIntegration_CallTool_MethodTree(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "method_tree",
		Arguments: map[string]any{
			"spec": map[string]any{"content": testutil.SampleDocumentYAML},
			"open": []any{"eth"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	tree, ok := structured["tree"].(map[string]any)
	require.True(t, ok, "tree should be an object")
	children, ok := tree["children"].([]any)
	require.True(t, ok, "children should be an array")
	first, ok := children[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "eth", first["name"])
	assert.Equal(t, true, first["isOpen"])
}

func TestIntegration_CallTool_DescribeMethod(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "describe_method",
		Arguments: map[string]any{
			"spec": map[string]any{"content": testutil.SampleDocumentYAML},
			"name": "eth/getBalance",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "eth/getBalance", structured["name"])
	params, ok := structured["params"].([]any)
	require.True(t, ok)
	assert.Len(t, params, 2)
}

func TestIntegration_CallTool_Error_InvalidDocument(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "list_methods",
		Arguments: map[string]any{
			"spec": map[string]any{"content": "just a string"},
		},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	require.NotNil(t, result)
	assert.True(t, result.IsError, "list_methods should return IsError for a non-object document")

	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "error content should be TextContent")
	assert.NotEmpty(t, text.Text)
}

func TestIntegration_CallTool_Error_MissingSpec(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "parse",
		Arguments: map[string]any{
			"spec": map[string]any{},
		},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	require.NotNil(t, result)
	assert.True(t, result.IsError, "parse should return IsError when no spec source is provided")
}

// unmarshalStructured extracts the structured output from a CallToolResult.
// It first checks StructuredContent, then falls back to parsing the first TextContent.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	// Prefer structured content if available.
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	// Fall back to parsing text content.
	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
