package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rpcdoc/internal/testutil"
)

var sampleSpec = specInput{Content: testutil.SampleDocumentYAML}

func TestListMethodsTool(t *testing.T) {
	docCache.reset()

	tests := []struct {
		name     string
		input    listMethodsInput
		matched  int
		returned int
		first    string
	}{
		{"all", listMethodsInput{Spec: sampleSpec}, 6, 6, "eth/blockNumber"},
		{"query name", listMethodsInput{Spec: sampleSpec, Query: "ETH/"}, 3, 3, "eth/blockNumber"},
		{"query summary", listMethodsInput{Spec: sampleSpec, Query: "network id"}, 1, 1, "net/version"},
		{"paged", listMethodsInput{Spec: sampleSpec, Offset: 1, Limit: 2}, 6, 2, "eth/getBalance"},
		{"no match", listMethodsInput{Spec: sampleSpec, Query: "zzz"}, 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, output, err := handleListMethods(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			assert.Nil(t, result)
			assert.Equal(t, 6, output.Total)
			assert.Equal(t, tt.matched, output.Matched)
			assert.Equal(t, tt.returned, output.Returned)
			if tt.first != "" {
				require.NotEmpty(t, output.Methods)
				assert.Equal(t, tt.first, output.Methods[0].Name)
			}
		})
	}
}

func TestMethodTreeTool(t *testing.T) {
	docCache.reset()

	t.Run("open folder", func(t *testing.T) {
		_, out, err := handleMethodTree(context.Background(), &mcp.CallToolRequest{}, methodTreeInput{
			Spec: sampleSpec,
			Open: []string{"eth"},
		})
		require.NoError(t, err)
		output, ok := out.(methodTreeOutput)
		require.True(t, ok)
		assert.Equal(t, []string{"eth"}, output.Open)
		require.NotNil(t, output.Tree.Child("eth"))
		assert.True(t, output.Tree.Child("eth").IsOpen)
		assert.False(t, output.Tree.Child("net").IsOpen)
	})

	t.Run("all", func(t *testing.T) {
		_, out, err := handleMethodTree(context.Background(), &mcp.CallToolRequest{}, methodTreeInput{
			Spec: sampleSpec,
			All:  true,
		})
		require.NoError(t, err)
		output, ok := out.(methodTreeOutput)
		require.True(t, ok)
		assert.True(t, output.Tree.Child("debug").IsOpen)
		assert.Contains(t, output.Open, "eth")
	})

	t.Run("subtree", func(t *testing.T) {
		_, out, err := handleMethodTree(context.Background(), &mcp.CallToolRequest{}, methodTreeInput{
			Spec: sampleSpec,
			Path: "eth",
		})
		require.NoError(t, err)
		output, ok := out.(methodTreeOutput)
		require.True(t, ok)
		assert.Equal(t, "eth", output.Tree.FullPath)
		assert.Equal(t, 3, output.Tree.Len())
	})

	t.Run("unknown subtree", func(t *testing.T) {
		result, _, err := handleMethodTree(context.Background(), &mcp.CallToolRequest{}, methodTreeInput{
			Spec: sampleSpec,
			Path: "nope",
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})

	t.Run("open and all", func(t *testing.T) {
		result, _, err := handleMethodTree(context.Background(), &mcp.CallToolRequest{}, methodTreeInput{
			Spec: sampleSpec,
			Open: []string{"eth"},
			All:  true,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})
}
