package openrpc

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rpcdoc/internal/testutil"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseWithOptions(WithBytes([]byte(testutil.SampleDocumentYAML)))
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func TestParseWithOptions_Sample(t *testing.T) {
	doc := parseSample(t)

	assert.Equal(t, "1.2.6", doc.OpenRPC)
	require.NotNil(t, doc.Info)
	assert.Equal(t, "Ethereum JSON-RPC API", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	require.NotNil(t, doc.Info.License)
	assert.Equal(t, "Apache 2.0", doc.Info.License.Name)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "Mainnet", doc.Servers[0].Name)
	assert.Equal(t, "bytes", doc.SourcePath)
	assert.Equal(t, int64(len(testutil.SampleDocumentYAML)), doc.SourceSize)

	require.Len(t, doc.Methods, 7)
	assert.True(t, doc.Methods[6].IsRef(), "last entry is a method reference")
	assert.Equal(t, "#/components/methods/shared", doc.Methods[6].Ref)

	require.NotNil(t, doc.Components)
	assert.Contains(t, doc.Components.Schemas, "Block")
	assert.Contains(t, doc.Components.ContentDescriptors, "Address")
	assert.Contains(t, doc.Components.Errors, "InvalidParams")
	assert.Contains(t, doc.Components.Examples, "latestBlock")
	assert.Contains(t, doc.Components.ExamplePairings, "currentBlock")
	assert.Contains(t, doc.Components.Tags, "eth")
	assert.Equal(t, -32602, doc.Components.Errors["InvalidParams"].Code)
}

func TestParseWithOptions_ConcreteMethodsSkipReferences(t *testing.T) {
	doc := parseSample(t)

	var names []string
	for _, m := range doc.ConcreteMethods() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{
		"eth/blockNumber",
		"eth/getBalance",
		"eth/getBlockByNumber",
		"net/version",
		"debug/traceTree",
		"rpc_modules",
	}, names)
}

func TestParseWithOptions_MethodUnions(t *testing.T) {
	doc := parseSample(t)
	methods := doc.ConcreteMethods()

	blockNumber := methods[0]
	require.Len(t, blockNumber.Tags, 1)
	assert.True(t, blockNumber.Tags[0].IsRef())
	require.NotNil(t, blockNumber.Result)
	assert.False(t, blockNumber.Result.IsRef())
	assert.Equal(t, "#/components/schemas/Quantity", blockNumber.Result.Value.Schema.Ref)
	assert.NotNil(t, blockNumber.Params, "empty params decode to an empty list")
	assert.Empty(t, blockNumber.Params)
	require.Len(t, blockNumber.Examples, 1)
	assert.Equal(t, "#/components/examplePairingObjects/currentBlock", blockNumber.Examples[0].Ref)

	getBalance := methods[1]
	require.Len(t, getBalance.Params, 2)
	assert.Equal(t, "#/components/contentDescriptors/Address", getBalance.Params[0].Ref)
	block := getBalance.Params[1].Value
	require.NotNil(t, block)
	assert.Equal(t, "block", block.Name)
	require.Len(t, block.Schema.OneOf, 2)
	assert.Equal(t, "#/components/schemas/Quantity", block.Schema.OneOf[0].Ref)
	assert.Equal(t, []any{"latest", "earliest", "pending"}, block.Schema.OneOf[1].Enum)
	require.Len(t, getBalance.Errors, 2)
	assert.True(t, getBalance.Errors[0].IsRef())
	assert.Equal(t, "Address not found", getBalance.Errors[1].Value.Message)

	getBlock := methods[2]
	require.NotNil(t, getBlock.Result)
	assert.Equal(t, "#/components/contentDescriptors/BlockResult", getBlock.Result.Ref)

	assert.Nil(t, methods[5].Result, "rpc_modules has no result")
}

func TestParseWithOptions_Files(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := testutil.WriteTempYAML(t, testutil.SampleDocument(t))
		doc, err := ParseWithOptions(WithFilePath(path))
		require.NoError(t, err)
		assert.Equal(t, path, doc.SourcePath)
		assert.Len(t, doc.ConcreteMethods(), 6)
	})

	t.Run("json", func(t *testing.T) {
		path := testutil.WriteTempJSON(t, testutil.SampleDocument(t))
		doc, err := ParseWithOptions(WithFilePath(path))
		require.NoError(t, err)
		assert.Len(t, doc.ConcreteMethods(), 6)
	})

	t.Run("gzip", func(t *testing.T) {
		path := testutil.WriteTempGzip(t, []byte(testutil.SampleDocumentYAML))
		doc, err := ParseWithOptions(WithFilePath(path))
		require.NoError(t, err)
		assert.Len(t, doc.ConcreteMethods(), 6)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseWithOptions(WithFilePath(filepath.Join(t.TempDir(), "nope.json")))
		require.Error(t, err)
		assert.True(t, errors.Is(err, rpcerrors.ErrParse))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestParseWithOptions_Zstd(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll([]byte(testutil.SampleDocumentYAML), nil)
	require.NoError(t, enc.Close())

	doc, err := ParseWithOptions(WithReader(bytes.NewReader(compressed)))
	require.NoError(t, err)
	assert.Equal(t, "reader", doc.SourcePath)
	assert.Len(t, doc.ConcreteMethods(), 6)
}

func TestParseWithOptions_WithData(t *testing.T) {
	raw := testutil.MinimalDocument()
	doc, err := ParseWithOptions(WithData(raw), WithSourceName("inline"))
	require.NoError(t, err)
	assert.Equal(t, "inline", doc.SourcePath)
	assert.Empty(t, doc.ConcreteMethods())
	raw["marker"] = true
	assert.Equal(t, true, doc.Raw["marker"], "Raw is the caller's map, not a copy")
}

func TestParseWithOptions_ValidationFailures(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		doc, err := ParseWithOptions(WithBytes([]byte("{}")))
		assert.Nil(t, doc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, rpcerrors.ErrValidation))

		var verr *rpcerrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Violations, 3)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte("")))
		assert.True(t, errors.Is(err, rpcerrors.ErrValidation))
	})

	t.Run("custom validator", func(t *testing.T) {
		v := ValidatorFunc(func(map[string]any) []rpcerrors.Violation {
			return []rpcerrors.Violation{{Path: "info", Message: "rejected"}}
		})
		_, err := ParseWithOptions(WithData(testutil.MinimalDocument()), WithValidator(v))
		var verr *rpcerrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "info: rejected", verr.Violations[0].String())
	})

	t.Run("validation disabled still needs decodable methods", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte("openrpc: 1.2.6")), WithValidator(nil))
		var verr *rpcerrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), "methods must be an array")
	})
}

func TestParseWithOptions_DecodeFailuresAreAggregated(t *testing.T) {
	raw := testutil.MinimalDocument()
	raw["methods"] = []any{
		map[string]any{"name": "a", "params": []any{
			map[string]any{"name": "p", "schema": "notaschema"},
		}},
		map[string]any{"name": "b", "params": []any{
			map[string]any{"name": "q", "schema": 42},
		}},
	}
	raw["components"] = map[string]any{
		"schemas": map[string]any{"Good": map[string]any{"type": "string"}, "S": "bad"},
	}

	doc, err := ParseWithOptions(WithData(raw))
	assert.Nil(t, doc)
	var verr *rpcerrors.ValidationError
	require.ErrorAs(t, err, &verr)

	assert.Equal(t, []string{
		"methods[0].params[0].schema: schema must be an object or boolean, got string",
		"methods[1].params[0].schema: schema must be an object or boolean, got number",
		"components.schemas.S: schema must be an object or boolean, got string",
	}, violationStrings(verr.Violations))
	assert.Equal(t, "#/methods/1/params/0/schema", verr.Violations[1].Pointer)
	assert.Equal(t, "#/components/schemas/S", verr.Violations[2].Pointer)
}

func TestParseWithOptions_ParseFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", "openrpc: [unclosed"},
		{"top-level array", "- a\n- b\n"},
		{"top-level scalar", "just a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithOptions(WithBytes([]byte(tt.input)))
			require.Error(t, err)
			assert.True(t, errors.Is(err, rpcerrors.ErrParse))
			assert.False(t, errors.Is(err, rpcerrors.ErrValidation))
		})
	}

	t.Run("size limit", func(t *testing.T) {
		_, err := ParseWithOptions(
			WithReader(strings.NewReader(testutil.SampleDocumentYAML)),
			WithMaxFileSize(64),
		)
		require.Error(t, err)
		assert.True(t, errors.Is(err, rpcerrors.ErrParse))
		assert.Contains(t, err.Error(), "maximum size")
	})
}

func TestParseWithOptions_Options(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"no input", nil},
		{"two inputs", []Option{WithBytes([]byte("{}")), WithData(map[string]any{})}},
		{"nil reader", []Option{WithReader(nil)}},
		{"nil bytes", []Option{WithBytes(nil)}},
		{"nil data", []Option{WithData(nil)}},
		{"bad size", []Option{WithBytes([]byte("{}")), WithMaxFileSize(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithOptions(tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, rpcerrors.ErrConfig), "got %v", err)
		})
	}
}

func TestParseWithOptions_WarnsOnDuplicateNames(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	raw := testutil.MinimalDocument()
	raw["methods"] = []any{
		map[string]any{"name": "a/b", "params": []any{}},
		map[string]any{"name": "a/b", "params": []any{}},
	}
	doc, err := ParseWithOptions(WithData(raw), WithLogger(logger))
	require.NoError(t, err)
	assert.Len(t, doc.ConcreteMethods(), 2)
	assert.Contains(t, buf.String(), "duplicate method name")
	assert.Contains(t, buf.String(), "loaded document")
}
