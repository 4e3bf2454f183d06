package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rpcdoc/internal/pathutil"
	"github.com/erraggy/rpcdoc/internal/testutil"
	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

func TestResolver_ContentDescriptor(t *testing.T) {
	r := New(testutil.SampleDocument(t))

	t.Run("inline passthrough", func(t *testing.T) {
		cd := &openrpc.ContentDescriptor{Name: "block", Schema: &openrpc.Schema{Type: "string"}}
		got, err := r.ContentDescriptor(openrpc.Inline(cd))
		require.NoError(t, err)
		assert.Same(t, cd, got)
	})

	t.Run("reference", func(t *testing.T) {
		ref := openrpc.Ref[openrpc.ContentDescriptor](pathutil.ContentDescriptorRef("Address"))
		got, err := r.ContentDescriptor(ref)
		require.NoError(t, err)
		assert.Equal(t, "address", got.Name)
		assert.True(t, got.Required)
		require.NotNil(t, got.Schema)
		assert.Equal(t, "^0x[0-9a-fA-F]{40}$", got.Schema.Pattern)

		again, err := r.ContentDescriptor(ref)
		require.NoError(t, err)
		assert.Same(t, got, again, "decoded targets are memoized")
	})

	t.Run("reference keeps schema refs", func(t *testing.T) {
		got, err := r.ContentDescriptor(openrpc.Ref[openrpc.ContentDescriptor]("#/components/contentDescriptors/BlockResult"))
		require.NoError(t, err)
		assert.Equal(t, "#/components/schemas/Block", got.Schema.Ref)
	})

	t.Run("wrong shape", func(t *testing.T) {
		tests := []struct {
			pointer string
			got     string
		}{
			{"#/components/schemas/Quantity", `object without "name"`},
			{"#/openrpc", "string"},
			{"#/methods", "array"},
		}
		for _, tt := range tests {
			_, err := r.ContentDescriptor(openrpc.Ref[openrpc.ContentDescriptor](tt.pointer))
			require.Error(t, err, tt.pointer)
			assert.True(t, errors.Is(err, rpcerrors.ErrShape), tt.pointer)

			var serr *rpcerrors.ShapeError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, "ContentDescriptor", serr.Expected)
			assert.Equal(t, tt.got, serr.Got)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := r.ContentDescriptor(openrpc.Ref[openrpc.ContentDescriptor]("#/components/contentDescriptors/Nope"))
		assert.True(t, errors.Is(err, rpcerrors.ErrResolution))
		assert.False(t, errors.Is(err, rpcerrors.ErrShape))
	})
}

func TestResolver_OtherComponents(t *testing.T) {
	r := New(testutil.SampleDocument(t))

	errDef, err := r.ErrorDef(openrpc.Ref[openrpc.ErrorDef](pathutil.ErrorRef("InvalidParams")))
	require.NoError(t, err)
	assert.Equal(t, -32602, errDef.Code)
	assert.Equal(t, "Invalid params", errDef.Message)

	ex, err := r.Example(openrpc.Ref[openrpc.Example](pathutil.ExampleRef("latestBlock")))
	require.NoError(t, err)
	assert.Equal(t, "0x5bad55", ex.Value)

	pairing, err := r.ExamplePairing(openrpc.Ref[openrpc.ExamplePairing](pathutil.ExamplePairingRef("currentBlock")))
	require.NoError(t, err)
	assert.Equal(t, "currentBlock", pairing.Name)
	assert.Empty(t, pairing.Params)
	require.NotNil(t, pairing.Result)
	assert.Equal(t, pathutil.ExampleRef("latestBlock"), pairing.Result.Ref)

	tag, err := r.Tag(openrpc.Ref[openrpc.Tag](pathutil.TagRef("eth")))
	require.NoError(t, err)
	assert.Equal(t, "Ethereum namespace", tag.Description)

	// The same pointer decoded as different kinds is checked per kind.
	_, err = r.ErrorDef(openrpc.Ref[openrpc.ErrorDef](pathutil.TagRef("eth")))
	assert.True(t, errors.Is(err, rpcerrors.ErrShape))
}

func TestResolver_RequiredFields(t *testing.T) {
	raw := map[string]any{
		"components": map[string]any{
			"errors":                map[string]any{"NoMessage": map[string]any{"code": 1}},
			"examples":              map[string]any{"NoValue": map[string]any{"name": "x"}},
			"examplePairingObjects": map[string]any{"NoParams": map[string]any{"name": "x"}},
			"tags":                  map[string]any{"NoName": map[string]any{"description": "x"}},
		},
	}
	r := New(raw)

	_, err := r.ErrorDef(openrpc.Ref[openrpc.ErrorDef](pathutil.ErrorRef("NoMessage")))
	assert.EqualError(t, err, `shape error: #/components/errors/NoMessage does not resolve to a Error (got object without "message")`)

	_, err = r.Example(openrpc.Ref[openrpc.Example](pathutil.ExampleRef("NoValue")))
	assert.True(t, errors.Is(err, rpcerrors.ErrShape))

	_, err = r.ExamplePairing(openrpc.Ref[openrpc.ExamplePairing](pathutil.ExamplePairingRef("NoParams")))
	assert.True(t, errors.Is(err, rpcerrors.ErrShape))

	_, err = r.Tag(openrpc.Ref[openrpc.Tag](pathutil.TagRef("NoName")))
	assert.True(t, errors.Is(err, rpcerrors.ErrShape))
}
