package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rpcdoc/internal/testutil"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

func TestResolver_Resolve(t *testing.T) {
	r := New(testutil.SampleDocument(t))

	t.Run("component", func(t *testing.T) {
		v, err := r.Resolve("#/components/schemas/Quantity")
		require.NoError(t, err)
		m, ok := v.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "string", m["type"])
	})

	t.Run("array index", func(t *testing.T) {
		v, err := r.Resolve("#/methods/1/name")
		require.NoError(t, err)
		assert.Equal(t, "eth/getBalance", v)
	})

	t.Run("root", func(t *testing.T) {
		for _, ptr := range []string{"#", "#/"} {
			v, err := r.Resolve(ptr)
			require.NoError(t, err, ptr)
			m, ok := v.(map[string]any)
			require.True(t, ok, ptr)
			assert.Equal(t, "1.2.6", m["openrpc"], ptr)
		}
	})
}

func TestResolver_EscapedTokens(t *testing.T) {
	r := New(map[string]any{
		"methods": map[string]any{
			"eth/call": "slash",
			"a~b":      "tilde",
		},
	})

	v, err := r.Resolve("#/methods/eth~1call")
	require.NoError(t, err)
	assert.Equal(t, "slash", v)

	v, err = r.Resolve("#/methods/a~0b")
	require.NoError(t, err)
	assert.Equal(t, "tilde", v)
}

func TestResolver_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pointer string
		segment string
		message string
	}{
		{"missing key", "#/components/schemas/Missing", "Missing", ""},
		{"missing section", "#/components/nothing/X", "nothing", ""},
		{"invalid index", "#/methods/first", "first", "invalid array index"},
		{"negative index", "#/methods/-1", "-1", "invalid array index"},
		{"index out of bounds", "#/methods/99", "99", "out of bounds (length 7)"},
		{"traverse scalar", "#/openrpc/major", "major", "cannot traverse into string at #/openrpc"},
		{"external", "other.json#/components/schemas/A", "", "same-document"},
	}

	r := New(testutil.SampleDocument(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := r.Resolve(tt.pointer)
			assert.Nil(t, v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, rpcerrors.ErrResolution))

			var rerr *rpcerrors.ResolutionError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tt.pointer, rerr.Pointer)
			assert.Equal(t, tt.segment, rerr.Segment)
			assert.Contains(t, rerr.Message, tt.message)
		})
	}
	assert.Zero(t, r.CacheLen(), "failures are not cached")
}

func TestResolver_Memoization(t *testing.T) {
	r := New(testutil.SampleDocument(t))

	first, err := r.Resolve("#/info")
	require.NoError(t, err)
	assert.Equal(t, 1, r.CacheLen())

	second, err := r.Resolve("#/info")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, r.CacheLen())

	// Keys are the raw pointer strings, without normalization.
	_, err = r.Resolve("#info")
	require.NoError(t, err)
	assert.Equal(t, 2, r.CacheLen())
}
