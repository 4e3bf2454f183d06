package openrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestOrRef_Marshal(t *testing.T) {
	ref := Ref[ContentDescriptor]("#/components/contentDescriptors/Address")
	inline := Inline(&ContentDescriptor{Name: "block", Schema: &Schema{Type: "string"}})

	assert.True(t, ref.IsRef())
	assert.False(t, inline.IsRef())

	data, err := json.Marshal([]OrRef[ContentDescriptor]{ref, inline})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"$ref": "#/components/contentDescriptors/Address"},
		{"name": "block", "schema": {"type": "string"}}
	]`, string(data))

	out, err := yaml.Marshal(ref)
	require.NoError(t, err)
	assert.Contains(t, string(out), "$ref:")
	assert.Contains(t, string(out), "#/components/contentDescriptors/Address")
}

func TestMethod_IsConcrete(t *testing.T) {
	tests := []struct {
		name   string
		method *Method
		want   bool
	}{
		{"nil", nil, false},
		{"empty", &Method{}, false},
		{"name only", &Method{Name: "a"}, false},
		{"name and params", &Method{Name: "a", Params: []OrRef[ContentDescriptor]{}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.IsConcrete())
		})
	}

	t.Run("decoded", func(t *testing.T) {
		m, err := DecodeMethod(map[string]any{"name": "", "params": []any{}})
		require.NoError(t, err)
		assert.True(t, m.IsConcrete(), "presence of both keys makes a method concrete")

		m, err = DecodeMethod(map[string]any{"name": "a"})
		require.NoError(t, err)
		assert.False(t, m.IsConcrete())
	})
}

func TestDecodeMethod_Errors(t *testing.T) {
	_, err := DecodeMethod(map[string]any{"name": "a", "params": []any{"x"}})
	assert.EqualError(t, err, "params[0]: content descriptor must be an object, got string")

	_, err = DecodeMethod(map[string]any{"name": "a", "params": []any{}, "result": 5})
	assert.EqualError(t, err, "result: content descriptor must be an object, got number")
}

func TestDocument_MarshalJSON(t *testing.T) {
	doc := parseSample(t)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "1.2.6", back["openrpc"])
	methods, ok := back["methods"].([]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"$ref": "#/components/methods/shared"}, methods[6])
	assert.NotContains(t, back, "Raw")
}
