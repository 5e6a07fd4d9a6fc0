package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/pointer"
)

func TestReference_UnmarshalYAML_Inline(t *testing.T) {
	src := `{"name": "limit", "in": "query", "required": true}`

	var slot ReferencedParameter
	require.NoError(t, yaml.Unmarshal([]byte(src), &slot))

	assert.False(t, slot.IsReference())
	assert.True(t, slot.IsResolved())
	require.NotNil(t, slot.GetObject())
	assert.Equal(t, "limit", slot.GetObject().Name)
	assert.Equal(t, "query", slot.GetObject().In)
}

func TestReference_UnmarshalYAML_Ref(t *testing.T) {
	src := `{"$ref": "#/components/parameters/limit", "summary": "s", "description": "d"}`

	var slot ReferencedParameter
	require.NoError(t, yaml.Unmarshal([]byte(src), &slot))

	assert.True(t, slot.IsReference())
	assert.False(t, slot.IsResolved())
	assert.Nil(t, slot.GetObject())
	assert.Equal(t, "#/components/parameters/limit", slot.GetReference().String())
	assert.Equal(t, "s", slot.GetSummary())
	assert.Equal(t, "d", slot.GetDescription())
}

func TestReference_MarshalYAML_ResolvedEncodesValueOnly(t *testing.T) {
	name := "limit"
	slot := &ReferencedParameter{
		Reference: "#/components/parameters/limit",
		Object:    &Parameter{Name: name, In: "query"},
	}

	out, err := yaml.Marshal(slot)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "$ref")
	assert.Contains(t, string(out), "name: limit")
}

func TestReference_MarshalYAML_UnresolvedKeepsRef(t *testing.T) {
	slot := &ReferencedParameter{
		Reference: "#/components/parameters/limit",
		Summary:   pointer.From("s"),
	}

	out, err := yaml.Marshal(slot)
	require.NoError(t, err)

	assert.Contains(t, string(out), "$ref: '#/components/parameters/limit'")
	assert.Contains(t, string(out), "summary: s")
}

func TestNormalize_Idempotent(t *testing.T) {
	d := mustDereferencer(t, `{
		"openapi": "3.1.0",
		"info": {"title": "t", "version": "1"},
		"components": {"parameters": {"p1": {"name": "p1", "in": "query"}}}
	}`)

	slot := &ReferencedParameter{Reference: "#/components/parameters/p1"}

	require.NoError(t, normalize(d, slot))
	require.True(t, slot.IsResolved())
	first := slot.GetObject()

	// Repeated application must be a no-op on the already resolved slot.
	require.NoError(t, normalize(d, slot))
	assert.Same(t, first, slot.GetObject())
}

func TestNormalize_InlinePassesThrough(t *testing.T) {
	d := mustDereferencer(t, minimalDoc)

	obj := &Parameter{Name: "p", In: "query"}
	slot := &ReferencedParameter{Object: obj}

	require.NoError(t, normalize(d, slot))
	assert.Same(t, obj, slot.GetObject())
}

func TestNormalizeAndMap_AppliesTransform(t *testing.T) {
	d := mustDereferencer(t, `{
		"openapi": "3.1.0",
		"info": {"title": "t", "version": "1"},
		"components": {
			"examples": {"e1": {"summary": "one"}},
			"parameters": {"p1": {"name": "p1", "in": "query", "examples": {"first": {"$ref": "#/components/examples/e1"}}}}
		}
	}`)

	slot := &ReferencedParameter{Reference: "#/components/parameters/p1"}

	require.NoError(t, normalizeAndMap(d, slot, d.dereferenceParameter))

	param := slot.GetObject()
	require.NotNil(t, param)

	example, ok := param.Examples.Get("first")
	require.True(t, ok)
	assert.True(t, example.IsResolved(), "nested example slot should have been resolved by the transform")
	require.NotNil(t, example.GetObject().Summary)
	assert.Equal(t, "one", *example.GetObject().Summary)
}

const minimalDoc = `{"openapi": "3.1.0", "info": {"title": "t", "version": "1"}}`

func mustDereferencer(t *testing.T, doc string) *Dereferencer {
	t.Helper()

	d, err := NewDereferencerFromString(doc)
	require.NoError(t, err)
	return d
}
