package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPaths_UnmarshalYAML_SplitsExtensions(t *testing.T) {
	src := `{
		"/b": {"get": {"operationId": "getB"}},
		"x-internal": true,
		"/a": {"get": {"operationId": "getA"}}
	}`

	var p Paths
	require.NoError(t, yaml.Unmarshal([]byte(src), &p))

	keys := []string{}
	for k := range p.Items.Keys() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"/b", "/a"}, keys, "path order follows the document")
	assert.Contains(t, p.Extensions, "x-internal")

	out, err := yaml.Marshal(&p)
	require.NoError(t, err)
	assert.Contains(t, string(out), "/b:")
	assert.Contains(t, string(out), "x-internal:")
}

func TestResponses_UnmarshalYAML(t *testing.T) {
	src := `{
		"201": {"description": "created"},
		"default": {"description": "fallback"},
		"x-rate-limited": true,
		"404": {"description": "missing"}
	}`

	var r Responses
	require.NoError(t, yaml.Unmarshal([]byte(src), &r))

	codes := []string{}
	for k := range r.Codes.Keys() {
		codes = append(codes, k)
	}
	assert.Equal(t, []string{"201", "404"}, codes)

	require.NotNil(t, r.Default)
	assert.Equal(t, "fallback", r.Default.GetObject().Description)
	assert.Contains(t, r.Extensions, "x-rate-limited")
}

func TestResponses_UnmarshalYAML_NotMapping(t *testing.T) {
	var r Responses
	require.Error(t, yaml.Unmarshal([]byte(`[1]`), &r))
}

func TestCallback_UnmarshalYAML_SplitsExtensions(t *testing.T) {
	src := `{
		"{$request.body#/url}": {"post": {"operationId": "notify"}},
		"x-internal": true
	}`

	var c Callback
	require.NoError(t, yaml.Unmarshal([]byte(src), &c))

	require.Equal(t, 1, c.Len())
	hook := c.GetOrZero("{$request.body#/url}")
	require.NotNil(t, hook.GetObject())
	require.NotNil(t, hook.GetObject().Post)
	assert.Contains(t, c.Extensions, "x-internal")

	out, err := yaml.Marshal(&c)
	require.NoError(t, err)
	assert.Contains(t, string(out), "x-internal:")
}

func TestNewCallback(t *testing.T) {
	c := NewCallback()
	c.Set("{$request.body#/url}", &ReferencedPathItem{Object: &PathItem{}})
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Has("{$request.body#/url}"))
}

func TestReferencedPathItem_UnmarshalYAML(t *testing.T) {
	var ref ReferencedPathItem
	require.NoError(t, yaml.Unmarshal([]byte(`{"$ref": "#/components/pathItems/pi"}`), &ref))
	assert.True(t, ref.IsReference())
	assert.False(t, ref.IsResolved())
	assert.Equal(t, "#/components/pathItems/pi", ref.GetReference().String())

	var inline ReferencedPathItem
	require.NoError(t, yaml.Unmarshal([]byte(`{"get": {"operationId": "g"}}`), &inline))
	assert.False(t, inline.IsReference())
	require.True(t, inline.IsResolved())
	assert.NotNil(t, inline.GetObject().Get)
}

func TestPathItem_Operations_FixedOrder(t *testing.T) {
	src := `{
		"trace": {"operationId": "t"},
		"get": {"operationId": "g"},
		"post": {"operationId": "p"}
	}`

	var item PathItem
	require.NoError(t, yaml.Unmarshal([]byte(src), &item))

	ids := []string{}
	for _, op := range item.operations() {
		ids = append(ids, *op.OperationID)
	}
	assert.Equal(t, []string{"g", "p", "t"}, ids, "operations walk in method order, not document order")
}
