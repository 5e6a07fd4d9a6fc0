package sequencedmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMap_SetGet_Success(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	assert.Equal(t, 2, m.Len())
	assert.True(t, m.Has("b"))
	assert.False(t, m.Has("c"))
	assert.Equal(t, 0, m.GetOrZero("c"))
}

func TestMap_OrderPreserved(t *testing.T) {
	m := New(
		NewElem("z", 1),
		NewElem("a", 2),
		NewElem("m", 3),
	)

	keys := []string{}
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)

	values := []int{}
	for v := range m.Values() {
		values = append(values, v)
	}
	assert.Equal(t, []int{1, 2, 3}, values)
}

func TestMap_Delete(t *testing.T) {
	m := New(
		NewElem("a", 1),
		NewElem("b", 2),
	)

	m.Delete("a")
	assert.False(t, m.Has("a"))
	assert.Equal(t, 1, m.Len())

	m.Delete("missing")
	assert.Equal(t, 1, m.Len())
}

func TestMap_NilSafe(t *testing.T) {
	var m *Map[string, int]

	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has("a"))
	_, ok := m.Get("a")
	assert.False(t, ok)

	for range m.All() {
		t.Fatal("expected no iteration over nil map")
	}
}

func TestMap_YAMLRoundTrip(t *testing.T) {
	src := `z: 26
a: 1
m: 13
`

	var m Map[string, int]
	require.NoError(t, yaml.Unmarshal([]byte(src), &m))

	keys := []string{}
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)

	out, err := yaml.Marshal(&m)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestMap_UnmarshalYAML_NotMapping(t *testing.T) {
	var m Map[string, int]
	err := yaml.Unmarshal([]byte(`[1, 2, 3]`), &m)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "expected mapping node"))
}
