package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaskit/deref/references"
)

func TestResolve_CachesRawNodeByPointer(t *testing.T) {
	d := mustDereferencer(t, `{
		"openapi": "3.1.0",
		"info": {"title": "t", "version": "1"},
		"components": {"parameters": {"p1": {"name": "p1", "in": "query"}}}
	}`)

	ref := references.Reference("#/components/parameters/p1")

	first, err := resolve[Parameter](d, ref)
	require.NoError(t, err)
	require.Len(t, d.cache, 1)

	cached := d.cache[ref.String()]

	second, err := resolve[Parameter](d, ref)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, d.cache, 1, "second resolution must not perform another lookup")
	assert.Same(t, cached, d.cache[ref.String()], "cache entries are write-once")
}

func TestResolve_UnsupportedRefFormat(t *testing.T) {
	d := mustDereferencer(t, minimalDoc)

	tests := []struct {
		name string
		ref  references.Reference
	}{
		{
			name: "absolute url",
			ref:  "http://example.com/x",
		},
		{
			name: "other file",
			ref:  "//other-file#/x",
		},
		{
			name: "empty",
			ref:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolve[Parameter](d, tt.ref)
			require.ErrorIs(t, err, references.ErrUnsupportedRefFormat)
			assert.Empty(t, d.cache, "failed resolutions must not populate the cache")
		})
	}
}

func TestResolve_MissingTarget(t *testing.T) {
	d := mustDereferencer(t, minimalDoc)

	_, err := resolve[Parameter](d, "#/components/parameters/missing")
	require.ErrorIs(t, err, ErrParsing)
	assert.Contains(t, err.Error(), "#/components/parameters/missing")
}

func TestResolve_ShapeMismatch(t *testing.T) {
	d := mustDereferencer(t, `{
		"openapi": "3.1.0",
		"info": {"title": "t", "version": "1"},
		"components": {"parameters": {"p1": {"name": "p1", "in": "query"}}}
	}`)

	// The target exists but a sequence is expected, so decoding must fail
	// with the offending pointer in the message.
	_, err := resolve[[]string](d, "#/components/parameters/p1")
	require.ErrorIs(t, err, ErrParsing)
	assert.Contains(t, err.Error(), "#/components/parameters/p1")
}
