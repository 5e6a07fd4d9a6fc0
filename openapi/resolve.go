package openapi

import (
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/references"
)

// resolve evaluates a reference against the raw document and decodes the
// target node into T. The raw node is memoized by reference string so
// repeated references resolve without re-querying the document. A free
// function because Go methods cannot take type parameters.
func resolve[T any](d *Dereferencer, ref references.Reference) (*T, error) {
	key := ref.String()

	node, ok := d.cache[key]
	if !ok {
		found, err := d.query(ref)
		if err != nil {
			return nil, err
		}

		node = found
		d.cache[key] = node
	}

	var value T
	if err := node.Decode(&value); err != nil {
		return nil, ErrParsing.Wrapf("decoding node at %s: %w", key, err)
	}

	return &value, nil
}

// query translates the reference into a JSONPath expression, evaluates it
// against the raw document, and returns the first match.
func (d *Dereferencer) query(ref references.Reference) (*yaml.Node, error) {
	expr, err := ref.ToJSONPath()
	if err != nil {
		return nil, err
	}

	path, err := jsonpath.NewPath(expr)
	if err != nil {
		return nil, ErrParsing.Wrapf("building query %s for %s: %w", expr, ref, err)
	}

	matches := path.Query(d.root)
	if len(matches) == 0 {
		return nil, ErrParsing.Wrapf("no node found for reference %s", ref)
	}

	return matches[0], nil
}
