// Package json converts YAML node trees to JSON without reordering keys.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/oaskit/deref/sequencedmap"
	"gopkg.in/yaml.v3"
)

// FromYAML writes the provided YAML node as JSON to buffer, preserving the
// key order of mappings.
func FromYAML(node *yaml.Node, indentation int, buffer io.Writer) error {
	v, err := convertNode(node)
	if err != nil {
		return err
	}

	e := json.NewEncoder(buffer)
	e.SetIndent("", strings.Repeat(" ", indentation))

	return e.Encode(v)
}

func convertNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return convertNode(node.Content[0])
	case yaml.MappingNode:
		return convertMapping(node)
	case yaml.SequenceNode:
		return convertSequence(node)
	case yaml.ScalarNode:
		return convertScalar(node)
	case yaml.AliasNode:
		return convertNode(node.Alias)
	default:
		return nil, fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func convertMapping(node *yaml.Node) (any, error) {
	m := sequencedmap.New[string, any]()

	for i := 0; i < len(node.Content); i += 2 {
		key, err := convertNode(node.Content[i])
		if err != nil {
			return nil, err
		}

		value, err := convertNode(node.Content[i+1])
		if err != nil {
			return nil, err
		}

		m.Set(fmt.Sprintf("%v", key), value)
	}

	return m, nil
}

func convertSequence(node *yaml.Node) (any, error) {
	s := make([]any, len(node.Content))

	for i, n := range node.Content {
		v, err := convertNode(n)
		if err != nil {
			return nil, err
		}
		s[i] = v
	}

	return s, nil
}

func convertScalar(node *yaml.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
