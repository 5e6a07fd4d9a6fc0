// Package sequencedmap provides a map implementation that maintains the
// order of keys as they are added, with YAML round-trip support.
package sequencedmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"gopkg.in/yaml.v3"
)

// Element is a key-value pair stored in a sequenced map.
type Element[K comparable, V any] struct {
	Key   K
	Value V
}

// NewElem creates a new element with the specified key and value.
func NewElem[K comparable, V any](key K, value V) *Element[K, V] {
	return &Element[K, V]{Key: key, Value: value}
}

// Map is a map implementation that maintains the order of keys as they are
// added.
type Map[K comparable, V any] struct {
	m map[K]*Element[K, V]
	l []*Element[K, V]
}

// New creates a new map with the specified elements.
func New[K comparable, V any](elements ...*Element[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		m: make(map[K]*Element[K, V], len(elements)),
		l: make([]*Element[K, V], 0, len(elements)),
	}

	for _, element := range elements {
		m.Set(element.Key, element.Value)
	}

	return m
}

// Init initializes the underlying resources of the map. Safe to call on a
// zero-valued map.
func (m *Map[K, V]) Init() {
	if m.m == nil {
		m.m = make(map[K]*Element[K, V])
		m.l = make([]*Element[K, V], 0)
	}
}

// Len returns the number of elements in the map. nil safe.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.l)
}

// Set sets the value for the specified key, appending the key to the
// sequence if it is new.
func (m *Map[K, V]) Set(key K, value V) {
	m.Init()

	if element, ok := m.m[key]; ok {
		element.Value = value
		return
	}

	element := &Element[K, V]{Key: key, Value: value}
	m.m[key] = element
	m.l = append(m.l, element)
}

// Get returns the value for the specified key and whether the key was found.
// nil safe.
func (m *Map[K, V]) Get(key K) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}

	element, ok := m.m[key]
	if !ok {
		return zero, false
	}

	return element.Value, true
}

// GetOrZero returns the value for the specified key or the zero value if the
// key is not found.
func (m *Map[K, V]) GetOrZero(key K) V {
	v, _ := m.Get(key)
	return v
}

// Has returns whether the map contains the specified key. nil safe.
func (m *Map[K, V]) Has(key K) bool {
	if m == nil {
		return false
	}

	_, ok := m.m[key]
	return ok
}

// Delete removes the element with the specified key from the map.
func (m *Map[K, V]) Delete(key K) {
	if m == nil {
		return
	}

	if _, ok := m.m[key]; !ok {
		return
	}

	delete(m.m, key)
	m.l = slices.DeleteFunc(m.l, func(e *Element[K, V]) bool {
		return e.Key == key
	})
}

// All returns an iterator over all elements in the map, in the order they
// were added.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}

		for _, element := range m.l {
			if !yield(element.Key, element.Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over all keys in the map, in the order they were
// added.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		if m == nil {
			return
		}

		for _, element := range m.l {
			if !yield(element.Key) {
				return
			}
		}
	}
}

// Values returns an iterator over all values in the map, in the order they
// were added.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		if m == nil {
			return
		}

		for _, element := range m.l {
			if !yield(element.Value) {
				return
			}
		}
	}
}

// IsZero implements yaml omitempty semantics: a nil or empty map is omitted.
func (m *Map[K, V]) IsZero() bool {
	return m.Len() == 0
}

// UnmarshalYAML decodes a YAML mapping node into the map, preserving the
// document's key order.
func (m *Map[K, V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping node, got %s", kindName(node.Kind))
	}

	m.Init()

	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		var key K
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("decoding key %q: %w", keyNode.Value, err)
		}

		var value V
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("decoding value for key %q: %w", keyNode.Value, err)
		}

		m.Set(key, value)
	}

	return nil
}

// MarshalYAML encodes the map as a mapping node in insertion order.
func (m *Map[K, V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m == nil {
		return node, nil
	}

	for _, element := range m.l {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(element.Key); err != nil {
			return nil, fmt.Errorf("encoding key %v: %w", element.Key, err)
		}

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(element.Value); err != nil {
			return nil, fmt.Errorf("encoding value for key %v: %w", element.Key, err)
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node, nil
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, element := range m.l {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(fmt.Sprintf("%v", element.Key))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(element.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
