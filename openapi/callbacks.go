package openapi

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/pointer"
	"github.com/oaskit/deref/references"
	"github.com/oaskit/deref/sequencedmap"
)

// Callback maps runtime expressions to the path items describing the
// requests that may be initiated by the API provider. Callback embeds
// sequencedmap.Map[string, *ReferencedPathItem] so all map operations are
// supported.
type Callback struct {
	*sequencedmap.Map[string, *ReferencedPathItem]

	Extensions Extensions
}

// NewCallback creates a new Callback with the embedded map initialized.
func NewCallback() *Callback {
	return &Callback{
		Map: sequencedmap.New[string, *ReferencedPathItem](),
	}
}

// UnmarshalYAML splits the callback mapping into path item slots keyed by
// runtime expression and extensions, preserving expression order.
func (c *Callback) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &yaml.TypeError{Errors: []string{"callback must be a mapping"}}
	}

	c.Map = sequencedmap.New[string, *ReferencedPathItem]()

	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if strings.HasPrefix(keyNode.Value, "x-") {
			if c.Extensions == nil {
				c.Extensions = Extensions{}
			}
			c.Extensions[keyNode.Value] = valueNode
			continue
		}

		var slot ReferencedPathItem
		if err := valueNode.Decode(&slot); err != nil {
			return err
		}
		c.Map.Set(keyNode.Value, &slot)
	}

	return nil
}

// MarshalYAML re-encodes the callback mapping in document order, extensions
// last.
func (c *Callback) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for expression, slot := range c.Map.All() {
		if err := encodeMappingEntry(node, expression, slot); err != nil {
			return nil, err
		}
	}
	for key, value := range c.Extensions {
		if err := encodeMappingEntry(node, key, value); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// ReferencedCallback represents a callback that can either be referenced
// from elsewhere or declared inline. A concrete struct with the shape of
// Reference[Callback]; see the Reference doc for why it cannot be an alias.
type ReferencedCallback struct {
	Reference   references.Reference
	Summary     *string
	Description *string
	Object      *Callback
}

// IsReference returns true if the slot was declared with a $ref as opposed
// to an inline object.
func (r *ReferencedCallback) IsReference() bool {
	if r == nil {
		return false
	}
	return r.Reference != ""
}

// IsResolved returns true if the slot holds a concrete object, either
// because it was inline or because its reference has been resolved.
func (r *ReferencedCallback) IsResolved() bool {
	if r == nil {
		return false
	}
	return r.Object != nil
}

// GetObject returns the concrete object, or nil for an unresolved reference.
func (r *ReferencedCallback) GetObject() *Callback {
	if r == nil {
		return nil
	}
	return r.Object
}

// GetReference returns the pointer this slot was declared with, empty for
// inline objects.
func (r *ReferencedCallback) GetReference() references.Reference {
	if r == nil {
		return ""
	}
	return r.Reference
}

// GetSummary returns the summary override. Returns empty string if not set.
func (r *ReferencedCallback) GetSummary() string {
	if r == nil {
		return ""
	}
	return pointer.ValueOrZero(r.Summary)
}

// GetDescription returns the description override. Returns empty string if not set.
func (r *ReferencedCallback) GetDescription() string {
	if r == nil {
		return ""
	}
	return pointer.ValueOrZero(r.Description)
}

func (r *ReferencedCallback) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalRefOrObject(node, &r.Reference, &r.Summary, &r.Description, &r.Object)
}

func (r *ReferencedCallback) MarshalYAML() (any, error) {
	return marshalRefOrObject(r.Reference, r.Summary, r.Description, r.Object)
}

// dereferenceCallbackSlot resolves a callback slot and recurses into its
// path items, sharing the visited set with the path item recursion so a
// callback cycling back into a path item being resolved fails with
// ErrCircularReference.
func (d *Dereferencer) dereferenceCallbackSlot(slot *ReferencedCallback, visited map[references.Reference]struct{}) error {
	if slot == nil {
		return nil
	}

	if slot.IsReference() && !slot.IsResolved() {
		ref := slot.Reference
		if _, ok := visited[ref]; ok {
			return ErrCircularReference.Wrapf("callback reference %s revisits itself", ref)
		}
		visited[ref] = struct{}{}
		defer delete(visited, ref)

		obj, err := resolve[Callback](d, ref)
		if err != nil {
			return err
		}
		slot.Object = obj
	}

	if slot.Object == nil {
		return nil
	}

	for item := range slot.Object.Map.Values() {
		if err := d.dereferencePathItemSlot(item, visited); err != nil {
			return err
		}
	}
	return nil
}
