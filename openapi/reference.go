package openapi

import (
	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/pointer"
	"github.com/oaskit/deref/references"
)

type (
	// ReferencedParameter represents a parameter that can either be referenced from elsewhere or declared inline.
	ReferencedParameter = Reference[Parameter]
	// ReferencedExample represents an example that can either be referenced from elsewhere or declared inline.
	ReferencedExample = Reference[Example]
	// ReferencedRequestBody represents a request body that can either be referenced from elsewhere or declared inline.
	ReferencedRequestBody = Reference[RequestBody]
	// ReferencedResponse represents a response that can either be referenced from elsewhere or declared inline.
	ReferencedResponse = Reference[Response]
	// ReferencedLink represents a link that can either be referenced from elsewhere or declared inline.
	ReferencedLink = Reference[Link]
	// ReferencedSecurityScheme represents a security scheme that can either be referenced from elsewhere or declared inline.
	ReferencedSecurityScheme = Reference[SecurityScheme]
)

// Reference is a slot that holds either an inline object or a reference to
// one. It has three states:
//
//   - unresolved: Reference is set, Object is nil
//   - inline: Reference is empty, Object is set
//   - resolved: Reference is set and Object carries the value it pointed to
//
// After a successful dereference pass no unresolved slot remains reachable
// from the document root.
//
// Path items, headers, and callbacks contain themselves (a path item's
// callbacks hold path items, a header's content holds encodings holding
// headers), and the generic slot cannot be instantiated with a type that
// loops back into the same instantiation. ReferencedPathItem,
// ReferencedHeader, and ReferencedCallback are therefore concrete structs
// with the same shape and method set.
type Reference[T any] struct {
	// Reference is the pointer this slot was declared with, empty for inline
	// objects. Retained after resolution as provenance.
	Reference references.Reference

	// Summary overrides the summary of the referenced object, when provided
	// alongside $ref.
	Summary *string
	// Description overrides the description of the referenced object, when
	// provided alongside $ref.
	Description *string

	// Object is the inline or resolved value. nil for unresolved references.
	Object *T
}

// IsReference returns true if the slot was declared with a $ref as opposed
// to an inline object.
func (r *Reference[T]) IsReference() bool {
	if r == nil {
		return false
	}
	return r.Reference != ""
}

// IsResolved returns true if the slot holds a concrete object, either
// because it was inline or because its reference has been resolved.
func (r *Reference[T]) IsResolved() bool {
	if r == nil {
		return false
	}
	return r.Object != nil
}

// GetObject returns the concrete object, or nil for an unresolved reference.
func (r *Reference[T]) GetObject() *T {
	if r == nil {
		return nil
	}
	return r.Object
}

// GetReference returns the pointer this slot was declared with, empty for
// inline objects.
func (r *Reference[T]) GetReference() references.Reference {
	if r == nil {
		return ""
	}
	return r.Reference
}

// GetSummary returns the summary override. Returns empty string if not set.
func (r *Reference[T]) GetSummary() string {
	if r == nil {
		return ""
	}
	return pointer.ValueOrZero(r.Summary)
}

// GetDescription returns the description override. Returns empty string if not set.
func (r *Reference[T]) GetDescription() string {
	if r == nil {
		return ""
	}
	return pointer.ValueOrZero(r.Description)
}

// refObject is the wire form of a reference slot.
type refObject struct {
	Reference   references.Reference `yaml:"$ref"`
	Summary     *string              `yaml:"summary,omitempty"`
	Description *string              `yaml:"description,omitempty"`
}

// UnmarshalYAML decodes a mapping carrying $ref into an unresolved slot and
// anything else into an inline object.
func (r *Reference[T]) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalRefOrObject(node, &r.Reference, &r.Summary, &r.Description, &r.Object)
}

// MarshalYAML encodes the concrete object when the slot holds one, making
// the output self-contained. Only unresolved slots re-encode their $ref.
func (r *Reference[T]) MarshalYAML() (any, error) {
	return marshalRefOrObject(r.Reference, r.Summary, r.Description, r.Object)
}

// unmarshalRefOrObject is the shared decode path for the generic slot and
// the concrete slot structs.
func unmarshalRefOrObject[T any](node *yaml.Node, ref *references.Reference, summary, description **string, obj **T) error {
	if isRefNode(node) {
		var w refObject
		if err := node.Decode(&w); err != nil {
			return err
		}

		*ref = w.Reference
		*summary = w.Summary
		*description = w.Description
		return nil
	}

	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}

	*obj = &v
	return nil
}

// marshalRefOrObject is the shared encode path for the generic slot and the
// concrete slot structs.
func marshalRefOrObject[T any](ref references.Reference, summary, description *string, obj *T) (any, error) {
	if obj != nil {
		return obj, nil
	}

	return refObject{
		Reference:   ref,
		Summary:     summary,
		Description: description,
	}, nil
}

func isRefNode(node *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}

	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value == "$ref" {
			return true
		}
	}
	return false
}

// normalize resolves an unresolved slot in place. Inline and already
// resolved slots pass through unchanged, so repeated application is a no-op.
func normalize[T any](d *Dereferencer, slot *Reference[T]) error {
	if slot == nil || !slot.IsReference() || slot.IsResolved() {
		return nil
	}

	obj, err := resolve[T](d, slot.Reference)
	if err != nil {
		return err
	}

	slot.Object = obj
	return nil
}

// normalizeAndMap resolves an unresolved slot in place and then applies fn
// to the concrete object, so the contents of a resolved object can be
// dereferenced as well, not merely the top-level reference.
func normalizeAndMap[T any](d *Dereferencer, slot *Reference[T], fn func(*T) error) error {
	if err := normalize(d, slot); err != nil {
		return err
	}

	if slot == nil || slot.Object == nil {
		return nil
	}

	return fn(slot.Object)
}
