package openapi

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/pointer"
	"github.com/oaskit/deref/references"
	"github.com/oaskit/deref/sequencedmap"
)

// Responses maps response status codes to their expected responses. The
// reserved `default` key is kept apart from the per-code entries.
type Responses struct {
	Default *ReferencedResponse
	Codes   *sequencedmap.Map[string, *ReferencedResponse]

	Extensions Extensions
}

// UnmarshalYAML splits the responses mapping into default, per-code slots
// and extensions, preserving code order.
func (r *Responses) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &yaml.TypeError{Errors: []string{"responses must be a mapping"}}
	}

	r.Codes = sequencedmap.New[string, *ReferencedResponse]()

	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		switch {
		case keyNode.Value == "default":
			var slot ReferencedResponse
			if err := valueNode.Decode(&slot); err != nil {
				return err
			}
			r.Default = &slot
		case strings.HasPrefix(keyNode.Value, "x-"):
			if r.Extensions == nil {
				r.Extensions = Extensions{}
			}
			r.Extensions[keyNode.Value] = valueNode
		default:
			var slot ReferencedResponse
			if err := valueNode.Decode(&slot); err != nil {
				return err
			}
			r.Codes.Set(keyNode.Value, &slot)
		}
	}

	return nil
}

// MarshalYAML re-encodes the responses mapping with per-code entries in
// their original order, then default, then extensions.
func (r *Responses) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for code, slot := range r.Codes.All() {
		if err := encodeMappingEntry(node, code, slot); err != nil {
			return nil, err
		}
	}
	if r.Default != nil {
		if err := encodeMappingEntry(node, "default", r.Default); err != nil {
			return nil, err
		}
	}
	for key, value := range r.Extensions {
		if err := encodeMappingEntry(node, key, value); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// Response describes a single response from an API operation.
type Response struct {
	Description string                                       `yaml:"description"`
	Headers     *sequencedmap.Map[string, *ReferencedHeader] `yaml:"headers,omitempty"`
	Content     *sequencedmap.Map[string, *MediaType]        `yaml:"content,omitempty"`
	Links       *sequencedmap.Map[string, *ReferencedLink]   `yaml:"links,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// ReferencedHeader represents a header that can either be referenced from
// elsewhere or declared inline. A concrete struct with the shape of
// Reference[Header]; see the Reference doc for why it cannot be an alias.
type ReferencedHeader struct {
	Reference   references.Reference
	Summary     *string
	Description *string
	Object      *Header
}

// IsReference returns true if the slot was declared with a $ref as opposed
// to an inline object.
func (r *ReferencedHeader) IsReference() bool {
	if r == nil {
		return false
	}
	return r.Reference != ""
}

// IsResolved returns true if the slot holds a concrete object, either
// because it was inline or because its reference has been resolved.
func (r *ReferencedHeader) IsResolved() bool {
	if r == nil {
		return false
	}
	return r.Object != nil
}

// GetObject returns the concrete object, or nil for an unresolved reference.
func (r *ReferencedHeader) GetObject() *Header {
	if r == nil {
		return nil
	}
	return r.Object
}

// GetReference returns the pointer this slot was declared with, empty for
// inline objects.
func (r *ReferencedHeader) GetReference() references.Reference {
	if r == nil {
		return ""
	}
	return r.Reference
}

// GetSummary returns the summary override. Returns empty string if not set.
func (r *ReferencedHeader) GetSummary() string {
	if r == nil {
		return ""
	}
	return pointer.ValueOrZero(r.Summary)
}

// GetDescription returns the description override. Returns empty string if not set.
func (r *ReferencedHeader) GetDescription() string {
	if r == nil {
		return ""
	}
	return pointer.ValueOrZero(r.Description)
}

func (r *ReferencedHeader) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalRefOrObject(node, &r.Reference, &r.Summary, &r.Description, &r.Object)
}

func (r *ReferencedHeader) MarshalYAML() (any, error) {
	return marshalRefOrObject(r.Reference, r.Summary, r.Description, r.Object)
}

// Header follows the structure of a parameter with the name and location
// implied by its key.
type Header struct {
	Description *string `yaml:"description,omitempty"`
	Required    *bool   `yaml:"required,omitempty"`
	Deprecated  *bool   `yaml:"deprecated,omitempty"`

	Style   *string     `yaml:"style,omitempty"`
	Explode *bool       `yaml:"explode,omitempty"`
	Schema  *JSONSchema `yaml:"schema,omitempty"`
	Example *yaml.Node  `yaml:"example,omitempty"`

	Examples *sequencedmap.Map[string, *ReferencedExample] `yaml:"examples,omitempty"`
	Content  *sequencedmap.Map[string, *MediaType]         `yaml:"content,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// Link represents a possible design-time link for a response.
type Link struct {
	OperationRef *string                               `yaml:"operationRef,omitempty"`
	OperationID  *string                               `yaml:"operationId,omitempty"`
	Parameters   *sequencedmap.Map[string, *yaml.Node] `yaml:"parameters,omitempty"`
	RequestBody  *yaml.Node                            `yaml:"requestBody,omitempty"`
	Description  *string                               `yaml:"description,omitempty"`
	Server       *Server                               `yaml:"server,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// dereferenceResponse normalizes the header and link slots nested one level
// inside a response, recursing into header examples so no unresolved slot
// survives behind a resolved header.
func (d *Dereferencer) dereferenceResponse(r *Response) error {
	if r == nil {
		return nil
	}

	for header := range r.Headers.Values() {
		if err := d.dereferenceHeaderSlot(header); err != nil {
			return err
		}
	}
	for link := range r.Links.Values() {
		if err := normalize(d, link); err != nil {
			return err
		}
	}
	return nil
}

// dereferenceHeaderSlot resolves a header slot and recurses into its
// contents.
func (d *Dereferencer) dereferenceHeaderSlot(slot *ReferencedHeader) error {
	if slot == nil {
		return nil
	}

	if slot.IsReference() && !slot.IsResolved() {
		obj, err := resolve[Header](d, slot.Reference)
		if err != nil {
			return err
		}
		slot.Object = obj
	}

	return d.dereferenceHeader(slot.Object)
}

// dereferenceHeader normalizes the example slots nested one level inside a
// header.
func (d *Dereferencer) dereferenceHeader(h *Header) error {
	if h == nil {
		return nil
	}

	for example := range h.Examples.Values() {
		if err := normalize(d, example); err != nil {
			return err
		}
	}
	return nil
}
