package openapi

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/pointer"
	"github.com/oaskit/deref/references"
	"github.com/oaskit/deref/sequencedmap"
)

// Paths holds the relative paths to the individual endpoints and their
// operations, in document order.
type Paths struct {
	Items *sequencedmap.Map[string, *ReferencedPathItem]

	Extensions Extensions
}

// UnmarshalYAML splits the paths mapping into path item slots and
// extensions, preserving path order.
func (p *Paths) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &yaml.TypeError{Errors: []string{"paths must be a mapping"}}
	}

	p.Items = sequencedmap.New[string, *ReferencedPathItem]()

	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if strings.HasPrefix(keyNode.Value, "x-") {
			if p.Extensions == nil {
				p.Extensions = Extensions{}
			}
			p.Extensions[keyNode.Value] = valueNode
			continue
		}

		var slot ReferencedPathItem
		if err := valueNode.Decode(&slot); err != nil {
			return err
		}
		p.Items.Set(keyNode.Value, &slot)
	}

	return nil
}

// MarshalYAML re-encodes the paths mapping in document order, extensions
// last.
func (p *Paths) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for path, slot := range p.Items.All() {
		if err := encodeMappingEntry(node, path, slot); err != nil {
			return nil, err
		}
	}
	for key, value := range p.Extensions {
		if err := encodeMappingEntry(node, key, value); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// encodeMappingEntry appends a key/value pair to a mapping node.
func encodeMappingEntry(node *yaml.Node, key string, value any) error {
	keyNode := &yaml.Node{}
	if err := keyNode.Encode(key); err != nil {
		return err
	}
	valueNode := &yaml.Node{}
	if err := valueNode.Encode(value); err != nil {
		return err
	}
	node.Content = append(node.Content, keyNode, valueNode)
	return nil
}

// ReferencedPathItem represents a path item that can either be referenced
// from elsewhere or declared inline. A concrete struct with the shape of
// Reference[PathItem]; see the Reference doc for why it cannot be an alias.
type ReferencedPathItem struct {
	Reference   references.Reference
	Summary     *string
	Description *string
	Object      *PathItem
}

// IsReference returns true if the slot was declared with a $ref as opposed
// to an inline object.
func (r *ReferencedPathItem) IsReference() bool {
	if r == nil {
		return false
	}
	return r.Reference != ""
}

// IsResolved returns true if the slot holds a concrete object, either
// because it was inline or because its reference has been resolved.
func (r *ReferencedPathItem) IsResolved() bool {
	if r == nil {
		return false
	}
	return r.Object != nil
}

// GetObject returns the concrete object, or nil for an unresolved reference.
func (r *ReferencedPathItem) GetObject() *PathItem {
	if r == nil {
		return nil
	}
	return r.Object
}

// GetReference returns the pointer this slot was declared with, empty for
// inline objects.
func (r *ReferencedPathItem) GetReference() references.Reference {
	if r == nil {
		return ""
	}
	return r.Reference
}

// GetSummary returns the summary override. Returns empty string if not set.
func (r *ReferencedPathItem) GetSummary() string {
	if r == nil {
		return ""
	}
	return pointer.ValueOrZero(r.Summary)
}

// GetDescription returns the description override. Returns empty string if not set.
func (r *ReferencedPathItem) GetDescription() string {
	if r == nil {
		return ""
	}
	return pointer.ValueOrZero(r.Description)
}

func (r *ReferencedPathItem) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalRefOrObject(node, &r.Reference, &r.Summary, &r.Description, &r.Object)
}

func (r *ReferencedPathItem) MarshalYAML() (any, error) {
	return marshalRefOrObject(r.Reference, r.Summary, r.Description, r.Object)
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Summary     *string `yaml:"summary,omitempty"`
	Description *string `yaml:"description,omitempty"`

	Get     *Operation `yaml:"get,omitempty"`
	Put     *Operation `yaml:"put,omitempty"`
	Post    *Operation `yaml:"post,omitempty"`
	Delete  *Operation `yaml:"delete,omitempty"`
	Options *Operation `yaml:"options,omitempty"`
	Head    *Operation `yaml:"head,omitempty"`
	Patch   *Operation `yaml:"patch,omitempty"`
	Trace   *Operation `yaml:"trace,omitempty"`

	Servers    []*Server              `yaml:"servers,omitempty"`
	Parameters []*ReferencedParameter `yaml:"parameters,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// operations returns the present operations in the fixed method order used
// throughout the document walk.
func (p *PathItem) operations() []*Operation {
	all := []*Operation{p.Get, p.Put, p.Post, p.Delete, p.Options, p.Head, p.Patch, p.Trace}
	present := make([]*Operation, 0, len(all))
	for _, op := range all {
		if op != nil {
			present = append(present, op)
		}
	}
	return present
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags         []string               `yaml:"tags,omitempty"`
	Summary      *string                `yaml:"summary,omitempty"`
	Description  *string                `yaml:"description,omitempty"`
	ExternalDocs *ExternalDocumentation `yaml:"externalDocs,omitempty"`
	OperationID  *string                `yaml:"operationId,omitempty"`

	Parameters  []*ReferencedParameter                         `yaml:"parameters,omitempty"`
	RequestBody *ReferencedRequestBody                         `yaml:"requestBody,omitempty"`
	Responses   *Responses                                     `yaml:"responses,omitempty"`
	Callbacks   *sequencedmap.Map[string, *ReferencedCallback] `yaml:"callbacks,omitempty"`

	Deprecated *bool                  `yaml:"deprecated,omitempty"`
	Security   []*SecurityRequirement `yaml:"security,omitempty"`
	Servers    []*Server              `yaml:"servers,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// dereferencePaths normalizes every path item slot and recurses into its
// contents.
func (d *Dereferencer) dereferencePaths(p *Paths) error {
	if p == nil {
		return nil
	}

	for slot := range p.Items.Values() {
		if err := d.dereferencePathItemSlot(slot, map[references.Reference]struct{}{}); err != nil {
			return err
		}
	}
	return nil
}

// dereferencePathItemSlot resolves a path item slot and recurses into its
// contents. visited carries the pointers resolved on the current recursion
// branch: a path item that reaches itself again through its callbacks fails
// with ErrCircularReference instead of recursing without bound.
func (d *Dereferencer) dereferencePathItemSlot(slot *ReferencedPathItem, visited map[references.Reference]struct{}) error {
	if slot == nil {
		return nil
	}

	if slot.IsReference() && !slot.IsResolved() {
		ref := slot.Reference
		if _, ok := visited[ref]; ok {
			return ErrCircularReference.Wrapf("path item reference %s revisits itself", ref)
		}
		visited[ref] = struct{}{}
		defer delete(visited, ref)

		obj, err := resolve[PathItem](d, ref)
		if err != nil {
			return err
		}
		slot.Object = obj
	}

	return d.dereferencePathItem(slot.Object, visited)
}

// dereferencePathItem walks a path item's operations and parameters.
func (d *Dereferencer) dereferencePathItem(p *PathItem, visited map[references.Reference]struct{}) error {
	if p == nil {
		return nil
	}

	for _, op := range p.operations() {
		if err := d.dereferenceOperation(op, visited); err != nil {
			return err
		}
	}

	for _, param := range p.Parameters {
		if err := normalizeAndMap(d, param, d.dereferenceParameter); err != nil {
			return err
		}
	}
	return nil
}

// dereferenceOperation walks an operation's parameters, request body,
// responses, and callbacks.
func (d *Dereferencer) dereferenceOperation(op *Operation, visited map[references.Reference]struct{}) error {
	if op == nil {
		return nil
	}

	for _, param := range op.Parameters {
		if err := normalizeAndMap(d, param, d.dereferenceParameter); err != nil {
			return err
		}
	}

	if err := normalize(d, op.RequestBody); err != nil {
		return err
	}

	if op.Responses != nil {
		if op.Responses.Default != nil {
			if err := normalizeAndMap(d, op.Responses.Default, d.dereferenceResponse); err != nil {
				return err
			}
		}
		for slot := range op.Responses.Codes.Values() {
			if err := normalizeAndMap(d, slot, d.dereferenceResponse); err != nil {
				return err
			}
		}
	}

	for callback := range op.Callbacks.Values() {
		if err := d.dereferenceCallbackSlot(callback, visited); err != nil {
			return err
		}
	}
	return nil
}
