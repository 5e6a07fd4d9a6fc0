package openapi

import (
	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/references"
	"github.com/oaskit/deref/sequencedmap"
)

// JSONSchema is either a boolean schema or an object schema.
type JSONSchema struct {
	Bool   *bool
	Schema *Schema
}

// IsBool returns true if this is a boolean schema.
func (j *JSONSchema) IsBool() bool {
	return j != nil && j.Bool != nil
}

// UnmarshalYAML decodes either form of a schema.
func (j *JSONSchema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && (node.Value == "true" || node.Value == "false") && node.Tag == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		j.Bool = &b
		return nil
	}

	var s Schema
	if err := node.Decode(&s); err != nil {
		return err
	}
	j.Schema = &s
	return nil
}

// MarshalYAML encodes the schema back into whichever form it holds.
func (j *JSONSchema) MarshalYAML() (any, error) {
	if j.Bool != nil {
		return *j.Bool, nil
	}
	return j.Schema, nil
}

// Schema is an object schema. References use the dedicated Ref field rather
// than the generic reference slot, since schema references cannot carry a
// summary or description.
type Schema struct {
	Ref *references.Reference `yaml:"$ref,omitempty"`

	// Composition keywords. Each child keeps its own constraints; siblings
	// are never merged.
	AllOf []*JSONSchema `yaml:"allOf,omitempty"`
	AnyOf []*JSONSchema `yaml:"anyOf,omitempty"`
	OneOf []*JSONSchema `yaml:"oneOf,omitempty"`
	Not   *JSONSchema   `yaml:"not,omitempty"`
	If    *JSONSchema   `yaml:"if,omitempty"`
	Then  *JSONSchema   `yaml:"then,omitempty"`
	Else  *JSONSchema   `yaml:"else,omitempty"`

	Title       *string    `yaml:"title,omitempty"`
	Description *string    `yaml:"description,omitempty"`
	Type        *yaml.Node `yaml:"type,omitempty"` // string or array of strings in 3.1
	Format      *string    `yaml:"format,omitempty"`

	Properties           *sequencedmap.Map[string, *JSONSchema] `yaml:"properties,omitempty"`
	AdditionalProperties *JSONSchema                            `yaml:"additionalProperties,omitempty"`
	Items                *JSONSchema                            `yaml:"items,omitempty"`
	PrefixItems          []*JSONSchema                          `yaml:"prefixItems,omitempty"`
	Required             []string                               `yaml:"required,omitempty"`

	Enum     []*yaml.Node `yaml:"enum,omitempty"`
	Const    *yaml.Node   `yaml:"const,omitempty"`
	Default  *yaml.Node   `yaml:"default,omitempty"`
	Examples []*yaml.Node `yaml:"examples,omitempty"`

	Deprecated *bool `yaml:"deprecated,omitempty"`
	ReadOnly   *bool `yaml:"readOnly,omitempty"`
	WriteOnly  *bool `yaml:"writeOnly,omitempty"`

	// Extra catches the remaining JSON Schema keywords (numeric bounds,
	// string constraints, discriminator, extensions, ...).
	Extra Extensions `yaml:",inline"`
}

// IsRef returns true if the schema is itself a reference to another schema.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != nil
}

// dereferenceJSONSchema resolves a schema's own reference and then recurses
// into each composition branch independently and in order. visited carries
// the pointers resolved on the current recursion branch so a self
// referencing chain fails with ErrCircularReference instead of recursing
// without bound.
func (d *Dereferencer) dereferenceJSONSchema(js *JSONSchema, visited map[references.Reference]struct{}) error {
	if js == nil || js.Bool != nil || js.Schema == nil {
		return nil
	}

	var resolvedOnBranch []references.Reference
	defer func() {
		for _, ref := range resolvedOnBranch {
			delete(visited, ref)
		}
	}()

	// A resolved target may itself be a reference, so chase the chain until
	// a concrete object schema is reached.
	for js.Schema.IsRef() {
		ref := *js.Schema.Ref
		if _, ok := visited[ref]; ok {
			return ErrCircularReference.Wrapf("schema reference %s revisits itself", ref)
		}
		visited[ref] = struct{}{}
		resolvedOnBranch = append(resolvedOnBranch, ref)

		resolved, err := resolve[Schema](d, ref)
		if err != nil {
			return err
		}
		js.Schema = resolved
	}

	for _, branch := range js.Schema.AllOf {
		if err := d.dereferenceJSONSchema(branch, visited); err != nil {
			return err
		}
	}
	for _, branch := range js.Schema.AnyOf {
		if err := d.dereferenceJSONSchema(branch, visited); err != nil {
			return err
		}
	}
	for _, branch := range js.Schema.OneOf {
		if err := d.dereferenceJSONSchema(branch, visited); err != nil {
			return err
		}
	}
	if err := d.dereferenceJSONSchema(js.Schema.If, visited); err != nil {
		return err
	}
	if err := d.dereferenceJSONSchema(js.Schema.Then, visited); err != nil {
		return err
	}
	return d.dereferenceJSONSchema(js.Schema.Else, visited)
}

// dereferenceSchema is the entry point for one schema tree, starting a fresh
// visited set for the recursion branch.
func (d *Dereferencer) dereferenceSchema(js *JSONSchema) error {
	return d.dereferenceJSONSchema(js, map[references.Reference]struct{}{})
}
