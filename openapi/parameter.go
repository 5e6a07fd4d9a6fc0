package openapi

import (
	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/sequencedmap"
)

// Parameter describes a single operation parameter.
type Parameter struct {
	Name            string  `yaml:"name"`
	In              string  `yaml:"in"`
	Description     *string `yaml:"description,omitempty"`
	Required        *bool   `yaml:"required,omitempty"`
	Deprecated      *bool   `yaml:"deprecated,omitempty"`
	AllowEmptyValue *bool   `yaml:"allowEmptyValue,omitempty"`

	Style         *string    `yaml:"style,omitempty"`
	Explode       *bool      `yaml:"explode,omitempty"`
	AllowReserved *bool      `yaml:"allowReserved,omitempty"`
	Schema        *JSONSchema `yaml:"schema,omitempty"`
	Example       *yaml.Node `yaml:"example,omitempty"`

	Examples *sequencedmap.Map[string, *ReferencedExample] `yaml:"examples,omitempty"`
	Content  *sequencedmap.Map[string, *MediaType]         `yaml:"content,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// Example holds an example of a parameter, header, or media type value.
// Example values can carry external values but those are not fetched here.
type Example struct {
	Summary       *string    `yaml:"summary,omitempty"`
	Description   *string    `yaml:"description,omitempty"`
	Value         *yaml.Node `yaml:"value,omitempty"`
	ExternalValue *string    `yaml:"externalValue,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// dereferenceParameter normalizes the example slots nested one level inside
// a parameter.
func (d *Dereferencer) dereferenceParameter(p *Parameter) error {
	if p == nil {
		return nil
	}

	for example := range p.Examples.Values() {
		if err := normalize(d, example); err != nil {
			return err
		}
	}
	return nil
}
