package openapi

import (
	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/sequencedmap"
)

// RequestBody describes a single request body.
type RequestBody struct {
	Description *string                                `yaml:"description,omitempty"`
	Content     *sequencedmap.Map[string, *MediaType] `yaml:"content"`
	Required    *bool                                  `yaml:"required,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// MediaType provides the schema and examples for a single media type.
type MediaType struct {
	Schema   *JSONSchema                                   `yaml:"schema,omitempty"`
	Example  *yaml.Node                                    `yaml:"example,omitempty"`
	Examples *sequencedmap.Map[string, *ReferencedExample] `yaml:"examples,omitempty"`
	Encoding *sequencedmap.Map[string, *Encoding]          `yaml:"encoding,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// Encoding describes how a single request body property is serialized.
type Encoding struct {
	ContentType   *string                                      `yaml:"contentType,omitempty"`
	Headers       *sequencedmap.Map[string, *ReferencedHeader] `yaml:"headers,omitempty"`
	Style         *string                                      `yaml:"style,omitempty"`
	Explode       *bool                                        `yaml:"explode,omitempty"`
	AllowReserved *bool                                        `yaml:"allowReserved,omitempty"`

	Extensions Extensions `yaml:",inline"`
}
