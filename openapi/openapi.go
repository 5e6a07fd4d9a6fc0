// Package openapi provides a typed model of an OpenAPI 3.1 document and a
// dereferencer that resolves every internal $ref into the object it points
// to, producing a fully self-contained document tree.
package openapi

import (
	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/sequencedmap"
)

// Extensions holds any specification extensions (x-*) and other unknown
// keys of an object so they survive a round trip.
type Extensions = map[string]*yaml.Node

// OpenAPI is the root object of an OpenAPI 3.1 document.
type OpenAPI struct {
	OpenAPI           string                                          `yaml:"openapi"`
	Info              Info                                            `yaml:"info"`
	JSONSchemaDialect *string                                         `yaml:"jsonSchemaDialect,omitempty"`
	Servers           []*Server                                       `yaml:"servers,omitempty"`
	Paths             *Paths                                          `yaml:"paths,omitempty"`
	Webhooks          *sequencedmap.Map[string, *ReferencedPathItem] `yaml:"webhooks,omitempty"`
	Components        *Components                                     `yaml:"components,omitempty"`
	Security          []*SecurityRequirement                          `yaml:"security,omitempty"`
	Tags              []*Tag                                          `yaml:"tags,omitempty"`
	ExternalDocs      *ExternalDocumentation                          `yaml:"externalDocs,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// Info provides metadata about the API.
type Info struct {
	Title          string   `yaml:"title"`
	Summary        *string  `yaml:"summary,omitempty"`
	Description    *string  `yaml:"description,omitempty"`
	TermsOfService *string  `yaml:"termsOfService,omitempty"`
	Contact        *Contact `yaml:"contact,omitempty"`
	License        *License `yaml:"license,omitempty"`
	Version        string   `yaml:"version"`

	Extensions Extensions `yaml:",inline"`
}

// Contact information for the exposed API.
type Contact struct {
	Name  *string `yaml:"name,omitempty"`
	URL   *string `yaml:"url,omitempty"`
	Email *string `yaml:"email,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// License information for the exposed API.
type License struct {
	Name       string  `yaml:"name"`
	Identifier *string `yaml:"identifier,omitempty"`
	URL        *string `yaml:"url,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// Tag adds metadata to a tag used by operations.
type Tag struct {
	Name         string                 `yaml:"name"`
	Description  *string                `yaml:"description,omitempty"`
	ExternalDocs *ExternalDocumentation `yaml:"externalDocs,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// ExternalDocumentation references external documentation.
type ExternalDocumentation struct {
	Description *string `yaml:"description,omitempty"`
	URL         string  `yaml:"url"`

	Extensions Extensions `yaml:",inline"`
}
