package openapi

import (
	"github.com/oaskit/deref/references"
	"github.com/oaskit/deref/sequencedmap"
)

// Components holds the document's named, reusable objects, addressed by
// reference from elsewhere in the document.
type Components struct {
	Schemas         *sequencedmap.Map[string, *JSONSchema]               `yaml:"schemas,omitempty"`
	Responses       *sequencedmap.Map[string, *ReferencedResponse]       `yaml:"responses,omitempty"`
	Parameters      *sequencedmap.Map[string, *ReferencedParameter]      `yaml:"parameters,omitempty"`
	Examples        *sequencedmap.Map[string, *ReferencedExample]        `yaml:"examples,omitempty"`
	RequestBodies   *sequencedmap.Map[string, *ReferencedRequestBody]    `yaml:"requestBodies,omitempty"`
	Headers         *sequencedmap.Map[string, *ReferencedHeader]         `yaml:"headers,omitempty"`
	SecuritySchemes *sequencedmap.Map[string, *ReferencedSecurityScheme] `yaml:"securitySchemes,omitempty"`
	Links           *sequencedmap.Map[string, *ReferencedLink]           `yaml:"links,omitempty"`
	Callbacks       *sequencedmap.Map[string, *ReferencedCallback]       `yaml:"callbacks,omitempty"`
	PathItems       *sequencedmap.Map[string, *ReferencedPathItem]       `yaml:"pathItems,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// dereferenceComponents walks every reusable collection, recursing into the
// contents of resolved responses, headers, parameters, callbacks, and path
// items so no unresolved slot survives behind a resolved one. Components are
// processed before paths so nothing downstream re-enters component
// resolution; only the resolution cache is shared between collections.
func (d *Dereferencer) dereferenceComponents(c *Components) error {
	if c == nil {
		return nil
	}

	for scheme := range c.SecuritySchemes.Values() {
		if err := normalize(d, scheme); err != nil {
			return err
		}
	}

	for response := range c.Responses.Values() {
		if err := normalizeAndMap(d, response, d.dereferenceResponse); err != nil {
			return err
		}
	}

	for schema := range c.Schemas.Values() {
		if err := d.dereferenceSchema(schema); err != nil {
			return err
		}
	}

	for parameter := range c.Parameters.Values() {
		if err := normalizeAndMap(d, parameter, d.dereferenceParameter); err != nil {
			return err
		}
	}

	for example := range c.Examples.Values() {
		if err := normalize(d, example); err != nil {
			return err
		}
	}

	for requestBody := range c.RequestBodies.Values() {
		if err := normalize(d, requestBody); err != nil {
			return err
		}
	}

	for header := range c.Headers.Values() {
		if err := d.dereferenceHeaderSlot(header); err != nil {
			return err
		}
	}

	for link := range c.Links.Values() {
		if err := normalize(d, link); err != nil {
			return err
		}
	}

	for callback := range c.Callbacks.Values() {
		if err := d.dereferenceCallbackSlot(callback, map[references.Reference]struct{}{}); err != nil {
			return err
		}
	}

	for pathItem := range c.PathItems.Values() {
		if err := d.dereferencePathItemSlot(pathItem, map[references.Reference]struct{}{}); err != nil {
			return err
		}
	}

	return nil
}
