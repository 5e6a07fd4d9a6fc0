package openapi

import "github.com/oaskit/deref/sequencedmap"

// Server represents a server hosting the API.
type Server struct {
	URL         string                                      `yaml:"url"`
	Description *string                                     `yaml:"description,omitempty"`
	Variables   *sequencedmap.Map[string, *ServerVariable] `yaml:"variables,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// ServerVariable represents a variable available for substitution in a
// server's URL template.
type ServerVariable struct {
	Enum        []string `yaml:"enum,omitempty"`
	Default     string   `yaml:"default"`
	Description *string  `yaml:"description,omitempty"`

	Extensions Extensions `yaml:",inline"`
}
