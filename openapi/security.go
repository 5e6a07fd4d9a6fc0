package openapi

import "github.com/oaskit/deref/sequencedmap"

// SecurityScheme defines a security scheme that can be used by operations.
type SecurityScheme struct {
	Type             string      `yaml:"type"`
	Description      *string     `yaml:"description,omitempty"`
	Name             *string     `yaml:"name,omitempty"`
	In               *string     `yaml:"in,omitempty"`
	Scheme           *string     `yaml:"scheme,omitempty"`
	BearerFormat     *string     `yaml:"bearerFormat,omitempty"`
	Flows            *OAuthFlows `yaml:"flows,omitempty"`
	OpenIDConnectURL *string     `yaml:"openIdConnectUrl,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// OAuthFlows holds configuration of the supported OAuth flows.
type OAuthFlows struct {
	Implicit          *OAuthFlow `yaml:"implicit,omitempty"`
	Password          *OAuthFlow `yaml:"password,omitempty"`
	ClientCredentials *OAuthFlow `yaml:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow `yaml:"authorizationCode,omitempty"`

	Extensions Extensions `yaml:",inline"`
}

// OAuthFlow holds configuration details for a single supported OAuth flow.
type OAuthFlow struct {
	AuthorizationURL *string                           `yaml:"authorizationUrl,omitempty"`
	TokenURL         *string                           `yaml:"tokenUrl,omitempty"`
	RefreshURL       *string                           `yaml:"refreshUrl,omitempty"`
	Scopes           *sequencedmap.Map[string, string] `yaml:"scopes"`

	Extensions Extensions `yaml:",inline"`
}

// SecurityRequirement lists the security schemes required to execute an
// operation, mapping scheme names to the scope names required.
type SecurityRequirement = sequencedmap.Map[string, []string]
