package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ClientsKey is the key under `custom` that holds the list of client entries.
const ClientsKey = "cognitoClients"

// CustomDomain is the declared domain for a user pool. An empty CertificateARN means a
// Cognito prefix domain (no custom TLS certificate).
type CustomDomain struct {
	Name           string `yaml:"name"`
	CertificateARN string `yaml:"certificateArn,omitempty"`
}

// ClientConfig is one declared app-client entry.
type ClientConfig struct {
	UserPoolID                      string        `yaml:"userPoolId"`
	ClientID                        string        `yaml:"clientId"`
	CallbackURLs                    []string      `yaml:"callbackUrls,omitempty"`
	LogoutURLs                      []string      `yaml:"logoutUrls,omitempty"`
	AllowedOAuthFlows               []string      `yaml:"allowedOAuthFlows,omitempty"`
	AllowedOAuthScopes              []string      `yaml:"allowedOAuthScopes,omitempty"`
	SupportedIdentityProviders      []string      `yaml:"supportedIdentityProviders,omitempty"`
	AllowedOAuthFlowsUserPoolClient *bool         `yaml:"allowedOAuthFlowsUserPoolClient,omitempty"`
	CustomDomain                    *CustomDomain `yaml:"customDomain,omitempty"`
}

// Provider holds the deployment settings read from the manifest's `provider` block.
type Provider struct {
	Name    string `yaml:"name"`
	Stage   string `yaml:"stage"`
	Region  string `yaml:"region"`
	Profile string `yaml:"profile"`
}

// Manifest is the subset of a serverless-style deployment manifest this tool reads.
type Manifest struct {
	Path     string
	Service  string
	Provider Provider
	Clients  []ClientConfig
}

type document struct {
	Service  any                  `yaml:"service"`
	Provider Provider             `yaml:"provider"`
	Custom   yaml.Node `yaml:"custom"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	m, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Parse decodes manifest YAML. A missing or non-mapping `custom` block, or a `cognitoClients`
// value that is not a list, yields a manifest with no client entries.
func Parse(raw []byte) (*Manifest, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	m := &Manifest{Service: serviceName(doc.Service), Provider: doc.Provider}
	if doc.Custom.Kind != yaml.MappingNode {
		return m, nil
	}
	var custom map[string]yaml.Node
	if err := doc.Custom.Decode(&custom); err != nil {
		return nil, fmt.Errorf("custom: %w", err)
	}
	node, ok := custom[ClientsKey]
	if !ok || node.Kind != yaml.SequenceNode {
		return m, nil
	}
	if err := node.Decode(&m.Clients); err != nil {
		return nil, fmt.Errorf("custom.%s: %w", ClientsKey, err)
	}
	return m, nil
}

// serviceName accepts both `service: name` and the older `service: {name: ...}` form.
func serviceName(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case map[string]any:
		if name, ok := s["name"].(string); ok {
			return name
		}
	}
	return ""
}

// Domains returns the entries that declare a custom domain, in manifest order.
func (m *Manifest) Domains() []ClientConfig {
	var out []ClientConfig
	for _, c := range m.Clients {
		if c.CustomDomain != nil {
			out = append(out, c)
		}
	}
	return out
}
