package canonical

// SeedsConfig is the top-level structure of a canonical seeds YAML file.
type SeedsConfig struct {
	Services []Seed `yaml:"services"`
}

// Seed is one canonical service definition. Seeds are trusted by
// construction: bootstrap persists them without token or schema checks.
type Seed struct {
	ChittyID     string            `yaml:"chittyId"`
	ServiceName  string            `yaml:"serviceName"`
	DisplayName  string            `yaml:"displayName"`
	Description  string            `yaml:"description,omitempty"`
	Version      string            `yaml:"version,omitempty"`
	BaseURL      string            `yaml:"baseUrl"`
	Category     string            `yaml:"category"`
	Capabilities []string          `yaml:"capabilities,omitempty"`
	Dependencies []string          `yaml:"dependencies,omitempty"`
	HealthPath   string            `yaml:"healthPath,omitempty"`
	Metadata     map[string]string `yaml:"metadata,omitempty"`
}
