package canonical

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader reads a canonical seeds YAML file.
type Loader struct {
	filePath string
}

// NewLoader creates a seeds loader for the given path.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seeds file.
func (l *Loader) Load() (*SeedsConfig, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seeds file: %w", err)
	}

	var config SeedsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse seeds yaml: %w", err)
	}

	if len(config.Services) == 0 {
		return nil, fmt.Errorf("no services found in seeds file %s", l.filePath)
	}

	return &config, nil
}
