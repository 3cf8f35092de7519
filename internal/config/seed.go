package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Seed is the optional YAML file of permission specs imported at startup.
// Every listed spec must parse; a bad entry keeps the node from starting
// rather than silently falling back to default permissions.
type Seed struct {
	Whitebind []string `yaml:"whitebind"`
	Whitelist []string `yaml:"whitelist"`
}

// LoadSeed reads and parses the YAML seed file
func LoadSeed(filePath string) (*Seed, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &seed, nil
}
