package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Save writes a project document to a YAML file.
func Save(doc *Document, path string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Load reads a project document from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}

	return &doc, nil
}
