package mapping

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML layout file from the given path.
func LoadFile(path string) (*LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a LayoutFile.
func Parse(data []byte) (*LayoutFile, error) {
	var lf LayoutFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&lf); err != nil {
		return nil, fmt.Errorf("failed to parse layout YAML: %w", err)
	}

	applyDefaults(&lf)

	return &lf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(lf *LayoutFile) {
	if lf.Version == "" {
		lf.Version = "1"
	}

	for i := range lf.Streams {
		s := &lf.Streams[i]
		s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	}
}

// Marshal serializes a LayoutFile to YAML.
func Marshal(lf *LayoutFile) ([]byte, error) {
	return yaml.Marshal(lf)
}

// WriteFile writes a LayoutFile to the given path.
func WriteFile(lf *LayoutFile, path string) error {
	data, err := Marshal(lf)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout file %s: %w", path, err)
	}

	return nil
}
