package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chipcfg/pkg/register"
)

// SaveState persists a field-value snapshot to a YAML file. Snapshots
// round-trip losslessly through register assignment and decoding.
func SaveState(filename string, values register.Values) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// LoadState reads a field-value snapshot from a YAML file. A missing
// file yields an empty snapshot, which assigns every field its default.
func LoadState(filename string) (register.Values, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return register.Values{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	values := register.Values{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	return values, nil
}
