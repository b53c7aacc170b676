package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile decodes the YAML file at filepath into out. Fields absent from
// the file keep the value they already had.
func LoadFile(filepath string, out any) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	err = yaml.Unmarshal(data, out)
	if err != nil {
		return fmt.Errorf("error parsing YAML: %v", err)
	}

	return nil
}
