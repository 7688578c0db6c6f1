package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/nba-possession-sim/internal/tuning"
)

// LoadTuning overlays the YAML document at path onto tuning.Default(). Keys missing from the file
// keep their defaults. An empty path returns the defaults.
func LoadTuning(path string) (tuning.Tuning, error) {
	t := tuning.Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tuning.Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return tuning.Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return tuning.Tuning{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}
