package strategy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

type strategyFile struct {
	Strategies []domain.ContentStrategy `yaml:"strategies"`
}

// LoadFile reads additional strategies from a YAML file. The strategies are
// validated when they are added to a registry.
func LoadFile(path string) ([]domain.ContentStrategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy file: %w", err)
	}

	var f strategyFile
	if unmarshalErr := yaml.Unmarshal(data, &f); unmarshalErr != nil {
		return nil, fmt.Errorf("parse strategy file %s: %w", path, unmarshalErr)
	}

	return f.Strategies, nil
}
