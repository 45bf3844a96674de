package store

import (
	"fmt"
	"os"

	"expensereport/internal/classifier"

	"gopkg.in/yaml.v3"
)

// rulesConfig is the shape of the classifier rules override file.
type rulesConfig struct {
	Rules []classifier.Rule `yaml:"rules"`
}

// LoadRules reads a classifier rule table from a YAML file. Rule order in
// the file is the evaluation order. A missing path returns (nil, nil) so
// callers fall back to the built-in table.
func LoadRules(path string) ([]classifier.Rule, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read rules file %s: %w", path, err)
	}

	var cfg rulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse rules file %s: %w", path, err)
	}

	return cfg.Rules, nil
}
