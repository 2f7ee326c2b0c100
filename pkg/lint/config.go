package lint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chronolog-dev/chronolog/pkg/symbols"
)

// Config is the on-disk lint configuration (.chronolog.yaml).
type Config struct {
	// Rules maps rule IDs to enabled/disabled. Unlisted rules stay enabled.
	Rules map[string]bool `yaml:"rules"`

	// Categories replaces the default category vocabulary when non-empty.
	Categories []string `yaml:"categories"`

	// Symbols lists symbol table files for ref-resolves.
	Symbols []string `yaml:"symbols"`
}

// LoadConfig reads a YAML config file. A missing file yields the zero
// config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Rules builds the rule set for this configuration. An explicitly supplied
// table makes ref-resolves strict.
func (c *Config) BuildRules(table *symbols.Table, strict bool) []Rule {
	all := []Rule{
		UniqueVersion{},
		DateOrder{},
		VersionOrder{},
		DateFormat{},
		RefResolves{Table: table, Strict: strict},
		KnownCategory{Allowed: c.Categories},
		EmptySection{},
		DuplicateEntry{},
	}

	var out []Rule
	for _, rule := range all {
		if enabled, ok := c.Rules[rule.ID()]; ok && !enabled {
			continue
		}

		out = append(out, rule)
	}

	return out
}
