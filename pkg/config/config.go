package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/sqlward/sqlward/pkg/types"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration for SQL validation
type Config struct {
	ID string `yaml:"id" json:"id"`
	// Rules run in the order listed.
	Rules      []*types.RuleConfig `yaml:"rules" json:"rules"`
	Thresholds types.Thresholds    `yaml:"thresholds" json:"thresholds"`
	// MaxReferences caps table/column extraction per statement.
	// Zero means the default cap.
	MaxReferences int `yaml:"maxReferences,omitempty" json:"maxReferences,omitempty"`
	// Scanner selects the delimiter-balance strategy: "tokenizing" or "naive".
	Scanner string `yaml:"scanner,omitempty" json:"scanner,omitempty"`
}

// DefaultMaxReferences bounds extraction on adversarial inputs.
const DefaultMaxReferences = 512

// LoadFromFile loads configuration from a file
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("Loading config from file", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		slog.Debug("Failed to read file", "error", err)
		return nil, err
	}

	var config Config

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, &config); err != nil {
		slog.Debug("YAML unmarshal failed, attempting JSON", "error", err)
		if err := json.Unmarshal(data, &config); err != nil {
			slog.Debug("JSON unmarshal failed", "error", err)
			return nil, err
		}
	}

	config.applyDefaults()
	slog.Debug("Loaded config", "rules_count", len(config.Rules))
	return &config, nil
}

// applyDefaults fills zero-valued knobs so a sparse file behaves like the
// stock configuration.
func (c *Config) applyDefaults() {
	defaults := types.DefaultThresholds()
	if c.Thresholds.Table == 0 {
		c.Thresholds.Table = defaults.Table
	}
	if c.Thresholds.Column == 0 {
		c.Thresholds.Column = defaults.Column
	}
	if c.Thresholds.CrossTable == 0 {
		c.Thresholds.CrossTable = defaults.CrossTable
	}
	if c.Thresholds.Retry == 0 {
		c.Thresholds.Retry = defaults.Retry
	}
	if c.MaxReferences == 0 {
		c.MaxReferences = DefaultMaxReferences
	}
	for _, rule := range c.Rules {
		if rule.Level == types.RuleLevel_LEVEL_UNSPECIFIED {
			rule.Level = types.RuleLevel_ERROR
		}
	}
}

// defaultRuleTypes lists every built-in rule in execution order: structure
// first, then statement shape, then schema checks, then performance.
var defaultRuleTypes = []string{
	"structure.balance",
	"statement.select.require-from",
	"statement.insert.require-into",
	"statement.insert.require-values",
	"statement.insert.must-specify-column",
	"statement.update.require-set",
	"statement.delete.require-from",
	"statement.where.require.update-delete",
	"statement.where.no-comparison",
	"statement.select.no-select-all",
	"statement.where.no-leading-wildcard-like",
	"statement.group-by.require-aggregate",
	"statement.order-by.require-limit",
	"statement.where.in-subquery",
	"statement.select.bare-distinct",
	"statement.alias.no-duplicate",
	"statement.alias.no-keyword",
	"statement.injection-smell",
	"statement.join.require-condition",
	"schema.table-exists",
	"schema.column-exists",
	"performance.predicate-index",
	"performance.join-index",
	"performance.cartesian-join",
	"performance.subquery-depth",
	"performance.union-all",
}

// DefaultConfig returns a configuration with every built-in rule enabled.
func DefaultConfig(id string) *Config {
	rules := make([]*types.RuleConfig, 0, len(defaultRuleTypes))
	for _, ruleType := range defaultRuleTypes {
		rules = append(rules, &types.RuleConfig{
			Type:  ruleType,
			Level: types.RuleLevel_ERROR,
		})
	}
	c := &Config{ID: id, Rules: rules}
	c.applyDefaults()
	return c
}

// GetRule returns the configured rule of the given type, or nil.
func (c *Config) GetRule(ruleType string) *types.RuleConfig {
	for _, rule := range c.Rules {
		if rule.Type == ruleType {
			return rule
		}
	}
	return nil
}

// EnabledRules returns the configured rules that are not disabled.
func (c *Config) EnabledRules() []*types.RuleConfig {
	var rules []*types.RuleConfig
	for _, rule := range c.Rules {
		if rule.Level != types.RuleLevel_DISABLED {
			rules = append(rules, rule)
		}
	}
	return rules
}
