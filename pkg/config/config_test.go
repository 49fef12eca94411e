package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sqlward/sqlward/pkg/types"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("default")

	require.Equal(t, "default", cfg.ID)
	require.Len(t, cfg.Rules, len(defaultRuleTypes))
	for _, rule := range cfg.Rules {
		require.Equal(t, types.RuleLevel_ERROR, rule.Level, "rule %s", rule.Type)
	}
	require.Equal(t, "structure.balance", cfg.Rules[0].Type, "balance must run first")
	require.Equal(t, types.DefaultThresholds(), cfg.Thresholds)
	require.Equal(t, DefaultMaxReferences, cfg.MaxReferences)
}

func TestGetRule(t *testing.T) {
	cfg := DefaultConfig("t")
	require.NotNil(t, cfg.GetRule("schema.table-exists"))
	require.Nil(t, cfg.GetRule("no.such.rule"))
}

func TestEnabledRulesSkipsDisabled(t *testing.T) {
	cfg := DefaultConfig("t")
	cfg.GetRule("statement.select.no-select-all").Level = types.RuleLevel_DISABLED

	enabled := cfg.EnabledRules()
	require.Len(t, enabled, len(cfg.Rules)-1)
	for _, rule := range enabled {
		require.NotEqual(t, "statement.select.no-select-all", rule.Type)
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeConfig(t, "rules.yaml", `
id: test
scanner: naive
maxReferences: 64
thresholds:
  table: 0.8
rules:
  - type: structure.balance
  - type: statement.select.no-select-all
    level: WARNING
  - type: performance.union-all
    level: DISABLED
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "test", cfg.ID)
	require.Equal(t, "naive", cfg.Scanner)
	require.Equal(t, 64, cfg.MaxReferences)

	// explicit threshold kept, the rest defaulted
	require.Equal(t, 0.8, cfg.Thresholds.Table)
	require.Equal(t, types.DefaultThresholds().Column, cfg.Thresholds.Column)
	require.Equal(t, types.DefaultThresholds().Retry, cfg.Thresholds.Retry)

	// a rule with no level defaults to ERROR
	require.Equal(t, types.RuleLevel_ERROR, cfg.GetRule("structure.balance").Level)
	require.Equal(t, types.RuleLevel_WARNING, cfg.GetRule("statement.select.no-select-all").Level)
	require.Len(t, cfg.EnabledRules(), 2)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := writeConfig(t, "rules.json",
		`{"id":"j","rules":[{"type":"structure.balance","level":"ERROR"}]}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "j", cfg.ID)
	require.Len(t, cfg.Rules, 1)
	require.Equal(t, DefaultMaxReferences, cfg.MaxReferences)
}

func TestLoadFromFileWithPayload(t *testing.T) {
	path := writeConfig(t, "rules.yaml", `
id: payload
rules:
  - type: performance.subquery-depth
    level: WARNING
    payload:
      number: 4
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	rule := cfg.GetRule("performance.subquery-depth")
	require.NotNil(t, rule)
	require.Equal(t, 4, rule.Payload["number"])
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadFromFileGarbage(t *testing.T) {
	path := writeConfig(t, "rules.yaml", "][ not config")
	_, err := LoadFromFile(path)
	require.Error(t, err)
}
