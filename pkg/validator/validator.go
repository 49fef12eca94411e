// Package validator provides a high-level API for pre-execution SQL
// validation.
//
// This package decides, before a statement ever reaches a database, whether
// generated SQL is structurally plausible, whether it references real schema
// objects, and whether it is likely to be slow. It works from lightweight
// text scanning; statements are never parsed into a full syntax tree and
// never executed.
//
// # Quick Start
//
//	v := validator.New()
//
//	report, err := v.Validate(context.Background(), "SELECT id FROM users WHERE email = 'x'")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("valid=%v, %d findings\n", report.IsValid(), report.Summary.Total)
//	for _, d := range report.Diagnostics {
//	    fmt.Printf("[%s] %s\n", d.Severity, d.Message)
//	}
//
// # With Schema Context
//
//	model, err := schema.Load("schema.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := v.ValidateWithSchema(ctx, sql, model)
package validator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/config"
	"github.com/sqlward/sqlward/pkg/extractor"
	_ "github.com/sqlward/sqlward/pkg/rules/clause"
	_ "github.com/sqlward/sqlward/pkg/rules/perf"
	_ "github.com/sqlward/sqlward/pkg/rules/schemacheck"
	"github.com/sqlward/sqlward/pkg/scanner"
	"github.com/sqlward/sqlward/pkg/schema"
	"github.com/sqlward/sqlward/pkg/similarity"
	"github.com/sqlward/sqlward/pkg/types"
)

// Validator runs the configured rules against SQL statements.
//
// Validator is safe for concurrent use by multiple goroutines.
type Validator struct {
	config  *config.Config
	scanner scanner.Scanner
	matcher *similarity.Cache
}

// New creates a Validator with every built-in rule enabled and default
// thresholds. Use WithConfig or WithConfigObject to customize.
func New() *Validator {
	return &Validator{
		config:  config.DefaultConfig("default"),
		scanner: scanner.Tokenizing{},
		matcher: similarity.NewCache(),
	}
}

// WithConfig loads rule configuration from a YAML or JSON file.
// This replaces the current configuration.
func (v *Validator) WithConfig(filename string) error {
	cfg, err := config.LoadFromFile(filename)
	if err != nil {
		return fmt.Errorf("failed to load config from %s: %w", filename, err)
	}
	return v.applyConfig(cfg)
}

// WithConfigObject sets a custom configuration object directly.
// An unknown scanner strategy in the config is an error.
func (v *Validator) WithConfigObject(cfg *config.Config) error {
	return v.applyConfig(cfg)
}

func (v *Validator) applyConfig(cfg *config.Config) error {
	strategy, err := scanner.ParseStrategy(cfg.Scanner)
	if err != nil {
		return err
	}
	v.config = cfg
	v.scanner = scanner.ForStrategy(strategy)
	return nil
}

// Validate runs all enabled rules against one SQL statement with no schema
// context. Schema-dependent rules skip silently.
//
// Rule execution stops when the context is cancelled, returning the partial
// report alongside ctx.Err(). Individual rule failures are logged but do not
// fail validation.
func (v *Validator) Validate(ctx context.Context, sql string, opts ...ValidateOption) (*Report, error) {
	return v.ValidateWithSchema(ctx, sql, nil, opts...)
}

// ValidateWithSchema runs all enabled rules with a schema snapshot, enabling
// the reference checks and the index-coverage advisories. Pass nil to
// validate structure only.
func (v *Validator) ValidateWithSchema(
	ctx context.Context,
	sql string,
	model *schema.Model,
	opts ...ValidateOption,
) (*Report, error) {
	options := &validateOptions{
		matcher:       v.matcher,
		maxReferences: v.config.MaxReferences,
	}
	for _, opt := range opts {
		opt(options)
	}

	src := extractor.NewSource(sql)
	ex := extractor.Extract(src, options.maxReferences)
	checkCtx := advisor.Context{
		Source:     src,
		Extraction: ex,
		Balance:    v.scanner.Scan(sql),
		Schema:     model,
		Matcher:    options.matcher,
		Thresholds: v.config.Thresholds,
	}

	var diagnostics []*types.Diagnostic
	for _, rule := range v.config.EnabledRules() {
		select {
		case <-ctx.Done():
			return newReport(diagnostics), ctx.Err()
		default:
		}

		ruleCheckContext := checkCtx
		ruleCheckContext.Rule = rule

		found, err := advisor.Check(advisor.Type(rule.Type), ruleCheckContext)
		if err != nil {
			// one broken or unknown rule must not fail the pass
			slog.Debug("rule check failed", "rule", rule.Type, "error", err)
			continue
		}
		diagnostics = append(diagnostics, found...)
	}

	if ex.Truncated {
		diagnostics = append(diagnostics, &types.Diagnostic{
			Severity: types.Severity_WARNING,
			Code:     types.ReferencesTruncated,
			Message: fmt.Sprintf("statement references more than %d objects; extraction was truncated",
				options.maxReferences),
		})
	}

	return newReport(diagnostics), nil
}

// severityRank orders a report: errors first, performance notes last.
func severityRank(s types.Severity) int {
	switch s {
	case types.Severity_ERROR:
		return 0
	case types.Severity_WARNING:
		return 1
	case types.Severity_SUGGESTION:
		return 2
	case types.Severity_PERFORMANCE:
		return 3
	default:
		return 4
	}
}

// newReport orders the diagnostics by severity, keeping rule order within
// each severity, and computes the summary.
func newReport(diagnostics []*types.Diagnostic) *Report {
	sort.SliceStable(diagnostics, func(i, j int) bool {
		return severityRank(diagnostics[i].Severity) < severityRank(diagnostics[j].Severity)
	})
	return &Report{
		Diagnostics: diagnostics,
		Summary:     calculateSummary(diagnostics),
	}
}

// calculateSummary computes aggregate statistics from diagnostics.
func calculateSummary(diagnostics []*types.Diagnostic) Summary {
	summary := Summary{}
	for _, d := range diagnostics {
		summary.Total++
		switch d.Severity {
		case types.Severity_ERROR:
			summary.Errors++
		case types.Severity_WARNING:
			summary.Warnings++
		case types.Severity_SUGGESTION:
			summary.Suggestions++
		case types.Severity_PERFORMANCE:
			summary.PerformanceNotes++
		}
	}
	return summary
}
