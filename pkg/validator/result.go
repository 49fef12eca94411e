package validator

import (
	"fmt"

	"github.com/sqlward/sqlward/pkg/types"
)

// Report contains the results of one validation pass.
//
// Diagnostics are ordered by severity: errors first, then warnings,
// suggestions, and performance notes; rule order is preserved within each
// severity.
type Report struct {
	// Diagnostics contains all findings. Empty if no issues were found.
	Diagnostics []*types.Diagnostic `json:"diagnostics" yaml:"diagnostics"`

	// Summary provides aggregate statistics about the findings.
	Summary Summary `json:"summary" yaml:"summary"`
}

// Summary provides aggregate statistics about validation findings.
type Summary struct {
	// Total number of findings across all severities.
	Total int `json:"total" yaml:"total"`

	// Errors is the count of ERROR-level findings. Any error makes the
	// statement invalid.
	Errors int `json:"errors" yaml:"errors"`

	// Warnings is the count of WARNING-level findings: risky but legal SQL.
	Warnings int `json:"warnings" yaml:"warnings"`

	// Suggestions is the count of SUGGESTION-level findings.
	Suggestions int `json:"suggestions" yaml:"suggestions"`

	// PerformanceNotes is the count of PERFORMANCE-level findings.
	PerformanceNotes int `json:"performanceNotes" yaml:"performanceNotes"`
}

// IsValid reports whether the statement passed: true iff no ERROR-level
// diagnostics exist. Warnings, suggestions, and performance notes never
// invalidate a statement.
func (r *Report) IsValid() bool {
	return r.Summary.Errors == 0
}

// HasErrors returns true if validation found any ERROR-level findings.
//
// This is useful for CI/CD pipelines that should fail on errors:
//
//	if report.HasErrors() {
//	    os.Exit(1)
//	}
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if validation found any WARNING-level findings.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// IsClean returns true if validation found nothing at all.
func (r *Report) IsClean() bool {
	return r.Summary.Total == 0
}

// String returns a human-readable summary of the report.
//
// Example output:
//
//	Validation: 5 findings (2 errors, 1 warning, 1 suggestion, 1 performance note)
func (r *Report) String() string {
	return fmt.Sprintf(
		"Validation: %d findings (%d errors, %d warnings, %d suggestions, %d performance notes)",
		r.Summary.Total,
		r.Summary.Errors,
		r.Summary.Warnings,
		r.Summary.Suggestions,
		r.Summary.PerformanceNotes,
	)
}

// FilterBySeverity returns only the diagnostics with the given severity.
//
//	errors := report.FilterBySeverity(types.Severity_ERROR)
//	for _, d := range errors {
//	    fmt.Printf("ERROR: %s\n", d.Message)
//	}
func (r *Report) FilterBySeverity(severity types.Severity) []*types.Diagnostic {
	filtered := make([]*types.Diagnostic, 0)
	for _, d := range r.Diagnostics {
		if d.Severity == severity {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// FilterByCode returns only the diagnostics with the given code.
//
//	missing := report.FilterByCode(types.TableNotFound)
func (r *Report) FilterByCode(code int32) []*types.Diagnostic {
	filtered := make([]*types.Diagnostic, 0)
	for _, d := range r.Diagnostics {
		if d.Code == code {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
