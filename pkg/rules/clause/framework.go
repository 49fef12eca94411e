// Package clause implements the structural and statement-shape rules that
// run without a schema: delimiter balance, required clauses per statement
// kind, and textual risk patterns.
package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/types"
)

// newDiagnostic builds a diagnostic with the rule-adjusted severity.
func newDiagnostic(checkCtx advisor.Context, natural types.Severity, code int32, message string) *types.Diagnostic {
	return &types.Diagnostic{
		Severity: advisor.SeverityForRule(checkCtx.Rule, natural),
		Code:     code,
		Message:  message,
	}
}

// withSpan attaches a source span to a diagnostic.
func withSpan(d *types.Diagnostic, span types.Span) *types.Diagnostic {
	d.Span = &types.Span{Start: span.Start, End: span.End}
	return d
}

// aggregateFunctions are the functions that make a GROUP BY projection
// meaningful.
var aggregateFunctions = map[string]bool{
	"COUNT": true, "SUM": true, "AVG": true, "MIN": true, "MAX": true,
	"GROUP_CONCAT": true, "STRING_AGG": true, "ARRAY_AGG": true,
}

// riskyAliasKeywords are identifiers that are legal as aliases in most
// dialects but shadow keywords and confuse later readers. Words that the
// extractor already refuses as aliases are not listed.
var riskyAliasKeywords = map[string]bool{
	"ASC": true, "DESC": true, "KEY": true, "INDEX": true, "TABLE": true,
	"COLUMN": true, "CHECK": true, "PRIMARY": true, "DEFAULT": true,
	"DISTINCT": true, "CASE": true, "WHEN": true, "THEN": true, "ELSE": true,
	"END": true, "IS": true, "NULL": true, "IN": true, "LIKE": true,
	"BETWEEN": true, "EXISTS": true,
}
