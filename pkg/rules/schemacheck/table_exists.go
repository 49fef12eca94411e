// Package schemacheck implements the rules that validate extracted
// references against a schema snapshot. All rules here skip silently when no
// schema was provided.
package schemacheck

import (
	"fmt"
	"strings"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/similarity"
	"github.com/sqlward/sqlward/pkg/types"
)

// maxSuggestions caps how many alternative names one diagnostic offers.
const maxSuggestions = 3

// TableExistsAdvisor checks that every referenced table exists in the
// schema, suggesting close names when one does not.
type TableExistsAdvisor struct{}

// Check resolves each extracted table reference against the schema.
func (*TableExistsAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	model := checkCtx.Schema
	if model == nil {
		return nil, nil
	}

	var diagnostics []*types.Diagnostic
	for _, table := range checkCtx.Extraction.Tables {
		if model.Table(table.Name) != nil {
			continue
		}
		matches := checkCtx.Matcher.SimilarNamesWithRetry(
			table.Name, model.TableNames(),
			checkCtx.Thresholds.Table, checkCtx.Thresholds.Retry)

		d := &types.Diagnostic{
			Severity:         advisor.SeverityForRule(checkCtx.Rule, types.Severity_ERROR),
			Code:             types.TableNotFound,
			Message:          fmt.Sprintf("table %q does not exist in the schema", table.Name),
			RelatedReference: table.Name,
			Suggestion:       formatSuggestions(matches),
			Span:             &types.Span{Start: table.Span.Start, End: table.Span.End},
		}
		diagnostics = append(diagnostics, d)
	}
	return diagnostics, nil
}

// formatSuggestions joins the best matches into a "did you mean" string.
func formatSuggestions(matches []similarity.Match) string {
	if len(matches) == 0 {
		return ""
	}
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	return "did you mean " + strings.Join(names, ", ") + "?"
}
