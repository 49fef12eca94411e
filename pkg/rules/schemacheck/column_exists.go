package schemacheck

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/schema"
	"github.com/sqlward/sqlward/pkg/similarity"
	"github.com/sqlward/sqlward/pkg/types"
)

// maxCrossTableSuggestions caps how many other-table candidates one
// diagnostic offers.
const maxCrossTableSuggestions = 5

// ColumnExistsAdvisor checks that every referenced column exists on its
// table. A qualified reference is checked against its own table; a bare
// WHERE/SET column is checked against every table the statement references.
type ColumnExistsAdvisor struct{}

// Check resolves each extracted column reference against the schema.
func (*ColumnExistsAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	model := checkCtx.Schema
	if model == nil {
		return nil, nil
	}

	var diagnostics []*types.Diagnostic
	for _, col := range checkCtx.Extraction.Columns {
		table := model.Table(col.Qualifier)
		if table == nil {
			// the table rule already reported the unknown qualifier
			continue
		}
		if table.Column(col.Name) != nil {
			continue
		}
		diagnostics = append(diagnostics, diagnoseColumn(checkCtx, col, table))
	}

	// tables the statement references and the schema knows about
	var known []*schema.Table
	for _, ref := range checkCtx.Extraction.Tables {
		if t := model.Table(ref.Name); t != nil {
			known = append(known, t)
		}
	}
	if len(known) == 0 {
		return diagnostics, nil
	}

	for _, col := range checkCtx.Extraction.BareColumns {
		found := false
		for _, t := range known {
			if t.Column(col.Name) != nil {
				found = true
				break
			}
		}
		if found {
			continue
		}
		diagnostics = append(diagnostics, diagnoseBareColumn(checkCtx, col, known))
	}
	return diagnostics, nil
}

// diagnoseColumn reports a qualified column missing from its table, looking
// first for close names on the same table and then for the column elsewhere.
func diagnoseColumn(checkCtx advisor.Context, col extractor.ColumnRef, table *schema.Table) *types.Diagnostic {
	reference := table.Name + "." + col.Name
	d := &types.Diagnostic{
		Severity:         advisor.SeverityForRule(checkCtx.Rule, types.Severity_ERROR),
		Code:             types.ColumnNotFound,
		Message:          fmt.Sprintf("column %q does not exist on table %q", col.Name, table.Name),
		RelatedReference: reference,
		Span:             &types.Span{Start: col.Span.Start, End: col.Span.End},
	}

	matches := checkCtx.Matcher.SimilarNamesWithRetry(
		col.Name, table.ColumnNames(),
		checkCtx.Thresholds.Column, checkCtx.Thresholds.Retry)
	if len(matches) > 0 {
		d.Suggestion = formatSuggestions(matches)
		return d
	}

	// exact name on another table beats a fuzzy cross-table match
	if owners := checkCtx.Schema.TablesWithColumn(col.Name); len(owners) > 0 {
		d.Code = types.ColumnWrongTable
		d.Suggestion = "column exists on " + joinTableColumns(owners, col.Name)
		return d
	}

	if cross := crossTableMatches(checkCtx, col.Name, table); cross != "" {
		d.Suggestion = "similar columns elsewhere: " + cross
	}
	return d
}

// diagnoseBareColumn reports an unqualified column found on none of the
// statement's tables.
func diagnoseBareColumn(checkCtx advisor.Context, col extractor.ColumnRef, known []*schema.Table) *types.Diagnostic {
	d := &types.Diagnostic{
		Severity:         advisor.SeverityForRule(checkCtx.Rule, types.Severity_ERROR),
		Code:             types.ColumnNotFound,
		Message:          fmt.Sprintf("column %q does not exist on any referenced table", col.Name),
		RelatedReference: col.Name,
		Span:             &types.Span{Start: col.Span.Start, End: col.Span.End},
	}

	var candidates []string
	owner := make(map[string]string)
	for _, t := range known {
		for _, name := range t.ColumnNames() {
			candidates = append(candidates, name)
			if _, dup := owner[strings.ToLower(name)]; !dup {
				owner[strings.ToLower(name)] = t.Name
			}
		}
	}
	matches := checkCtx.Matcher.SimilarNamesWithRetry(
		col.Name, candidates,
		checkCtx.Thresholds.Column, checkCtx.Thresholds.Retry)
	if len(matches) > 0 {
		if len(known) > 1 {
			// annotate with the owning table when it is ambiguous
			for i := range matches {
				if t, ok := owner[strings.ToLower(matches[i].Name)]; ok {
					matches[i].Name = t + "." + matches[i].Name
				}
			}
		}
		d.Suggestion = formatSuggestions(matches)
		return d
	}

	if owners := checkCtx.Schema.TablesWithColumn(col.Name); len(owners) > 0 {
		d.Code = types.ColumnWrongTable
		d.Suggestion = "column exists on " + joinTableColumns(owners, col.Name)
	}
	return d
}

// crossTableMatches searches every other table's columns at the stricter
// cross-table threshold, annotating each match with its owning table.
func crossTableMatches(checkCtx advisor.Context, name string, exclude *schema.Table) string {
	var annotated []similarity.Match
	for _, t := range checkCtx.Schema.Tables {
		if t == exclude {
			continue
		}
		for _, m := range checkCtx.Matcher.SimilarNames(name, t.ColumnNames(), checkCtx.Thresholds.CrossTable) {
			annotated = append(annotated, similarity.Match{
				Name:  t.Name + "." + m.Name,
				Score: m.Score,
			})
		}
	}
	if len(annotated) == 0 {
		return ""
	}
	// best matches first, regardless of table declaration order
	sort.SliceStable(annotated, func(i, j int) bool {
		return annotated[i].Score > annotated[j].Score
	})
	if len(annotated) > maxCrossTableSuggestions {
		annotated = annotated[:maxCrossTableSuggestions]
	}
	names := make([]string, len(annotated))
	for i, m := range annotated {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}

// joinTableColumns renders table.column for each owning table.
func joinTableColumns(owners []*schema.Table, column string) string {
	names := make([]string, 0, len(owners))
	for _, t := range owners {
		names = append(names, t.Name+"."+column)
	}
	if len(names) > maxCrossTableSuggestions {
		names = names[:maxCrossTableSuggestions]
	}
	return strings.Join(names, ", ")
}
