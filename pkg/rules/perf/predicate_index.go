// Package perf implements the performance advisories. Findings here never
// invalidate a statement; they flag shapes that are likely to be slow
// against the provided schema.
package perf

import (
	"fmt"
	"strings"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/schema"
	"github.com/sqlward/sqlward/pkg/types"
)

// PredicateIndexAdvisor checks whether WHERE predicate columns are covered
// by an index. Several unindexed predicates on the same table collapse into
// one compound-index suggestion instead of a note per column.
type PredicateIndexAdvisor struct{}

// Check resolves each WHERE predicate column and inspects its table's
// indexes.
func (*PredicateIndexAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	model := checkCtx.Schema
	if model == nil {
		return nil, nil
	}

	// unindexed predicate columns grouped by table, in reference order
	unindexed := make(map[string][]string)
	var tableOrder []string
	note := func(table *schema.Table, column string) {
		if table.Column(column) == nil || table.HasIndexOn(column) {
			return
		}
		key := strings.ToLower(table.Name)
		for _, existing := range unindexed[key] {
			if strings.EqualFold(existing, column) {
				return
			}
		}
		if len(unindexed[key]) == 0 {
			tableOrder = append(tableOrder, table.Name)
		}
		unindexed[key] = append(unindexed[key], column)
	}

	whereStart, whereEnd, hasWhere := whereSpan(checkCtx.Source)
	for _, col := range checkCtx.Extraction.Columns {
		if !hasWhere || col.Span.Start < whereStart || col.Span.End > whereEnd {
			continue
		}
		if t := model.Table(col.Qualifier); t != nil {
			note(t, col.Name)
		}
	}
	for _, col := range checkCtx.Extraction.BareColumns {
		if col.Clause != "WHERE" {
			continue
		}
		for _, ref := range checkCtx.Extraction.Tables {
			if t := model.Table(ref.Name); t != nil && t.Column(col.Name) != nil {
				note(t, col.Name)
				break
			}
		}
	}

	var diagnostics []*types.Diagnostic
	for _, tableName := range tableOrder {
		columns := unindexed[strings.ToLower(tableName)]
		table := model.Table(tableName)
		if len(columns) >= 2 {
			if table.IndexCovering(columns) != nil {
				continue
			}
			diagnostics = append(diagnostics, &types.Diagnostic{
				Severity:         advisor.SeverityForRule(checkCtx.Rule, types.Severity_SUGGESTION),
				Code:             types.CompoundIndexHint,
				Message:          fmt.Sprintf("predicates on %q filter %d unindexed columns; a compound index on (%s) would cover them", tableName, len(columns), strings.Join(columns, ", ")),
				RelatedReference: tableName,
			})
			continue
		}
		diagnostics = append(diagnostics, &types.Diagnostic{
			Severity:         advisor.SeverityForRule(checkCtx.Rule, types.Severity_PERFORMANCE),
			Code:             types.PredicateNotIndexed,
			Message:          fmt.Sprintf("predicate on %q.%q is not covered by an index", tableName, columns[0]),
			RelatedReference: tableName + "." + columns[0],
		})
	}
	return diagnostics, nil
}

// whereSpan returns the byte range of the top-level WHERE clause.
func whereSpan(src *extractor.Source) (start, end int, ok bool) {
	s, e, ok := extractor.ClauseRegion(src.Tokens, "WHERE")
	if !ok || s >= e {
		return 0, 0, false
	}
	return src.Tokens[s].Start, src.Tokens[e-1].End, true
}
