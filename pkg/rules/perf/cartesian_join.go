package perf

import (
	"fmt"
	"strings"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// CartesianJoinAdvisor flags comma-style FROM lists whose WHERE clause never
// equates columns of two different tables. Without such an equality the
// result is a full product.
type CartesianJoinAdvisor struct{}

// Check counts comma-separated FROM entries and scans WHERE for a
// cross-table equality.
func (*CartesianJoinAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	tokens := checkCtx.Source.Tokens
	start, end, ok := extractor.ClauseRegion(tokens, "FROM")
	if !ok || start >= end {
		return nil, nil
	}

	base := tokens[start].Depth
	entries := 1
	for k := start; k < end; k++ {
		if tokens[k].Depth == base && tokens[k].IsSymbol(",") {
			entries++
		}
	}
	if entries < 2 {
		return nil, nil
	}

	if hasCrossTableEquality(checkCtx) {
		return nil, nil
	}
	return []*types.Diagnostic{
		{
			Severity: advisor.SeverityForRule(checkCtx.Rule, types.Severity_PERFORMANCE),
			Code:     types.CartesianJoin,
			Message:  fmt.Sprintf("%d tables joined by comma with no cross-table equality; this produces a Cartesian product", entries),
		},
	}, nil
}

// hasCrossTableEquality reports whether the WHERE clause equates columns of
// two different tables, resolving aliases first.
func hasCrossTableEquality(checkCtx advisor.Context) bool {
	tokens := checkCtx.Source.Tokens
	start, end, ok := extractor.ClauseRegion(tokens, "WHERE")
	if !ok {
		return false
	}
	for i := start; i+6 < end; i++ {
		q := tokens[i : i+7]
		if q[0].Kind != extractor.TokenIdent || !q[1].IsSymbol(".") || q[2].Kind != extractor.TokenIdent ||
			!q[3].IsSymbol("=") ||
			q[4].Kind != extractor.TokenIdent || !q[5].IsSymbol(".") || q[6].Kind != extractor.TokenIdent {
			continue
		}
		left := resolveQualifier(checkCtx, q[0].Text)
		right := resolveQualifier(checkCtx, q[4].Text)
		if !strings.EqualFold(left, right) {
			return true
		}
	}
	return false
}
