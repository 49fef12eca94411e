package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// GroupByRequireAggregateAdvisor flags GROUP BY queries whose projection
// contains no aggregate function. Grouping without aggregation usually means
// the author wanted DISTINCT or forgot the aggregate.
type GroupByRequireAggregateAdvisor struct{}

// Check scans the projection for a known aggregate call.
func (*GroupByRequireAggregateAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	tokens := checkCtx.Source.Tokens
	if checkCtx.Extraction.Statement != types.Statement_SELECT ||
		!extractor.HasKeyword(tokens, "GROUP") {
		return nil, nil
	}

	start, end, ok := extractor.ClauseRegion(tokens, "SELECT")
	if !ok {
		return nil, nil
	}
	for k := start; k < end-1; k++ {
		if tokens[k].Kind == extractor.TokenIdent &&
			aggregateFunctions[tokens[k].Upper()] &&
			tokens[k+1].IsSymbol("(") {
			return nil, nil
		}
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_WARNING, types.GroupByNoAggregate,
			"GROUP BY used but the projection contains no aggregate function"),
	}, nil
}
