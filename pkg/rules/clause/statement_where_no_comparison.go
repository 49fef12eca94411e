package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

var comparisonSymbols = map[string]bool{
	"=": true, ">": true, "<": true, ">=": true, "<=": true,
	"<>": true, "!=": true,
}

var comparisonKeywords = map[string]bool{
	"LIKE": true, "IN": true, "BETWEEN": true, "IS": true, "EXISTS": true,
}

// WhereNoComparisonAdvisor flags WHERE clauses that contain no comparison at
// all, which usually means a mangled condition.
type WhereNoComparisonAdvisor struct{}

// Check inspects the top-level WHERE region for comparison operators.
func (*WhereNoComparisonAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	tokens := checkCtx.Source.Tokens
	start, end, ok := extractor.ClauseRegion(tokens, "WHERE")
	if !ok {
		return nil, nil
	}
	for k := start; k < end; k++ {
		tok := tokens[k]
		if tok.Kind == extractor.TokenSymbol && comparisonSymbols[tok.Text] {
			return nil, nil
		}
		if tok.Kind == extractor.TokenIdent && comparisonKeywords[tok.Upper()] {
			return nil, nil
		}
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_WARNING, types.WhereNoComparison,
			"WHERE clause contains no comparison"),
	}, nil
}
