package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/types"
)

// WhereInSubqueryAdvisor suggests rewriting IN (SELECT ...) predicates,
// which many planners execute per outer row.
type WhereInSubqueryAdvisor struct{}

// Check looks for the IN ( SELECT token shape anywhere in the statement.
func (*WhereInSubqueryAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	tokens := checkCtx.Source.Tokens
	for i := 0; i+2 < len(tokens); i++ {
		if tokens[i].IsKeyword("IN") && tokens[i+1].IsSymbol("(") &&
			tokens[i+2].IsKeyword("SELECT") {
			return []*types.Diagnostic{
				withSpan(newDiagnostic(checkCtx, types.Severity_SUGGESTION, types.InSubquery,
					"IN with a subquery; consider a JOIN or EXISTS"),
					types.Span{Start: tokens[i].Start, End: tokens[i+2].End}),
			}, nil
		}
	}
	return nil, nil
}
