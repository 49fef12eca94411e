package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/types"
)

// SelectBareDistinctAdvisor flags SELECT DISTINCT over the whole projection.
// Deduplicating every row is often a patch over a join that fans out.
type SelectBareDistinctAdvisor struct{}

// Check flags DISTINCT directly after SELECT at the top level.
func (*SelectBareDistinctAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	tokens := checkCtx.Source.Tokens
	if checkCtx.Extraction.Statement != types.Statement_SELECT || len(tokens) < 2 {
		return nil, nil
	}
	if !tokens[1].IsKeyword("DISTINCT") {
		return nil, nil
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_SUGGESTION, types.BareDistinct,
			"SELECT DISTINCT deduplicates every row; check whether the join fans out instead"),
	}, nil
}
