package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// SelectRequireFromAdvisor requires a FROM clause in SELECT statements.
type SelectRequireFromAdvisor struct{}

// Check flags top-level SELECT statements with no FROM clause.
func (*SelectRequireFromAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	if checkCtx.Extraction.Statement != types.Statement_SELECT {
		return nil, nil
	}
	if extractor.HasKeyword(checkCtx.Source.Tokens, "FROM") {
		return nil, nil
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_ERROR, types.SelectMissingFrom,
			"SELECT statement has no FROM clause"),
	}, nil
}
