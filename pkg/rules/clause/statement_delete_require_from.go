package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// DeleteRequireFromAdvisor requires a FROM clause in DELETE statements.
type DeleteRequireFromAdvisor struct{}

// Check flags DELETE statements with no FROM clause.
func (*DeleteRequireFromAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	if checkCtx.Extraction.Statement != types.Statement_DELETE {
		return nil, nil
	}
	if extractor.HasKeyword(checkCtx.Source.Tokens, "FROM") {
		return nil, nil
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_ERROR, types.DeleteMissingFrom,
			"DELETE statement has no FROM clause"),
	}, nil
}
