package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// UpdateRequireSetAdvisor requires a SET clause in UPDATE statements.
type UpdateRequireSetAdvisor struct{}

// Check flags UPDATE statements with no SET clause.
func (*UpdateRequireSetAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	if checkCtx.Extraction.Statement != types.Statement_UPDATE {
		return nil, nil
	}
	if extractor.HasKeyword(checkCtx.Source.Tokens, "SET") {
		return nil, nil
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_ERROR, types.UpdateMissingSet,
			"UPDATE statement has no SET clause"),
	}, nil
}
