package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// InsertRequireIntoAdvisor requires an INTO clause in INSERT statements.
type InsertRequireIntoAdvisor struct{}

// Check flags INSERT statements missing the INTO keyword.
func (*InsertRequireIntoAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	if checkCtx.Extraction.Statement != types.Statement_INSERT {
		return nil, nil
	}
	if extractor.HasKeyword(checkCtx.Source.Tokens, "INTO") {
		return nil, nil
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_ERROR, types.InsertMissingInto,
			"INSERT statement has no INTO clause"),
	}, nil
}
