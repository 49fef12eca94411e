package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// InsertRequireValuesAdvisor requires a VALUES list or a source SELECT in
// INSERT statements.
type InsertRequireValuesAdvisor struct{}

// Check flags INSERT statements that supply no rows.
func (*InsertRequireValuesAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	if checkCtx.Extraction.Statement != types.Statement_INSERT {
		return nil, nil
	}
	tokens := checkCtx.Source.Tokens
	if extractor.HasKeywordAnyDepth(tokens, "VALUES") ||
		extractor.HasKeywordAnyDepth(tokens, "SELECT") ||
		extractor.HasKeyword(tokens, "SET") { // MySQL INSERT ... SET form
		return nil, nil
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_ERROR, types.InsertMissingValues,
			"INSERT statement has no VALUES list or source SELECT"),
	}, nil
}
