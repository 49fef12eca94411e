package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// WhereRequireUpdateDeleteAdvisor flags UPDATE and DELETE statements with no
// WHERE clause. Such statements touch every row, which is rarely what
// generated SQL intends.
type WhereRequireUpdateDeleteAdvisor struct{}

// Check warns about unconditional UPDATE/DELETE statements.
func (*WhereRequireUpdateDeleteAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	var code int32
	switch checkCtx.Extraction.Statement {
	case types.Statement_UPDATE:
		code = types.UpdateWithoutWhere
	case types.Statement_DELETE:
		code = types.DeleteWithoutWhere
	default:
		return nil, nil
	}
	if extractor.HasKeyword(checkCtx.Source.Tokens, "WHERE") {
		return nil, nil
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_WARNING, code,
			checkCtx.Extraction.Statement.String()+" statement has no WHERE clause and would affect all rows"),
	}, nil
}
