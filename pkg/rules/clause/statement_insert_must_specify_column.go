package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/types"
)

// InsertMustSpecifyColumnAdvisor requires an explicit column list in INSERT
// statements. Positional inserts break silently when the table gains a
// column.
type InsertMustSpecifyColumnAdvisor struct{}

// Check flags INSERT ... VALUES statements with no column list.
func (*InsertMustSpecifyColumnAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	ex := checkCtx.Extraction
	if ex.Statement != types.Statement_INSERT || len(ex.Tables) == 0 {
		return nil, nil
	}

	// The column list, when present, is the parenthesized group right
	// after the target table reference.
	tableEnd := ex.Tables[0].Span.End
	for _, tok := range checkCtx.Source.Tokens {
		if tok.Start < tableEnd {
			continue
		}
		if tok.IsSymbol("(") {
			return nil, nil
		}
		if tok.IsKeyword("VALUES") || tok.IsKeyword("SELECT") || tok.IsKeyword("SET") {
			break
		}
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_WARNING, types.InsertNoColumnList,
			"INSERT statement does not specify a column list"),
	}, nil
}
