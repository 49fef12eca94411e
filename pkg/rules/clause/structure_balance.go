package clause

import (
	"fmt"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/types"
)

// StructureBalanceAdvisor reports empty input and unbalanced delimiters.
type StructureBalanceAdvisor struct{}

// Check inspects the pre-computed balance result for the statement.
func (*StructureBalanceAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	balance := checkCtx.Balance

	if balance.Empty {
		return []*types.Diagnostic{
			newDiagnostic(checkCtx, types.Severity_ERROR, types.EmptyQuery,
				"statement is empty or contains only comments"),
		}, nil
	}

	var diagnostics []*types.Diagnostic
	if balance.MissingClose > 0 {
		diagnostics = append(diagnostics,
			newDiagnostic(checkCtx, types.Severity_ERROR, types.MissingClosingParen,
				fmt.Sprintf("%d opening parenthesis(es) never closed", balance.MissingClose)))
	}
	if balance.ExtraClose > 0 {
		diagnostics = append(diagnostics,
			newDiagnostic(checkCtx, types.Severity_ERROR, types.ExtraClosingParen,
				fmt.Sprintf("%d closing parenthesis(es) with no matching opener", balance.ExtraClose)))
	}
	if balance.UnclosedQuote != 0 {
		diagnostics = append(diagnostics,
			newDiagnostic(checkCtx, types.Severity_ERROR, types.UnclosedQuote,
				fmt.Sprintf("quote %q opened but never closed", balance.UnclosedQuote)))
	}
	if balance.UnterminatedComment {
		diagnostics = append(diagnostics,
			newDiagnostic(checkCtx, types.Severity_ERROR, types.UnterminatedComment,
				"block comment opened but never closed"))
	}
	return diagnostics, nil
}
