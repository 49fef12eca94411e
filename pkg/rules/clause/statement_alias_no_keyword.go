package clause

import (
	"fmt"
	"strings"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/types"
)

// AliasNoKeywordAdvisor flags table aliases that shadow reserved keywords.
type AliasNoKeywordAdvisor struct{}

// Check compares each extracted alias against the risky keyword list.
func (*AliasNoKeywordAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	var diagnostics []*types.Diagnostic
	for _, table := range checkCtx.Extraction.Tables {
		if table.Alias == "" || !riskyAliasKeywords[strings.ToUpper(table.Alias)] {
			continue
		}
		diagnostics = append(diagnostics, withSpan(
			newDiagnostic(checkCtx, types.Severity_WARNING, types.AliasIsKeyword,
				fmt.Sprintf("alias %q shadows a reserved keyword", table.Alias)),
			table.Span))
	}
	return diagnostics, nil
}
