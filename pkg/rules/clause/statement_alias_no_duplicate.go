package clause

import (
	"fmt"
	"strings"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/types"
)

// AliasNoDuplicateAdvisor rejects the same alias bound to two different
// tables in one statement.
type AliasNoDuplicateAdvisor struct{}

// Check counts alias occurrences across the extracted table references.
func (*AliasNoDuplicateAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	firstOwner := make(map[string]string)
	var diagnostics []*types.Diagnostic
	for _, table := range checkCtx.Extraction.Tables {
		if table.Alias == "" {
			continue
		}
		key := strings.ToLower(table.Alias)
		owner, seen := firstOwner[key]
		if !seen {
			firstOwner[key] = table.Name
			continue
		}
		if strings.EqualFold(owner, table.Name) {
			continue
		}
		diagnostics = append(diagnostics, withSpan(
			newDiagnostic(checkCtx, types.Severity_ERROR, types.DuplicateAlias,
				fmt.Sprintf("alias %q is bound to both %q and %q", table.Alias, owner, table.Name)),
			table.Span))
	}
	return diagnostics, nil
}
