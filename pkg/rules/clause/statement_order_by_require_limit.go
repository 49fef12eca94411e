package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// OrderByRequireLimitAdvisor suggests a LIMIT on ordered queries. Sorting an
// unbounded result set is a common source of slow generated SQL.
type OrderByRequireLimitAdvisor struct{}

// Check looks for a top-level ORDER with no LIMIT or FETCH.
func (*OrderByRequireLimitAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	tokens := checkCtx.Source.Tokens
	if checkCtx.Extraction.Statement != types.Statement_SELECT ||
		!extractor.HasKeyword(tokens, "ORDER") {
		return nil, nil
	}
	if extractor.HasKeyword(tokens, "LIMIT") || extractor.HasKeyword(tokens, "FETCH") {
		return nil, nil
	}
	return []*types.Diagnostic{
		newDiagnostic(checkCtx, types.Severity_SUGGESTION, types.OrderByWithoutLimit,
			"ORDER BY without LIMIT sorts the entire result set"),
	}, nil
}
