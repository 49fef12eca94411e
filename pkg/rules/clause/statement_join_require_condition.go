package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// joinWindowBoundaries end the search for a join's ON/USING clause.
var joinWindowBoundaries = map[string]bool{
	"JOIN": true, "WHERE": true, "GROUP": true, "ORDER": true,
	"HAVING": true, "LIMIT": true, "OFFSET": true, "UNION": true,
	"RETURNING": true,
}

// JoinRequireConditionAdvisor flags JOINs with no ON or USING clause.
// CROSS and NATURAL joins are exempt: the first is explicit about producing
// a product, the second carries its condition implicitly.
type JoinRequireConditionAdvisor struct{}

// Check examines each top-level JOIN keyword and the tokens up to the next
// join or clause boundary.
func (*JoinRequireConditionAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	tokens := checkCtx.Source.Tokens
	if len(tokens) == 0 {
		return nil, nil
	}
	base := tokens[0].Depth

	var diagnostics []*types.Diagnostic
	for i, tok := range tokens {
		if tok.Depth != base || !tok.IsKeyword("JOIN") {
			continue
		}
		if i > 0 && (tokens[i-1].IsKeyword("CROSS") || tokens[i-1].IsKeyword("NATURAL")) {
			continue
		}

		conditioned := false
		for j := i + 1; j < len(tokens); j++ {
			t := tokens[j]
			if t.Depth != base {
				continue
			}
			if t.IsKeyword("ON") || t.IsKeyword("USING") {
				conditioned = true
				break
			}
			if t.Kind == extractor.TokenIdent && joinWindowBoundaries[t.Upper()] {
				break
			}
		}
		if !conditioned {
			diagnostics = append(diagnostics, withSpan(
				newDiagnostic(checkCtx, types.Severity_WARNING, types.JoinWithoutCondition,
					"JOIN has no ON or USING clause"),
				types.Span{Start: tok.Start, End: tok.End}))
		}
	}
	return diagnostics, nil
}
