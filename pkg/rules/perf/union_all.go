package perf

import (
	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/types"
)

// UnionAllAdvisor suggests UNION ALL where plain UNION's sort-and-dedup may
// be unnecessary.
type UnionAllAdvisor struct{}

// Check looks for top-level UNION keywords not followed by ALL.
func (*UnionAllAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	tokens := checkCtx.Source.Tokens
	if len(tokens) == 0 {
		return nil, nil
	}
	base := tokens[0].Depth
	for i, tok := range tokens {
		if tok.Depth != base || !tok.IsKeyword("UNION") {
			continue
		}
		if i+1 < len(tokens) && tokens[i+1].IsKeyword("ALL") {
			continue
		}
		return []*types.Diagnostic{
			{
				Severity: advisor.SeverityForRule(checkCtx.Rule, types.Severity_SUGGESTION),
				Code:     types.UnionWithoutAll,
				Message:  "UNION deduplicates the combined result; use UNION ALL when duplicates cannot occur",
				Span:     &types.Span{Start: tok.Start, End: tok.End},
			},
		}, nil
	}
	return nil, nil
}
