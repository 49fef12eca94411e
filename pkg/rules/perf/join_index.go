package perf

import (
	"fmt"
	"strings"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// JoinIndexAdvisor checks both sides of each ON equality for index
// coverage. An unindexed join column turns a lookup join into repeated
// scans.
type JoinIndexAdvisor struct{}

// Check scans ON conditions for the qualified-equality token shape and
// inspects each side's table.
func (*JoinIndexAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	model := checkCtx.Schema
	if model == nil {
		return nil, nil
	}
	tokens := checkCtx.Source.Tokens

	var diagnostics []*types.Diagnostic
	seen := make(map[string]bool)
	for i, tok := range tokens {
		if !tok.IsKeyword("ON") {
			continue
		}
		// expect qualifier . column = qualifier . column
		if i+7 >= len(tokens) {
			continue
		}
		q := tokens[i+1 : i+8]
		if q[0].Kind != extractor.TokenIdent || !q[1].IsSymbol(".") || q[2].Kind != extractor.TokenIdent ||
			!q[3].IsSymbol("=") ||
			q[4].Kind != extractor.TokenIdent || !q[5].IsSymbol(".") || q[6].Kind != extractor.TokenIdent {
			continue
		}

		sides := [][2]string{
			{resolveQualifier(checkCtx, q[0].Text), q[2].Text},
			{resolveQualifier(checkCtx, q[4].Text), q[6].Text},
		}
		for _, side := range sides {
			table := model.Table(side[0])
			if table == nil || table.Column(side[1]) == nil || table.HasIndexOn(side[1]) {
				continue
			}
			key := strings.ToLower(side[0] + "." + side[1])
			if seen[key] {
				continue
			}
			seen[key] = true
			diagnostics = append(diagnostics, &types.Diagnostic{
				Severity:         advisor.SeverityForRule(checkCtx.Rule, types.Severity_PERFORMANCE),
				Code:             types.JoinNotIndexed,
				Message:          fmt.Sprintf("join condition on %q.%q is not covered by an index", side[0], side[1]),
				RelatedReference: side[0] + "." + side[1],
			})
		}
	}
	return diagnostics, nil
}

// resolveQualifier maps an alias to its table name when one was declared.
func resolveQualifier(checkCtx advisor.Context, qualifier string) string {
	if target, ok := checkCtx.Extraction.Aliases[strings.ToLower(qualifier)]; ok {
		return target
	}
	return qualifier
}
