package perf

import (
	"fmt"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/types"
)

// defaultMaxSubqueryDepth is the nesting depth beyond which a note fires.
const defaultMaxSubqueryDepth = 2

// SubqueryDepthAdvisor flags deeply nested subqueries. The limit is
// configurable through the rule's number payload.
type SubqueryDepthAdvisor struct{}

// Check compares the deepest nested SELECT against the configured limit.
func (*SubqueryDepthAdvisor) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
	limit := defaultMaxSubqueryDepth
	if checkCtx.Rule != nil && checkCtx.Rule.Payload != nil {
		if payload, err := advisor.UnmarshalNumberTypeRulePayload(checkCtx.Rule.Payload); err == nil && payload.Number > 0 {
			limit = payload.Number
		}
	}

	depth := extractor.MaxSelectDepth(checkCtx.Source.Tokens)
	if depth <= limit {
		return nil, nil
	}
	return []*types.Diagnostic{
		{
			Severity: advisor.SeverityForRule(checkCtx.Rule, types.Severity_PERFORMANCE),
			Code:     types.SubqueryTooDeep,
			Message:  fmt.Sprintf("subqueries nest %d levels deep (limit %d); consider CTEs or joins", depth, limit),
		},
	}, nil
}
