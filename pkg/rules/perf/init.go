package perf

import (
	"github.com/sqlward/sqlward/pkg/advisor"
)

// init registers the performance advisories with the advisor system.
func init() {
	advisor.Register(advisor.RulePerfPredicateIndex, &PredicateIndexAdvisor{})
	advisor.Register(advisor.RulePerfJoinIndex, &JoinIndexAdvisor{})
	advisor.Register(advisor.RulePerfCartesianJoin, &CartesianJoinAdvisor{})
	advisor.Register(advisor.RulePerfSubqueryDepth, &SubqueryDepthAdvisor{})
	advisor.Register(advisor.RulePerfUnionAll, &UnionAllAdvisor{})
}
