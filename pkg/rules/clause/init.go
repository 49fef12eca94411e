package clause

import (
	"github.com/sqlward/sqlward/pkg/advisor"
)

// init registers the structural and statement-shape rules with the advisor
// system.
func init() {
	advisor.Register(advisor.RuleStructureBalance, &StructureBalanceAdvisor{})

	advisor.Register(advisor.RuleSelectRequireFrom, &SelectRequireFromAdvisor{})
	advisor.Register(advisor.RuleInsertRequireInto, &InsertRequireIntoAdvisor{})
	advisor.Register(advisor.RuleInsertRequireValues, &InsertRequireValuesAdvisor{})
	advisor.Register(advisor.RuleInsertMustSpecifyColumn, &InsertMustSpecifyColumnAdvisor{})
	advisor.Register(advisor.RuleUpdateRequireSet, &UpdateRequireSetAdvisor{})
	advisor.Register(advisor.RuleDeleteRequireFrom, &DeleteRequireFromAdvisor{})
	advisor.Register(advisor.RuleWhereRequireUpdateDelete, &WhereRequireUpdateDeleteAdvisor{})
	advisor.Register(advisor.RuleWhereNoComparison, &WhereNoComparisonAdvisor{})
	advisor.Register(advisor.RuleSelectNoSelectAll, &SelectNoSelectAllAdvisor{})
	advisor.Register(advisor.RuleNoLeadingWildcardLike, &NoLeadingWildcardLikeAdvisor{})
	advisor.Register(advisor.RuleGroupByRequireAggregate, &GroupByRequireAggregateAdvisor{})
	advisor.Register(advisor.RuleOrderByRequireLimit, &OrderByRequireLimitAdvisor{})
	advisor.Register(advisor.RuleWhereInSubquery, &WhereInSubqueryAdvisor{})
	advisor.Register(advisor.RuleSelectBareDistinct, &SelectBareDistinctAdvisor{})
	advisor.Register(advisor.RuleAliasNoDuplicate, &AliasNoDuplicateAdvisor{})
	advisor.Register(advisor.RuleAliasNoKeyword, &AliasNoKeywordAdvisor{})
	advisor.Register(advisor.RuleInjectionSmell, &InjectionSmellAdvisor{})
	advisor.Register(advisor.RuleJoinRequireCondition, &JoinRequireConditionAdvisor{})
}
