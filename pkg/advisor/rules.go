package advisor

// Built-in rule types, grouped the way they run: structure first, then
// statement shape, then schema checks, then performance advisories.
const (
	// RuleStructureBalance checks delimiter balance and non-empty input.
	RuleStructureBalance Type = "structure.balance"

	// RuleSelectRequireFrom requires a FROM clause in SELECT statements.
	RuleSelectRequireFrom Type = "statement.select.require-from"
	// RuleInsertRequireInto requires an INTO clause in INSERT statements.
	RuleInsertRequireInto Type = "statement.insert.require-into"
	// RuleInsertRequireValues requires VALUES or a source SELECT in INSERT statements.
	RuleInsertRequireValues Type = "statement.insert.require-values"
	// RuleInsertMustSpecifyColumn requires an explicit column list in INSERT statements.
	RuleInsertMustSpecifyColumn Type = "statement.insert.must-specify-column"
	// RuleUpdateRequireSet requires a SET clause in UPDATE statements.
	RuleUpdateRequireSet Type = "statement.update.require-set"
	// RuleDeleteRequireFrom requires a FROM clause in DELETE statements.
	RuleDeleteRequireFrom Type = "statement.delete.require-from"
	// RuleWhereRequireUpdateDelete flags UPDATE/DELETE statements with no WHERE clause.
	RuleWhereRequireUpdateDelete Type = "statement.where.require.update-delete"
	// RuleWhereNoComparison flags WHERE clauses containing no comparison at all.
	RuleWhereNoComparison Type = "statement.where.no-comparison"
	// RuleSelectNoSelectAll flags SELECT * projections.
	RuleSelectNoSelectAll Type = "statement.select.no-select-all"
	// RuleNoLeadingWildcardLike flags LIKE patterns starting with a wildcard.
	RuleNoLeadingWildcardLike Type = "statement.where.no-leading-wildcard-like"
	// RuleGroupByRequireAggregate flags GROUP BY with no aggregate in the projection.
	RuleGroupByRequireAggregate Type = "statement.group-by.require-aggregate"
	// RuleOrderByRequireLimit flags ORDER BY with no LIMIT.
	RuleOrderByRequireLimit Type = "statement.order-by.require-limit"
	// RuleWhereInSubquery flags IN (SELECT ...) predicates.
	RuleWhereInSubquery Type = "statement.where.in-subquery"
	// RuleSelectBareDistinct flags SELECT DISTINCT over the whole projection.
	RuleSelectBareDistinct Type = "statement.select.bare-distinct"
	// RuleAliasNoDuplicate rejects the same alias bound to two tables.
	RuleAliasNoDuplicate Type = "statement.alias.no-duplicate"
	// RuleAliasNoKeyword flags aliases that shadow reserved keywords.
	RuleAliasNoKeyword Type = "statement.alias.no-keyword"
	// RuleInjectionSmell flags textual patterns typical of injection probes.
	RuleInjectionSmell Type = "statement.injection-smell"
	// RuleJoinRequireCondition flags JOINs with no ON or USING clause.
	RuleJoinRequireCondition Type = "statement.join.require-condition"

	// RuleSchemaTableExists checks that referenced tables exist.
	RuleSchemaTableExists Type = "schema.table-exists"
	// RuleSchemaColumnExists checks that referenced columns exist.
	RuleSchemaColumnExists Type = "schema.column-exists"

	// RulePerfPredicateIndex checks index coverage of WHERE predicates.
	RulePerfPredicateIndex Type = "performance.predicate-index"
	// RulePerfJoinIndex checks index coverage of join conditions.
	RulePerfJoinIndex Type = "performance.join-index"
	// RulePerfCartesianJoin flags multi-table FROM lists joined with no condition.
	RulePerfCartesianJoin Type = "performance.cartesian-join"
	// RulePerfSubqueryDepth flags deep subquery nesting.
	RulePerfSubqueryDepth Type = "performance.subquery-depth"
	// RulePerfUnionAll suggests UNION ALL where UNION's deduplication may be unneeded.
	RulePerfUnionAll Type = "performance.union-all"
)
