package clause

import (
	"strings"
	"testing"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/scanner"
	"github.com/sqlward/sqlward/pkg/similarity"
	"github.com/sqlward/sqlward/pkg/types"
	"github.com/stretchr/testify/require"
)

// runRule executes one registered rule against one statement with the rule
// configured at ERROR level.
func runRule(t *testing.T, ruleType advisor.Type, sql string) []*types.Diagnostic {
	t.Helper()
	src := extractor.NewSource(sql)
	checkCtx := advisor.Context{
		Source:     src,
		Extraction: extractor.Extract(src, 0),
		Balance:    scanner.Tokenizing{}.Scan(sql),
		Matcher:    similarity.NewCache(),
		Thresholds: types.DefaultThresholds(),
		Rule:       &types.RuleConfig{Type: string(ruleType), Level: types.RuleLevel_ERROR},
	}
	diagnostics, err := advisor.Check(ruleType, checkCtx)
	require.NoError(t, err)
	return diagnostics
}

func codes(diagnostics []*types.Diagnostic) []int32 {
	var out []int32
	for _, d := range diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func TestStructureBalance(t *testing.T) {
	cases := []struct {
		name string
		sql  string
		want []int32
	}{
		{"valid", "SELECT id FROM t", nil},
		{"empty", "", []int32{types.EmptyQuery}},
		{"comments only", "-- nothing\n/* here */", []int32{types.EmptyQuery}},
		{"missing close", "SELECT (1", []int32{types.MissingClosingParen}},
		{"extra close", "SELECT 1)", []int32{types.ExtraClosingParen}},
		{"unclosed quote", "SELECT 'abc", []int32{types.UnclosedQuote}},
		{"unterminated comment", "SELECT 1 /* oops", []int32{types.UnterminatedComment}},
		{"paren inside literal ok", "SELECT '(' FROM t", nil},
		{"several defects", "SELECT ('abc", []int32{types.MissingClosingParen, types.UnclosedQuote}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, codes(runRule(t, advisor.RuleStructureBalance, tc.sql)))
		})
	}
}

func TestStatementShapeRules(t *testing.T) {
	cases := []struct {
		name string
		rule advisor.Type
		sql  string
		want []int32
	}{
		{"select without from", advisor.RuleSelectRequireFrom,
			"SELECT 1 + 1", []int32{types.SelectMissingFrom}},
		{"select nested from does not count", advisor.RuleSelectRequireFrom,
			"SELECT (SELECT max(id) FROM t)", []int32{types.SelectMissingFrom}},
		{"select with from", advisor.RuleSelectRequireFrom,
			"SELECT id FROM t", nil},
		{"non-select ignored", advisor.RuleSelectRequireFrom,
			"UPDATE t SET a = 1", nil},

		{"insert without into", advisor.RuleInsertRequireInto,
			"INSERT users VALUES (1)", []int32{types.InsertMissingInto}},
		{"insert with into", advisor.RuleInsertRequireInto,
			"INSERT INTO users VALUES (1)", nil},

		{"insert without rows", advisor.RuleInsertRequireValues,
			"INSERT INTO users (id, name)", []int32{types.InsertMissingValues}},
		{"insert with values", advisor.RuleInsertRequireValues,
			"INSERT INTO users (id) VALUES (1)", nil},
		{"insert from select", advisor.RuleInsertRequireValues,
			"INSERT INTO archive (id) SELECT id FROM users", nil},
		{"mysql insert set form", advisor.RuleInsertRequireValues,
			"INSERT INTO users SET name = 'x'", nil},

		{"insert without column list", advisor.RuleInsertMustSpecifyColumn,
			"INSERT INTO users VALUES (1, 'x')", []int32{types.InsertNoColumnList}},
		{"insert with column list", advisor.RuleInsertMustSpecifyColumn,
			"INSERT INTO users (id, name) VALUES (1, 'x')", nil},

		{"update without set", advisor.RuleUpdateRequireSet,
			"UPDATE users WHERE id = 1", []int32{types.UpdateMissingSet}},
		{"update with set", advisor.RuleUpdateRequireSet,
			"UPDATE users SET name = 'x' WHERE id = 1", nil},

		{"delete without from", advisor.RuleDeleteRequireFrom,
			"DELETE users", []int32{types.DeleteMissingFrom}},
		{"delete with from", advisor.RuleDeleteRequireFrom,
			"DELETE FROM users WHERE id = 1", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, codes(runRule(t, tc.rule, tc.sql)))
		})
	}
}

func TestWhereRules(t *testing.T) {
	cases := []struct {
		name string
		rule advisor.Type
		sql  string
		want []int32
	}{
		{"unconditional update", advisor.RuleWhereRequireUpdateDelete,
			"UPDATE users SET active = 0", []int32{types.UpdateWithoutWhere}},
		{"unconditional delete", advisor.RuleWhereRequireUpdateDelete,
			"DELETE FROM sessions", []int32{types.DeleteWithoutWhere}},
		{"conditional update", advisor.RuleWhereRequireUpdateDelete,
			"UPDATE users SET active = 0 WHERE id = 1", nil},
		{"select ignored", advisor.RuleWhereRequireUpdateDelete,
			"SELECT * FROM users", nil},

		{"where without comparison", advisor.RuleWhereNoComparison,
			"SELECT * FROM t WHERE active", []int32{types.WhereNoComparison}},
		{"where with equality", advisor.RuleWhereNoComparison,
			"SELECT * FROM t WHERE a = 1", nil},
		{"where with is null", advisor.RuleWhereNoComparison,
			"SELECT * FROM t WHERE a IS NULL", nil},
		{"no where at all", advisor.RuleWhereNoComparison,
			"SELECT * FROM t", nil},

		{"leading percent", advisor.RuleNoLeadingWildcardLike,
			"SELECT * FROM t WHERE name LIKE '%foo'", []int32{types.LeadingWildcardLike}},
		{"leading underscore", advisor.RuleNoLeadingWildcardLike,
			"SELECT * FROM t WHERE name LIKE '_oo'", []int32{types.LeadingWildcardLike}},
		{"trailing wildcard ok", advisor.RuleNoLeadingWildcardLike,
			"SELECT * FROM t WHERE name LIKE 'foo%'", nil},

		{"in subquery", advisor.RuleWhereInSubquery,
			"SELECT * FROM t WHERE id IN (SELECT id FROM u)", []int32{types.InSubquery}},
		{"in value list ok", advisor.RuleWhereInSubquery,
			"SELECT * FROM t WHERE id IN (1, 2, 3)", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, codes(runRule(t, tc.rule, tc.sql)))
		})
	}
}

func TestProjectionRules(t *testing.T) {
	cases := []struct {
		name string
		rule advisor.Type
		sql  string
		want []int32
	}{
		{"bare star", advisor.RuleSelectNoSelectAll,
			"SELECT * FROM t", []int32{types.SelectStar}},
		{"qualified star", advisor.RuleSelectNoSelectAll,
			"SELECT u.* FROM users u", []int32{types.SelectStar}},
		{"count star ok", advisor.RuleSelectNoSelectAll,
			"SELECT count(*) FROM t", nil},
		{"explicit columns ok", advisor.RuleSelectNoSelectAll,
			"SELECT id, name FROM t", nil},
		{"one diagnostic for many stars", advisor.RuleSelectNoSelectAll,
			"SELECT u.*, o.* FROM users u, orders o", []int32{types.SelectStar}},

		{"group by without aggregate", advisor.RuleGroupByRequireAggregate,
			"SELECT region FROM sales GROUP BY region", []int32{types.GroupByNoAggregate}},
		{"group by with aggregate", advisor.RuleGroupByRequireAggregate,
			"SELECT region, sum(amount) FROM sales GROUP BY region", nil},
		{"no group by", advisor.RuleGroupByRequireAggregate,
			"SELECT region FROM sales", nil},

		{"order by without limit", advisor.RuleOrderByRequireLimit,
			"SELECT id FROM t ORDER BY id", []int32{types.OrderByWithoutLimit}},
		{"order by with limit", advisor.RuleOrderByRequireLimit,
			"SELECT id FROM t ORDER BY id LIMIT 10", nil},
		{"order by with fetch", advisor.RuleOrderByRequireLimit,
			"SELECT id FROM t ORDER BY id FETCH FIRST 10 ROWS ONLY", nil},

		{"bare distinct", advisor.RuleSelectBareDistinct,
			"SELECT DISTINCT name FROM t", []int32{types.BareDistinct}},
		{"distinct inside aggregate ok", advisor.RuleSelectBareDistinct,
			"SELECT count(DISTINCT name) FROM t", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, codes(runRule(t, tc.rule, tc.sql)))
		})
	}
}

func TestAliasRules(t *testing.T) {
	cases := []struct {
		name string
		rule advisor.Type
		sql  string
		want []int32
	}{
		{"duplicate alias two tables", advisor.RuleAliasNoDuplicate,
			"SELECT * FROM users u JOIN orders u ON u.id = u.user_id",
			[]int32{types.DuplicateAlias}},
		{"distinct aliases ok", advisor.RuleAliasNoDuplicate,
			"SELECT * FROM users u JOIN orders o ON o.user_id = u.id", nil},
		{"no aliases ok", advisor.RuleAliasNoDuplicate,
			"SELECT * FROM users JOIN orders ON orders.user_id = users.id", nil},

		{"alias shadows desc", advisor.RuleAliasNoKeyword,
			"SELECT * FROM users desc", []int32{types.AliasIsKeyword}},
		{"alias shadows index", advisor.RuleAliasNoKeyword,
			"SELECT * FROM orders index", []int32{types.AliasIsKeyword}},
		{"harmless alias ok", advisor.RuleAliasNoKeyword,
			"SELECT * FROM users u", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, codes(runRule(t, tc.rule, tc.sql)))
		})
	}
}

func TestInjectionSmell(t *testing.T) {
	cases := []struct {
		name string
		sql  string
		want []int32
	}{
		{"classic tautology", "SELECT * FROM users WHERE id = 1 OR 1=1",
			[]int32{types.InjectionSmell}},
		{"quoted tautology", "SELECT * FROM users WHERE name = '' OR '1'='1'",
			[]int32{types.InjectionSmell}},
		{"comment cutoff", "SELECT * FROM users WHERE name = 'x'--' AND secret = 1",
			[]int32{types.InjectionSmell}},
		{"clean statement", "SELECT * FROM users WHERE id = 1", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, codes(runRule(t, advisor.RuleInjectionSmell, tc.sql)))
		})
	}
}

func TestInjectionSmellPayloadPatterns(t *testing.T) {
	sql := "SELECT 1; WAITFOR DELAY '0:0:5'"

	// not in the built-in set
	require.Empty(t, runRule(t, advisor.RuleInjectionSmell, sql))

	src := extractor.NewSource(sql)
	checkCtx := advisor.Context{
		Source:     src,
		Extraction: extractor.Extract(src, 0),
		Balance:    scanner.Tokenizing{}.Scan(sql),
		Matcher:    similarity.NewCache(),
		Thresholds: types.DefaultThresholds(),
		Rule: &types.RuleConfig{
			Type:    string(advisor.RuleInjectionSmell),
			Level:   types.RuleLevel_ERROR,
			Payload: map[string]interface{}{"list": []interface{}{"WAITFOR DELAY"}},
		},
	}
	diagnostics, err := advisor.Check(advisor.RuleInjectionSmell, checkCtx)
	require.NoError(t, err)
	require.Equal(t, []int32{types.InjectionSmell}, codes(diagnostics))
}

func TestJoinRequireCondition(t *testing.T) {
	cases := []struct {
		name string
		sql  string
		want []int32
	}{
		{"join without condition", "SELECT * FROM a JOIN b",
			[]int32{types.JoinWithoutCondition}},
		{"join with on", "SELECT * FROM a JOIN b ON a.id = b.a_id", nil},
		{"join with using", "SELECT * FROM a JOIN b USING (id)", nil},
		{"cross join exempt", "SELECT * FROM a CROSS JOIN b", nil},
		{"natural join exempt", "SELECT * FROM a NATURAL JOIN b", nil},
		{"second join missing condition",
			"SELECT * FROM a JOIN b ON a.id = b.a_id JOIN c WHERE a.x = 1",
			[]int32{types.JoinWithoutCondition}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, codes(runRule(t, advisor.RuleJoinRequireCondition, tc.sql)))
		})
	}
}

func TestWildcardLikeSpan(t *testing.T) {
	sql := "SELECT * FROM t WHERE name LIKE '%abc'"
	diagnostics := runRule(t, advisor.RuleNoLeadingWildcardLike, sql)
	require.Len(t, diagnostics, 1)
	require.NotNil(t, diagnostics[0].Span)
	require.Equal(t, strings.Index(sql, "'%abc'"), diagnostics[0].Span.Start)
	require.Equal(t, "'%abc'", sql[diagnostics[0].Span.Start:diagnostics[0].Span.End])
}

func TestRuleLevelDowngradesSeverity(t *testing.T) {
	src := extractor.NewSource("SELECT (1")
	checkCtx := advisor.Context{
		Source:     src,
		Extraction: extractor.Extract(src, 0),
		Balance:    scanner.Tokenizing{}.Scan("SELECT (1"),
		Matcher:    similarity.NewCache(),
		Thresholds: types.DefaultThresholds(),
		Rule: &types.RuleConfig{
			Type:  string(advisor.RuleStructureBalance),
			Level: types.RuleLevel_WARNING,
		},
	}

	diagnostics, err := advisor.Check(advisor.RuleStructureBalance, checkCtx)
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)
	require.Equal(t, int32(types.MissingClosingParen), diagnostics[0].Code)
	require.Equal(t, types.Severity_WARNING, diagnostics[0].Severity)
}
