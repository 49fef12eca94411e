package schemacheck

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sqlward/sqlward/pkg/advisor"
	"github.com/sqlward/sqlward/pkg/extractor"
	"github.com/sqlward/sqlward/pkg/scanner"
	"github.com/sqlward/sqlward/pkg/schema"
	"github.com/sqlward/sqlward/pkg/similarity"
	"github.com/sqlward/sqlward/pkg/types"
	"github.com/stretchr/testify/require"
)

const testSchemaYAML = `
tables:
  - name: customers
    columns:
      - name: id
      - name: email
      - name: created_at
  - name: orders
    columns:
      - name: id
      - name: customer_id
      - name: total
`

func testModel(t *testing.T) *schema.Model {
	t.Helper()
	model, err := schema.Parse([]byte(testSchemaYAML))
	require.NoError(t, err)
	return model
}

func runRule(t *testing.T, ruleType advisor.Type, sql string, model *schema.Model) []*types.Diagnostic {
	t.Helper()
	src := extractor.NewSource(sql)
	checkCtx := advisor.Context{
		Source:     src,
		Extraction: extractor.Extract(src, 0),
		Balance:    scanner.Tokenizing{}.Scan(sql),
		Schema:     model,
		Matcher:    similarity.NewCache(),
		Thresholds: types.DefaultThresholds(),
		Rule:       &types.RuleConfig{Type: string(ruleType), Level: types.RuleLevel_ERROR},
	}
	diagnostics, err := advisor.Check(ruleType, checkCtx)
	require.NoError(t, err)
	return diagnostics
}

func TestTableExistsSkipsWithoutSchema(t *testing.T) {
	diagnostics := runRule(t, advisor.RuleSchemaTableExists,
		"SELECT * FROM anything_at_all", nil)
	require.Empty(t, diagnostics)
}

func TestTableExistsKnownTables(t *testing.T) {
	diagnostics := runRule(t, advisor.RuleSchemaTableExists,
		"SELECT * FROM customers JOIN orders ON orders.customer_id = customers.id",
		testModel(t))
	require.Empty(t, diagnostics)
}

func TestTableExistsMisspelled(t *testing.T) {
	sql := "SELECT email FROM custmers"
	diagnostics := runRule(t, advisor.RuleSchemaTableExists, sql, testModel(t))

	require.Len(t, diagnostics, 1)
	d := diagnostics[0]
	require.Equal(t, int32(types.TableNotFound), d.Code)
	require.Equal(t, types.Severity_ERROR, d.Severity)
	require.Equal(t, "custmers", d.RelatedReference)
	require.Contains(t, d.Suggestion, "customers")
	require.NotNil(t, d.Span)
	require.Equal(t, "custmers", sql[d.Span.Start:d.Span.End])
}

func TestTableExistsNoSuggestion(t *testing.T) {
	diagnostics := runRule(t, advisor.RuleSchemaTableExists,
		"SELECT * FROM zzz_qqq", testModel(t))
	require.Len(t, diagnostics, 1)
	require.Equal(t, int32(types.TableNotFound), diagnostics[0].Code)
	require.Empty(t, diagnostics[0].Suggestion)
}

func TestColumnExistsQualified(t *testing.T) {
	diagnostics := runRule(t, advisor.RuleSchemaColumnExists,
		"SELECT c.email FROM customers c WHERE c.id = 1", testModel(t))
	require.Empty(t, diagnostics)
}

func TestColumnExistsMisspelledQualified(t *testing.T) {
	diagnostics := runRule(t, advisor.RuleSchemaColumnExists,
		"SELECT c.emial FROM customers c", testModel(t))

	require.Len(t, diagnostics, 1)
	d := diagnostics[0]
	require.Equal(t, int32(types.ColumnNotFound), d.Code)
	require.Equal(t, "customers.emial", d.RelatedReference)
	require.Contains(t, d.Suggestion, "email")
}

func TestColumnOnDifferentTable(t *testing.T) {
	// email exists, but on customers, not orders
	diagnostics := runRule(t, advisor.RuleSchemaColumnExists,
		"SELECT o.email FROM orders o", testModel(t))

	require.Len(t, diagnostics, 1)
	d := diagnostics[0]
	require.Equal(t, int32(types.ColumnWrongTable), d.Code)
	require.Contains(t, d.Suggestion, "customers.email")
}

func TestColumnExistsUnknownQualifierSkipped(t *testing.T) {
	// the unknown table is the table rule's finding, not a column finding
	diagnostics := runRule(t, advisor.RuleSchemaColumnExists,
		"SELECT x.email FROM custmers x", testModel(t))
	require.Empty(t, diagnostics)
}

func TestBareColumnChecked(t *testing.T) {
	diagnostics := runRule(t, advisor.RuleSchemaColumnExists,
		"SELECT id FROM orders WHERE custmer_id = 5", testModel(t))

	require.Len(t, diagnostics, 1)
	d := diagnostics[0]
	require.Equal(t, int32(types.ColumnNotFound), d.Code)
	require.Equal(t, "custmer_id", d.RelatedReference)
	require.Contains(t, d.Suggestion, "customer_id")
}

func TestBareColumnAnnotatedAcrossTables(t *testing.T) {
	diagnostics := runRule(t, advisor.RuleSchemaColumnExists,
		"SELECT * FROM customers, orders WHERE totall = 1", testModel(t))

	require.Len(t, diagnostics, 1)
	// two referenced tables, so the suggestion names the owner
	require.Contains(t, diagnostics[0].Suggestion, "orders.total")
}

func TestBareColumnValid(t *testing.T) {
	diagnostics := runRule(t, advisor.RuleSchemaColumnExists,
		"SELECT * FROM orders WHERE total > 100", testModel(t))
	require.Empty(t, diagnostics)
}

func TestColumnExistsSkipsWithoutSchema(t *testing.T) {
	diagnostics := runRule(t, advisor.RuleSchemaColumnExists,
		"SELECT t.anything FROM t WHERE whatever = 1", nil)
	require.Empty(t, diagnostics)
}

func TestColumnSeverityDowngrade(t *testing.T) {
	src := extractor.NewSource("SELECT c.emial FROM customers c")
	checkCtx := advisor.Context{
		Source:     src,
		Extraction: extractor.Extract(src, 0),
		Schema:     testModel(t),
		Matcher:    similarity.NewCache(),
		Thresholds: types.DefaultThresholds(),
		Rule: &types.RuleConfig{
			Type:  string(advisor.RuleSchemaColumnExists),
			Level: types.RuleLevel_WARNING,
		},
	}
	diagnostics, err := advisor.Check(advisor.RuleSchemaColumnExists, checkCtx)
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)
	require.Equal(t, types.Severity_WARNING, diagnostics[0].Severity)
}

func TestCrossTableMatchesRankedByScore(t *testing.T) {
	target := strings.Repeat("a", 20)
	col := func(k int) string {
		return strings.Repeat("a", 20-k) + strings.Repeat("b", k)
	}

	// weaker candidates on earlier tables, the best one on the last
	var b strings.Builder
	b.WriteString("tables:\n  - name: home\n    columns:\n      - name: id\n")
	for i, k := range []int{2, 3, 4, 5, 6, 1} {
		fmt.Fprintf(&b, "  - name: p%d\n    columns:\n      - name: %s\n", i+1, col(k))
	}
	model, err := schema.Parse([]byte(b.String()))
	require.NoError(t, err)

	checkCtx := advisor.Context{
		Schema:     model,
		Matcher:    similarity.NewCache(),
		Thresholds: types.DefaultThresholds(),
	}
	got := crossTableMatches(checkCtx, target, model.Table("home"))
	names := strings.Split(got, ", ")

	require.Len(t, names, maxCrossTableSuggestions)
	require.Equal(t, "p6."+col(1), names[0])
	require.NotContains(t, got, col(6))
}
