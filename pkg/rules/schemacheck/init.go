package schemacheck

import (
	"github.com/sqlward/sqlward/pkg/advisor"
)

// init registers the schema-reference rules with the advisor system.
func init() {
	advisor.Register(advisor.RuleSchemaTableExists, &TableExistsAdvisor{})
	advisor.Register(advisor.RuleSchemaColumnExists, &ColumnExistsAdvisor{})
}
