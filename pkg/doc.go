// Package pkg provides pre-execution SQL validation functionality for Go
// applications.
//
// sqlward decides whether generated SQL is worth sending to a database: it
// checks structural plausibility, resolves table and column references
// against a schema snapshot, and flags statement shapes that are likely to
// be slow. Everything works from lightweight text scanning; no full SQL
// parser is involved and nothing is ever executed.
//
// # Package Structure
//
// The pkg directory contains several specialized packages:
//
//   - validator: High-level API for validating statements (recommended starting point)
//   - advisor: Low-level rule execution engine and registration system
//   - types: Core type definitions, diagnostic codes, and severities
//   - config: Configuration loading and rule-level management
//   - schema: Schema snapshot loading and lookup
//   - scanner: Delimiter-balance scanning and literal/comment stripping
//   - extractor: Table and column reference extraction
//   - similarity: Edit-distance ranking for name suggestions
//   - rules: Rule implementations (clause, schemacheck, perf)
//   - logger: Logging abstraction layer
//
// # Getting Started
//
// For most use cases, start with the validator package:
//
//	import (
//	    "github.com/sqlward/sqlward/pkg/schema"
//	    "github.com/sqlward/sqlward/pkg/validator"
//	)
//
//	func main() {
//	    v := validator.New()
//	    model, _ := schema.Load("schema.yaml")
//	    report, err := v.ValidateWithSchema(context.Background(), sql, model)
//	    // Process report...
//	}
//
// # Rule Categories
//
// Structure Rules: delimiter balance, empty statements, required clauses
// per statement kind (FROM, INTO, VALUES, SET).
//
// Statement Rules: risky-but-legal shapes such as unconditional UPDATE/DELETE,
// SELECT *, leading-wildcard LIKE, GROUP BY without aggregates, duplicate
// or keyword aliases, joins with no condition, injection signatures.
//
// Schema Rules: references to tables and columns that do not exist, with
// ranked "did you mean" suggestions and cross-table column search.
//
// Performance Rules: unindexed predicates and join columns, compound-index
// hints, Cartesian products, deep subquery nesting, UNION vs UNION ALL.
//
// # Configuration
//
// Rules can be configured via YAML/JSON files or programmatically:
//
//	v := validator.New()
//	if err := v.WithConfig("custom-rules.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
// Each rule can be set to ERROR, WARNING, or DISABLED. Similarity thresholds
// and the reference-extraction cap are configurable in the same file.
//
// # Custom Rules
//
// Implement custom validation rules by satisfying the Advisor interface:
//
//	type MyRule struct{}
//
//	func (r *MyRule) Check(checkCtx advisor.Context) ([]*types.Diagnostic, error) {
//	    // Validation logic
//	    return diagnostics, nil
//	}
//
//	func init() {
//	    advisor.Register("custom.my-rule", &MyRule{})
//	}
//
// # Thread Safety
//
// All public APIs are safe for concurrent use by multiple goroutines.
// Validator instances can be reused across statements; the similarity cache
// they carry makes repeated validation against the same schema cheaper.
//
// # Error Handling
//
// Validation distinguishes between:
//   - Findings (returned as Diagnostics in the Report)
//   - System errors (returned as error from Validate/ValidateWithSchema)
//
// Individual rule failures are logged but don't cause validation to return
// an error, allowing partial results even when some rules fail.
package pkg
