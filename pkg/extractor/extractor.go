// Package extractor derives candidate table and column references from raw
// SQL text using clause-boundary heuristics, without building a parse tree.
// Extraction is best-effort: malformed input yields partial results, never
// a failure, because the output feeds advisory checks rather than execution.
package extractor

import (
	"strings"

	"github.com/sqlward/sqlward/pkg/scanner"
	"github.com/sqlward/sqlward/pkg/types"
)

// TableRef is one extracted table reference.
type TableRef struct {
	Name string
	// Schema is the optional namespace qualifier, as written.
	Schema string
	// Alias is the trailing alias, when one was written.
	Alias string
	Span  types.Span
}

// ColumnRef is one extracted column reference. Qualifier is the table name
// after alias resolution when the reference was written qualified, or empty
// for a bare column picked out of a WHERE/SET clause.
type ColumnRef struct {
	Qualifier string
	Name      string
	// Clause is the clause keyword a bare column was found under
	// ("WHERE" or "SET"); empty for qualified references.
	Clause string
	Span   types.Span
}

// Extraction is the result of one extraction pass.
type Extraction struct {
	Statement types.StatementType
	// Tables is ordered and de-duplicated case-insensitively.
	Tables []TableRef
	// Columns holds explicit qualifier.column references.
	Columns []ColumnRef
	// BareColumns holds unqualified identifiers found ahead of a
	// comparison operator in a WHERE or SET clause.
	BareColumns []ColumnRef
	// Aliases maps lowercased alias to the table name it stands for.
	Aliases map[string]string
	// Truncated is set when the reference cap cut extraction short.
	Truncated bool
}

// Source is the tokenized form of one SQL string, computed once and shared
// by extraction and the rule checks.
type Source struct {
	SQL      string
	Stripped string
	Tokens   []Token
}

// NewSource strips and tokenizes sql.
func NewSource(sql string) *Source {
	stripped := scanner.Strip(sql)
	return &Source{
		SQL:      sql,
		Stripped: stripped,
		Tokens:   Tokenize(stripped),
	}
}

// InferStatementType infers the statement kind from the first keyword.
func InferStatementType(tokens []Token) types.StatementType {
	if len(tokens) == 0 {
		return types.Statement_UNKNOWN
	}
	switch tokens[0].Upper() {
	case "SELECT":
		return types.Statement_SELECT
	case "INSERT":
		return types.Statement_INSERT
	case "UPDATE":
		return types.Statement_UPDATE
	case "DELETE":
		return types.Statement_DELETE
	case "CREATE":
		return types.Statement_CREATE
	case "ALTER":
		return types.Statement_ALTER
	case "DROP":
		return types.Statement_DROP
	default:
		return types.Statement_UNKNOWN
	}
}

// keywords that can never be a table alias or a table name capture
var reservedAfterTable = map[string]bool{
	"ON": true, "WHERE": true, "SET": true, "VALUES": true, "JOIN": true,
	"LEFT": true, "RIGHT": true, "INNER": true, "OUTER": true, "CROSS": true,
	"FULL": true, "NATURAL": true, "GROUP": true, "ORDER": true,
	"HAVING": true, "LIMIT": true, "OFFSET": true, "UNION": true,
	"USING": true, "AS": true, "AND": true, "OR": true, "NOT": true,
	"SELECT": true, "FROM": true, "INTO": true, "RETURNING": true,
	"FOR": true, "WITH": true,
}

// logical keywords that must not be mistaken for bare column names
var logicalKeywords = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NULL": true, "BETWEEN": true,
	"LIKE": true, "IN": true, "IS": true, "EXISTS": true, "CASE": true,
	"WHEN": true, "THEN": true, "ELSE": true, "END": true,
}

// comparison symbols that mark the identifier before them as a column
var comparisonSymbols = map[string]bool{
	"=": true, ">": true, "<": true, ">=": true, "<=": true,
	"<>": true, "!=": true,
}

// comparison keywords playing the same role as the symbols above
var comparisonKeywords = map[string]bool{
	"LIKE": true, "IN": true, "BETWEEN": true, "IS": true,
}

// Extract pulls table and column references out of src. At most limit
// references are collected when limit is positive; hitting the cap sets
// Truncated instead of silently dropping the rest.
func Extract(src *Source, limit int) *Extraction {
	ex := &Extraction{
		Statement: InferStatementType(src.Tokens),
		Aliases:   make(map[string]string),
	}

	consumed := make(map[int]bool)
	captureTables(src.Tokens, ex, consumed, limit)
	captureQualifiedColumns(src.Tokens, ex, consumed, limit)
	captureBareColumns(src.Tokens, ex, limit)
	return ex
}

func (ex *Extraction) total() int {
	return len(ex.Tables) + len(ex.Columns) + len(ex.BareColumns)
}

func (ex *Extraction) capped(limit int) bool {
	if limit > 0 && ex.total() >= limit {
		ex.Truncated = true
		return true
	}
	return false
}

// captureTables scans for keywords that introduce a table reference and
// records the identifier that follows, with optional schema qualifier and
// trailing alias. Token indexes belonging to captured references are marked
// consumed so the column pass does not re-read schema.table chains.
func captureTables(tokens []Token, ex *Extraction, consumed map[int]bool, limit int) {
	seen := make(map[string]bool)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != TokenIdent {
			continue
		}
		commaList := false
		switch tok.Upper() {
		case "FROM":
			commaList = true
		case "JOIN":
		case "UPDATE":
			commaList = true
		case "INTO":
			if ex.Statement != types.Statement_INSERT {
				continue
			}
		default:
			continue
		}

		j := i + 1
		for j < len(tokens) {
			next, adv := captureTableAt(tokens, j, consumed)
			if next == nil {
				break
			}
			if ex.capped(limit) {
				return
			}
			key := strings.ToLower(next.Name)
			if !seen[key] {
				seen[key] = true
				ex.Tables = append(ex.Tables, *next)
			}
			if next.Alias != "" {
				ex.Aliases[strings.ToLower(next.Alias)] = next.Name
			}
			j = adv
			if !commaList || j >= len(tokens) || !tokens[j].IsSymbol(",") {
				break
			}
			j++
		}
		if j > i+1 {
			i = j - 1
		}
	}
}

// captureTableAt reads one table reference starting at token index j.
// It returns nil when j does not start an identifier (e.g. a subquery).
func captureTableAt(tokens []Token, j int, consumed map[int]bool) (*TableRef, int) {
	if j >= len(tokens) || tokens[j].Kind != TokenIdent ||
		reservedAfterTable[tokens[j].Upper()] {
		return nil, j
	}

	ref := &TableRef{
		Name: tokens[j].Text,
		Span: types.Span{Start: tokens[j].Start, End: tokens[j].End},
	}
	consumed[j] = true
	j++

	// schema.table chain: keep the last segment as the table name
	for j+1 < len(tokens) && tokens[j].IsSymbol(".") && tokens[j+1].Kind == TokenIdent {
		ref.Schema = ref.Name
		ref.Name = tokens[j+1].Text
		ref.Span.End = tokens[j+1].End
		consumed[j] = true
		consumed[j+1] = true
		j += 2
	}

	// optional alias, with or without AS
	if j < len(tokens) && tokens[j].IsKeyword("AS") {
		if j+1 < len(tokens) && tokens[j+1].Kind == TokenIdent {
			ref.Alias = tokens[j+1].Text
			consumed[j] = true
			consumed[j+1] = true
			j += 2
		}
	} else if j < len(tokens) && tokens[j].Kind == TokenIdent &&
		!reservedAfterTable[tokens[j].Upper()] {
		ref.Alias = tokens[j].Text
		consumed[j] = true
		j++
	}
	return ref, j
}

// captureQualifiedColumns records identifier.identifier pairs, resolving
// the qualifier through the collected aliases.
func captureQualifiedColumns(tokens []Token, ex *Extraction, consumed map[int]bool, limit int) {
	seen := make(map[string]bool)
	for i := 0; i+2 < len(tokens); i++ {
		if consumed[i] || consumed[i+2] {
			continue
		}
		if tokens[i].Kind != TokenIdent || !tokens[i+1].IsSymbol(".") ||
			tokens[i+2].Kind != TokenIdent {
			continue
		}
		// a.b.c: treat the last two segments as table and column
		if i+4 < len(tokens) && tokens[i+3].IsSymbol(".") && tokens[i+4].Kind == TokenIdent {
			continue
		}
		if ex.capped(limit) {
			return
		}
		qualifier := tokens[i].Text
		if target, ok := ex.Aliases[strings.ToLower(qualifier)]; ok {
			qualifier = target
		}
		ref := ColumnRef{
			Qualifier: qualifier,
			Name:      tokens[i+2].Text,
			Span:      types.Span{Start: tokens[i].Start, End: tokens[i+2].End},
		}
		key := strings.ToLower(ref.Qualifier + "." + ref.Name)
		if !seen[key] {
			seen[key] = true
			ex.Columns = append(ex.Columns, ref)
		}
		i += 2
	}
}

// captureBareColumns picks unqualified identifiers immediately followed by
// a comparison operator inside the top-level WHERE and SET clauses.
func captureBareColumns(tokens []Token, ex *Extraction, limit int) {
	seen := make(map[string]bool)
	for _, clause := range []string{"WHERE", "SET"} {
		start, end, ok := ClauseRegion(tokens, clause)
		if !ok {
			continue
		}
		for k := start; k < end; k++ {
			tok := tokens[k]
			if tok.Kind != TokenIdent || logicalKeywords[tok.Upper()] {
				continue
			}
			// skip qualified references and function calls
			if k > start && tokens[k-1].IsSymbol(".") {
				continue
			}
			if k+1 < end && (tokens[k+1].IsSymbol(".") || tokens[k+1].IsSymbol("(")) {
				continue
			}
			if k+1 >= end {
				continue
			}
			next := tokens[k+1]
			isComparison := (next.Kind == TokenSymbol && comparisonSymbols[next.Text]) ||
				(next.Kind == TokenIdent && comparisonKeywords[next.Upper()]) ||
				(next.Kind == TokenIdent && next.Upper() == "NOT" &&
					k+2 < end && comparisonKeywords[tokens[k+2].Upper()])
			if !isComparison {
				continue
			}
			if ex.capped(limit) {
				return
			}
			key := strings.ToLower(tok.Text)
			if !seen[key] {
				seen[key] = true
				ex.BareColumns = append(ex.BareColumns, ColumnRef{
					Name:   tok.Text,
					Clause: clause,
					Span:   types.Span{Start: tok.Start, End: tok.End},
				})
			}
		}
	}
}

// SelectItems splits the top-level SELECT list into comma-separated items,
// respecting nested parentheses so function calls and subqueries stay whole.
// Returns nil when the statement has no top-level SELECT clause.
func SelectItems(tokens []Token, stripped string) []string {
	start, end, ok := ClauseRegion(tokens, "SELECT")
	if !ok || start >= end {
		return nil
	}
	base := tokens[start].Depth
	var items []string
	itemStart := tokens[start].Start
	for k := start; k < end; k++ {
		if tokens[k].Depth == base && tokens[k].IsSymbol(",") {
			items = append(items, strings.TrimSpace(stripped[itemStart:tokens[k].Start]))
			itemStart = tokens[k].End
		}
	}
	last := strings.TrimSpace(stripped[itemStart:tokens[end-1].End])
	if last != "" {
		items = append(items, last)
	}
	return items
}

// MaxSelectDepth returns the deepest parenthesis nesting level at which a
// SELECT keyword appears, relative to the outermost statement.
func MaxSelectDepth(tokens []Token) int {
	if len(tokens) == 0 {
		return 0
	}
	base := tokens[0].Depth
	max := 0
	for _, tok := range tokens {
		if tok.IsKeyword("SELECT") && tok.Depth-base > max {
			max = tok.Depth - base
		}
	}
	return max
}
