package types

import (
	"encoding/json"
	"fmt"
)

// Severity classifies a single diagnostic.
type Severity int32

const (
	Severity_UNSPECIFIED Severity = 0
	// Severity_ERROR marks a finding that makes the statement invalid.
	Severity_ERROR Severity = 1
	// Severity_WARNING marks risky-but-legal SQL. Never affects validity.
	Severity_WARNING Severity = 2
	// Severity_SUGGESTION marks an optional improvement.
	Severity_SUGGESTION Severity = 3
	// Severity_PERFORMANCE marks a purely advisory performance note.
	Severity_PERFORMANCE Severity = 4
)

func (s Severity) String() string {
	switch s {
	case Severity_ERROR:
		return "ERROR"
	case Severity_WARNING:
		return "WARNING"
	case Severity_SUGGESTION:
		return "SUGGESTION"
	case Severity_PERFORMANCE:
		return "PERFORMANCE"
	default:
		return "UNSPECIFIED"
	}
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalYAML implements yaml.Marshaler for Severity
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func severityFromString(v string) Severity {
	switch v {
	case "ERROR":
		return Severity_ERROR
	case "WARNING":
		return Severity_WARNING
	case "SUGGESTION":
		return Severity_SUGGESTION
	case "PERFORMANCE", "PERFORMANCE_NOTE":
		return Severity_PERFORMANCE
	default:
		return Severity_UNSPECIFIED
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for Severity
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v string
	if err := unmarshal(&v); err != nil {
		return err
	}
	*s = severityFromString(v)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Severity
func (s *Severity) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = severityFromString(v)
	return nil
}

// RuleLevel represents the configured level of a rule
type RuleLevel int32

const (
	RuleLevel_LEVEL_UNSPECIFIED RuleLevel = 0
	RuleLevel_ERROR             RuleLevel = 1
	RuleLevel_WARNING           RuleLevel = 2
	RuleLevel_DISABLED          RuleLevel = 3
)

func (l RuleLevel) String() string {
	switch l {
	case RuleLevel_ERROR:
		return "ERROR"
	case RuleLevel_WARNING:
		return "WARNING"
	case RuleLevel_DISABLED:
		return "DISABLED"
	default:
		return "LEVEL_UNSPECIFIED"
	}
}

func ruleLevelFromString(v string) RuleLevel {
	switch v {
	case "ERROR":
		return RuleLevel_ERROR
	case "WARNING":
		return RuleLevel_WARNING
	case "DISABLED":
		return RuleLevel_DISABLED
	default:
		return RuleLevel_LEVEL_UNSPECIFIED
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for RuleLevel
func (l *RuleLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v string
	if err := unmarshal(&v); err != nil {
		return err
	}
	*l = ruleLevelFromString(v)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for RuleLevel
func (l *RuleLevel) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = ruleLevelFromString(v)
	return nil
}

// StatementType is the statement kind inferred from the first keyword.
type StatementType int32

const (
	Statement_UNKNOWN StatementType = 0
	Statement_SELECT  StatementType = 1
	Statement_INSERT  StatementType = 2
	Statement_UPDATE  StatementType = 3
	Statement_DELETE  StatementType = 4
	Statement_CREATE  StatementType = 5
	Statement_ALTER   StatementType = 6
	Statement_DROP    StatementType = 7
)

func (t StatementType) String() string {
	switch t {
	case Statement_SELECT:
		return "SELECT"
	case Statement_INSERT:
		return "INSERT"
	case Statement_UPDATE:
		return "UPDATE"
	case Statement_DELETE:
		return "DELETE"
	case Statement_CREATE:
		return "CREATE"
	case Statement_ALTER:
		return "ALTER"
	case Statement_DROP:
		return "DROP"
	default:
		return "UNKNOWN"
	}
}

// RuleConfig configures a single validation rule.
type RuleConfig struct {
	Type    string                 `json:"type"              yaml:"type"`
	Level   RuleLevel              `json:"level"             yaml:"level"`
	Payload map[string]interface{} `json:"payload,omitempty" yaml:"payload,omitempty"`
	Comment string                 `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Thresholds holds the similarity cutoffs used when ranking correction
// suggestions. All values are normalized similarities in [0, 1].
type Thresholds struct {
	// Table is the minimum similarity for table-name suggestions.
	Table float64 `json:"table"      yaml:"table"`
	// Column is the minimum similarity for same-table column suggestions.
	Column float64 `json:"column"     yaml:"column"`
	// CrossTable is the minimum similarity when searching other tables
	// for a column that was not found on its own table.
	CrossTable float64 `json:"crossTable" yaml:"crossTable"`
	// Retry is the lowered cutoff applied once when the primary
	// threshold yields nothing.
	Retry float64 `json:"retry"      yaml:"retry"`
}

// DefaultThresholds returns the stock cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Table:      0.6,
		Column:     0.65,
		CrossTable: 0.7,
		Retry:      0.4,
	}
}

// Diagnostic is one reported issue.
type Diagnostic struct {
	Severity Severity `json:"severity"           yaml:"severity"`
	Code     int32    `json:"code"               yaml:"code"`
	Message  string   `json:"message"            yaml:"message"`
	// RelatedReference names the table/column the diagnostic is about,
	// in "table" or "table.column" form, when one is known.
	RelatedReference string `json:"relatedReference,omitempty" yaml:"relatedReference,omitempty"`
	// Suggestion is a replacement name or advisory text, when one exists.
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	// Span is the byte offset range in the input, for display only.
	Span *Span `json:"span,omitempty" yaml:"span,omitempty"`
}

// Span is a half-open byte offset range in the input SQL.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Diagnostic code constants grouped by concern.
const (
	Internal = 1

	// 101 ~ 199 structural error codes.
	EmptyQuery          = 101
	MissingClosingParen = 102
	ExtraClosingParen   = 103
	UnclosedQuote       = 104
	UnterminatedComment = 105
	SelectMissingFrom   = 110
	InsertMissingInto   = 111
	InsertMissingValues = 112
	UpdateMissingSet    = 113
	DeleteMissingFrom   = 114
	DuplicateAlias      = 115

	// 201 ~ 299 statement warning/suggestion codes.
	UpdateWithoutWhere   = 201
	DeleteWithoutWhere   = 202
	WhereNoComparison    = 203
	GroupByNoAggregate   = 204
	SelectStar           = 205
	OrderByWithoutLimit  = 206
	LeadingWildcardLike  = 207
	InSubquery           = 208
	BareDistinct         = 209
	InsertNoColumnList   = 210
	AliasIsKeyword       = 211
	InjectionSmell       = 212
	JoinWithoutCondition = 213

	// 301 ~ 399 schema mismatch codes.
	TableNotFound    = 301
	ColumnNotFound   = 302
	ColumnWrongTable = 303

	// 401 ~ 499 performance advisory codes.
	PredicateNotIndexed = 401
	CompoundIndexHint   = 402
	JoinNotIndexed      = 403
	CartesianJoin       = 404
	SubqueryTooDeep     = 405
	UnionWithoutAll     = 406

	// 501 ~ 599 resource bound codes.
	ReferencesTruncated = 501
)

// CodeTitle returns a short human title for a diagnostic code.
func CodeTitle(code int32) string {
	if title, ok := codeTitles[code]; ok {
		return title
	}
	return fmt.Sprintf("code %d", code)
}

var codeTitles = map[int32]string{
	Internal:             "Internal",
	EmptyQuery:           "Empty query",
	MissingClosingParen:  "Missing closing parenthesis",
	ExtraClosingParen:    "Extra closing parenthesis",
	UnclosedQuote:        "Unclosed quote",
	UnterminatedComment:  "Unterminated comment",
	SelectMissingFrom:    "Missing FROM clause",
	InsertMissingInto:    "Missing INTO clause",
	InsertMissingValues:  "Missing VALUES or SELECT",
	UpdateMissingSet:     "Missing SET clause",
	DeleteMissingFrom:    "Missing FROM clause",
	DuplicateAlias:       "Duplicate alias",
	UpdateWithoutWhere:   "Unconditional UPDATE",
	DeleteWithoutWhere:   "Unconditional DELETE",
	WhereNoComparison:    "WHERE without comparison",
	GroupByNoAggregate:   "GROUP BY without aggregate",
	SelectStar:           "SELECT *",
	OrderByWithoutLimit:  "ORDER BY without LIMIT",
	LeadingWildcardLike:  "Leading wildcard LIKE",
	InSubquery:           "IN with subquery",
	BareDistinct:         "Bare DISTINCT",
	InsertNoColumnList:   "INSERT without column list",
	AliasIsKeyword:       "Alias is a reserved keyword",
	InjectionSmell:       "Possible injection pattern",
	JoinWithoutCondition: "JOIN without condition",
	TableNotFound:        "Unknown table",
	ColumnNotFound:       "Unknown column",
	ColumnWrongTable:     "Column on different table",
	PredicateNotIndexed:  "Predicate column not indexed",
	CompoundIndexHint:    "Compound index suggestion",
	JoinNotIndexed:       "Join column not indexed",
	CartesianJoin:        "Possible Cartesian join",
	SubqueryTooDeep:      "Deeply nested subqueries",
	UnionWithoutAll:      "UNION without ALL",
	ReferencesTruncated:  "Reference extraction truncated",
}
