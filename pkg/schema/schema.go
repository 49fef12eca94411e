// Package schema holds the database schema snapshot that validation runs
// against. The model is an ordinary value loaded from YAML or JSON; lookup
// maps are built once at load time and all name comparisons are
// case-insensitive.
package schema

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// maxSampleValues bounds the per-column sample list; anything past the cap
// is dropped at load time.
const maxSampleValues = 5

// Model is one database schema snapshot.
type Model struct {
	Name          string          `yaml:"name,omitempty"          json:"name,omitempty"`
	Vendor        string          `yaml:"vendor,omitempty"        json:"vendor,omitempty"`
	Version       string          `yaml:"version,omitempty"       json:"version,omitempty"`
	Tables        []*Table        `yaml:"tables"                  json:"tables"`
	Relationships []*Relationship `yaml:"relationships,omitempty" json:"relationships,omitempty"`

	tableIndex map[string]*Table
}

// Table is one table definition. PrimaryKey and ForeignKeys may be declared
// directly or are derived at load time from the primary index and the
// columns' foreign-key targets.
type Table struct {
	Name    string    `yaml:"name"              json:"name"`
	Schema  string    `yaml:"schema,omitempty"  json:"schema,omitempty"`
	Comment string    `yaml:"comment,omitempty" json:"comment,omitempty"`
	Columns []*Column `yaml:"columns"           json:"columns"`
	Indexes []*Index  `yaml:"indexes,omitempty" json:"indexes,omitempty"`
	// PrimaryKey lists the primary-key column names in key order.
	PrimaryKey []string `yaml:"primaryKey,omitempty" json:"primaryKey,omitempty"`
	// ForeignKeys maps a column name to its "table.column" target.
	ForeignKeys map[string]string `yaml:"foreignKeys,omitempty" json:"foreignKeys,omitempty"`
	// RowCount is an approximate size hint for advisory text. Zero means
	// unknown.
	RowCount int64 `yaml:"rowCount,omitempty" json:"rowCount,omitempty"`

	columnIndex map[string]*Column
}

// Column is one column definition.
type Column struct {
	Name       string `yaml:"name"                 json:"name"`
	Type       string `yaml:"type,omitempty"       json:"type,omitempty"`
	Nullable   bool   `yaml:"nullable,omitempty"   json:"nullable,omitempty"`
	PrimaryKey bool   `yaml:"primaryKey,omitempty" json:"primaryKey,omitempty"`
	Unique     bool   `yaml:"unique,omitempty"     json:"unique,omitempty"`
	// ForeignKey is the referenced "table.column", when the column is a
	// foreign key.
	ForeignKey string `yaml:"foreignKey,omitempty" json:"foreignKey,omitempty"`
	Default    string `yaml:"default,omitempty"    json:"default,omitempty"`
	Comment    string `yaml:"comment,omitempty"    json:"comment,omitempty"`
	// SampleValues are example values for display only, capped at
	// maxSampleValues entries.
	SampleValues []string `yaml:"sampleValues,omitempty" json:"sampleValues,omitempty"`
}

// Index is one index definition. Columns are ordered; only the leading
// column makes a predicate on that column indexed.
type Index struct {
	Name    string   `yaml:"name,omitempty"    json:"name,omitempty"`
	Columns []string `yaml:"columns"           json:"columns"`
	Unique  bool     `yaml:"unique,omitempty"  json:"unique,omitempty"`
	Primary bool     `yaml:"primary,omitempty" json:"primary,omitempty"`
}

// Relationship is one declared foreign-key style link between tables.
type Relationship struct {
	FromTable  string `yaml:"fromTable"      json:"fromTable"`
	FromColumn string `yaml:"fromColumn"     json:"fromColumn"`
	ToTable    string `yaml:"toTable"        json:"toTable"`
	ToColumn   string `yaml:"toColumn"       json:"toColumn"`
	// Kind names the relationship cardinality, e.g. "one-to-many". Free
	// form, display only.
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// Load reads a schema snapshot from a YAML or JSON file.
func Load(filename string) (*Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read schema file %s", filename)
	}
	return Parse(data)
}

// Parse decodes a schema snapshot, trying YAML first and JSON second.
func Parse(data []byte) (*Model, error) {
	var model Model
	if err := yaml.Unmarshal(data, &model); err != nil {
		if jsonErr := json.Unmarshal(data, &model); jsonErr != nil {
			return nil, errors.Wrap(err, "failed to parse schema as YAML or JSON")
		}
	}
	if err := model.build(); err != nil {
		return nil, err
	}
	return &model, nil
}

// build constructs the lookup maps and rejects duplicate names.
func (m *Model) build() error {
	m.tableIndex = make(map[string]*Table, len(m.Tables))
	for _, table := range m.Tables {
		if table.Name == "" {
			return errors.New("schema contains a table with no name")
		}
		key := strings.ToLower(table.Name)
		if _, dup := m.tableIndex[key]; dup {
			return errors.Errorf("duplicate table name %q", table.Name)
		}
		m.tableIndex[key] = table

		table.columnIndex = make(map[string]*Column, len(table.Columns))
		for _, column := range table.Columns {
			if column.Name == "" {
				return errors.Errorf("table %q contains a column with no name", table.Name)
			}
			colKey := strings.ToLower(column.Name)
			if _, dup := table.columnIndex[colKey]; dup {
				return errors.Errorf("duplicate column name %q in table %q", column.Name, table.Name)
			}
			table.columnIndex[colKey] = column
			if len(column.SampleValues) > maxSampleValues {
				column.SampleValues = column.SampleValues[:maxSampleValues]
			}
		}
	}

	for _, table := range m.Tables {
		for _, column := range table.Columns {
			if column.ForeignKey == "" {
				continue
			}
			toTable, toColumn, ok := splitForeignKey(column.ForeignKey)
			if !ok {
				return errors.Errorf("column %q.%q has malformed foreign key %q, want table.column",
					table.Name, column.Name, column.ForeignKey)
			}
			if m.Table(toTable).Column(toColumn) == nil {
				return errors.Errorf("column %q.%q references unknown foreign key target %q",
					table.Name, column.Name, column.ForeignKey)
			}
			table.addForeignKey(column.Name, column.ForeignKey)
		}
		if len(table.PrimaryKey) == 0 {
			for _, idx := range table.Indexes {
				if idx.Primary {
					table.PrimaryKey = idx.Columns
					break
				}
			}
		}
	}

	for _, rel := range m.Relationships {
		from := m.Table(rel.FromTable)
		if from == nil {
			return errors.Errorf("relationship references unknown table %q", rel.FromTable)
		}
		if from.Column(rel.FromColumn) == nil {
			return errors.Errorf("relationship references unknown column %q.%q", rel.FromTable, rel.FromColumn)
		}
		to := m.Table(rel.ToTable)
		if to == nil {
			return errors.Errorf("relationship references unknown table %q", rel.ToTable)
		}
		if to.Column(rel.ToColumn) == nil {
			return errors.Errorf("relationship references unknown column %q.%q", rel.ToTable, rel.ToColumn)
		}
		from.addForeignKey(rel.FromColumn, rel.ToTable+"."+rel.ToColumn)
	}
	return nil
}

// splitForeignKey splits a "table.column" reference.
func splitForeignKey(ref string) (table, column string, ok bool) {
	parts := strings.SplitN(ref, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// addForeignKey records a column's target without overwriting an explicit
// declaration.
func (t *Table) addForeignKey(column, target string) {
	if t.ForeignKeys == nil {
		t.ForeignKeys = make(map[string]string)
	}
	if _, exists := t.ForeignKeys[column]; !exists {
		t.ForeignKeys[column] = target
	}
}

// Table looks a table up by name, case-insensitively. Returns nil when the
// table does not exist.
func (m *Model) Table(name string) *Table {
	if m == nil {
		return nil
	}
	return m.tableIndex[strings.ToLower(name)]
}

// TableNames returns all table names in declaration order.
func (m *Model) TableNames() []string {
	names := make([]string, 0, len(m.Tables))
	for _, table := range m.Tables {
		names = append(names, table.Name)
	}
	return names
}

// TablesWithColumn returns the tables that define a column with the given
// name, in declaration order.
func (m *Model) TablesWithColumn(column string) []*Table {
	var out []*Table
	for _, table := range m.Tables {
		if table.Column(column) != nil {
			out = append(out, table)
		}
	}
	return out
}

// Column looks a column up by name, case-insensitively. Returns nil when
// the column does not exist on this table.
func (t *Table) Column(name string) *Column {
	if t == nil {
		return nil
	}
	return t.columnIndex[strings.ToLower(name)]
}

// ColumnNames returns all column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, column := range t.Columns {
		names = append(names, column.Name)
	}
	return names
}

// HasIndexOn reports whether the column is the leading column of any index
// on this table. Trailing positions in a compound index do not count: a
// predicate on such a column still scans.
func (t *Table) HasIndexOn(column string) bool {
	if t == nil {
		return false
	}
	for _, idx := range t.Indexes {
		if len(idx.Columns) > 0 && strings.EqualFold(idx.Columns[0], column) {
			return true
		}
	}
	return false
}

// IndexCovering returns the first index whose leading columns cover all the
// given columns in any order, or nil.
func (t *Table) IndexCovering(columns []string) *Index {
	if t == nil || len(columns) == 0 {
		return nil
	}
	want := make(map[string]bool, len(columns))
	for _, c := range columns {
		want[strings.ToLower(c)] = true
	}
	for _, idx := range t.Indexes {
		if len(idx.Columns) < len(columns) {
			continue
		}
		covered := 0
		for _, c := range idx.Columns[:len(columns)] {
			if want[strings.ToLower(c)] {
				covered++
			}
		}
		if covered == len(columns) {
			return idx
		}
	}
	return nil
}
