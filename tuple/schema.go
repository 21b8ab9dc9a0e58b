// Package tuple implements the engine's row model: an ordered Schema of
// (name, type) pairs and the Tuple values carried against it (spec.md §3).
package tuple

import (
	"strings"

	"github.com/dsglabs/relquery/common"
)

// Column is one (name, type) pair in a Schema.
type Column struct {
	Name string
	Type common.Type
}

// Schema is an ordered sequence of columns. Column names are globally
// unique across all input tables by system-wide invariant (spec.md §3);
// the engine does not re-validate this across tables, only within a single
// table's header (see csvio.ParseHeader).
type Schema struct {
	columns []Column
	index   map[string]int // column name -> position, built once
}

// NewSchema builds a Schema from an ordered column list and precomputes the
// name->position lookup, mirroring the teacher's pattern of binding column
// offsets once up front (planner.BoundValueExpr) rather than re-scanning on
// every tuple.
func NewSchema(columns []Column) *Schema {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c.Name] = i
	}
	return &Schema{columns: columns, index: index}
}

// Arity returns the number of columns in the schema.
func (s *Schema) Arity() int {
	return len(s.columns)
}

// Columns returns the schema's columns in order. Callers must not mutate
// the returned slice.
func (s *Schema) Columns() []Column {
	return s.columns
}

// ColumnNames returns just the names, in order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// IndexOf returns the position of a column name, or (-1, false) if the
// schema has no such column.
func (s *Schema) IndexOf(name string) (int, bool) {
	i, ok := s.index[name]
	if !ok {
		return -1, false
	}
	return i, true
}

// TypeOf returns the declared type of a column, or (0, false) if unknown.
func (s *Schema) TypeOf(name string) (common.Type, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.columns[i].Type, true
}

// Concat returns a fresh Schema that is the receiver's columns followed by
// other's — used to build a HashJoin's output schema (spec.md §4.6).
func (s *Schema) Concat(other *Schema) *Schema {
	combined := make([]Column, 0, len(s.columns)+len(other.columns))
	combined = append(combined, s.columns...)
	combined = append(combined, other.columns...)
	return NewSchema(combined)
}

// Project returns a fresh Schema containing only the named columns, in the
// given order, with types inherited from the receiver. Unknown names
// produce a StringType placeholder column (§4.4: unknown names are
// surfaced as null at the value level, not rejected at the schema level).
func (s *Schema) Project(names []string) *Schema {
	cols := make([]Column, len(names))
	for i, name := range names {
		if t, ok := s.TypeOf(name); ok {
			cols[i] = Column{Name: name, Type: t}
		} else {
			cols[i] = Column{Name: name, Type: common.StringType}
		}
	}
	return NewSchema(cols)
}

func (s *Schema) String() string {
	parts := make([]string, len(s.columns))
	for i, c := range s.columns {
		parts[i] = c.Name + ":" + c.Type.String()
	}
	return strings.Join(parts, ",")
}
