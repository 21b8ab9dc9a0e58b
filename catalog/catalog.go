// Package catalog holds the per-table statistics the optimizer's cardinality
// model consults (spec.md §3, §4.8). Unlike the teacher's catalog.Catalog,
// which persists table/column/index metadata to a JSON file on disk and
// mutates as indexes are added, statistics here are computed once from a
// loaded CSV table and never change afterward — there is no persistence
// layer and no index concept in scope (Non-goals: persistent storage,
// indexing).
package catalog

import (
	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/tuple"
)

// ColumnStatistics summarizes one column's value distribution: min, max,
// exact distinct count, and an optional equi-width histogram used for
// the opt-in selectivity refinement (see Optimizer.UseHistograms in
// optimize). spec.md §3 calls these out as the statistics the catalog may
// carry; the baseline cardinality model (§4.8) only needs row counts, so a
// column with no comparable values (e.g. an empty table) simply carries a
// zero Distinct and a nil Histogram.
type ColumnStatistics struct {
	Name      string
	Type      common.Type
	Min       common.Value
	Max       common.Value
	Distinct  int
	Histogram *Histogram
}

// TableStatistics is one table's row count plus its columns' statistics, in
// schema order.
type TableStatistics struct {
	Name    string
	Schema  *tuple.Schema
	RowCount int
	Columns []ColumnStatistics
}

// ColumnStats returns the statistics for a named column, or nil if the
// table has no such column.
func (ts *TableStatistics) ColumnStats(name string) *ColumnStatistics {
	for i := range ts.Columns {
		if ts.Columns[i].Name == name {
			return &ts.Columns[i]
		}
	}
	return nil
}

// Catalog is the engine's read-only table of table statistics, keyed by
// table name. It is built once (BuildTableStatistics results passed to
// Register) and passed explicitly to whatever
// needs it — the optimizer, primarily — rather than held as global state,
// matching the teacher's preference for an explicit *Catalog receiver over
// package-level lookup tables.
type Catalog struct {
	tables map[string]*TableStatistics
}

// NewCatalog returns an empty Catalog. Callers populate it with Register as
// tables are loaded.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]*TableStatistics)}
}

// Register adds or replaces a table's statistics in the catalog.
func (c *Catalog) Register(stats *TableStatistics) {
	c.tables[stats.Name] = stats
}

// Table returns the named table's statistics, or (nil, false) if absent.
func (c *Catalog) Table(name string) (*TableStatistics, bool) {
	ts, ok := c.tables[name]
	return ts, ok
}
