package catalog

import (
	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/tuple"
)

// BuildTableStatistics computes a TableStatistics by scanning rows exactly
// once, in the teacher's "statistics computed eagerly at load time, then
// immutable" style (the teacher's old catalog loaded table metadata once
// from its JSON descriptor and never recomputed it during a session). This
// engine has no persisted descriptor to read instead, so rows themselves
// are the source: min/max/distinct are counted exactly rather than sampled,
// since CSV tables are small enough to scan in full (spec.md Non-goals rule
// out large-scale/distributed storage).
func BuildTableStatistics(name string, schema *tuple.Schema, rows []tuple.Tuple, buildHistograms bool) *TableStatistics {
	columns := schema.Columns()
	colStats := make([]ColumnStatistics, len(columns))
	distinctSets := make([]map[string]struct{}, len(columns))
	numericValues := make([][]common.Value, len(columns))

	for i, c := range columns {
		colStats[i] = ColumnStatistics{
			Name: c.Name,
			Type: c.Type,
			Min:  common.NullValue(c.Type),
			Max:  common.NullValue(c.Type),
		}
		distinctSets[i] = make(map[string]struct{})
	}

	for _, row := range rows {
		for i := range columns {
			v := row.At(i)
			if v.IsNull() {
				continue
			}
			distinctSets[i][v.HashKey()] = struct{}{}

			cs := &colStats[i]
			if cs.Min.IsNull() && cs.Max.IsNull() {
				cs.Min, cs.Max = v, v
			} else {
				if v.Compare(cs.Min) < 0 {
					cs.Min = v
				}
				if v.Compare(cs.Max) > 0 {
					cs.Max = v
				}
			}
			if c := columns[i]; c.Type == common.IntType || c.Type == common.DoubleType {
				numericValues[i] = append(numericValues[i], v)
			}
		}
	}

	for i := range columns {
		colStats[i].Distinct = len(distinctSets[i])
		if buildHistograms && len(numericValues[i]) > 0 {
			colStats[i].Histogram = BuildHistogram(numericValues[i])
		}
	}

	return &TableStatistics{
		Name:     name,
		Schema:   schema,
		RowCount: len(rows),
		Columns:  colStats,
	}
}
