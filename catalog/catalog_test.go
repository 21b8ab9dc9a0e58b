package catalog

import (
	"testing"

	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/tuple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gpaSchema() *tuple.Schema {
	return tuple.NewSchema([]tuple.Column{
		{Name: "id", Type: common.IntType},
		{Name: "gpa", Type: common.DoubleType},
	})
}

func TestBuildTableStatisticsMinMaxDistinct(t *testing.T) {
	schema := gpaSchema()
	rows := []tuple.Tuple{
		tuple.New(schema, []common.Value{common.IntValue(1), common.DoubleValue(3.5)}),
		tuple.New(schema, []common.Value{common.IntValue(2), common.DoubleValue(3.9)}),
		tuple.New(schema, []common.Value{common.IntValue(2), common.NullValue(common.DoubleType)}),
	}

	stats := BuildTableStatistics("students", schema, rows, false)
	assert.Equal(t, 3, stats.RowCount)

	id := stats.ColumnStats("id")
	require.NotNil(t, id)
	assert.Equal(t, 2, id.Distinct)
	assert.Equal(t, 0, id.Min.Compare(common.IntValue(1)))
	assert.Equal(t, 0, id.Max.Compare(common.IntValue(2)))

	gpa := stats.ColumnStats("gpa")
	require.NotNil(t, gpa)
	assert.Equal(t, 2, gpa.Distinct)
	assert.Nil(t, gpa.Histogram)
}

func TestBuildTableStatisticsWithHistograms(t *testing.T) {
	schema := gpaSchema()
	rows := []tuple.Tuple{
		tuple.New(schema, []common.Value{common.IntValue(1), common.DoubleValue(1.0)}),
		tuple.New(schema, []common.Value{common.IntValue(2), common.DoubleValue(5.0)}),
		tuple.New(schema, []common.Value{common.IntValue(3), common.DoubleValue(9.0)}),
	}
	stats := BuildTableStatistics("students", schema, rows, true)
	gpa := stats.ColumnStats("gpa")
	require.NotNil(t, gpa.Histogram)
	sel := gpa.Histogram.EstimateEquality(common.DoubleValue(5.0))
	assert.Greater(t, sel, 0.0)
	assert.LessOrEqual(t, sel, 1.0)
}

func TestCatalogRegisterAndLookup(t *testing.T) {
	cat := NewCatalog()
	schema := gpaSchema()
	cat.Register(&TableStatistics{Name: "students", Schema: schema, RowCount: 0})

	ts, ok := cat.Table("students")
	assert.True(t, ok)
	assert.Equal(t, "students", ts.Name)

	_, ok = cat.Table("missing")
	assert.False(t, ok)
}
