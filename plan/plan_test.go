package plan

import (
	"testing"

	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/tuple"
	"github.com/stretchr/testify/assert"
)

func studentsSchema() *tuple.Schema {
	return tuple.NewSchema([]tuple.Column{
		{Name: "id", Type: common.IntType},
		{Name: "name", Type: common.StringType},
	})
}

func TestScanNodeOutputSchema(t *testing.T) {
	schema := studentsSchema()
	scan := &ScanNode{Table: "students", Schema: schema}
	assert.Equal(t, schema, scan.OutputSchema())
	assert.Empty(t, scan.Children())
}

func TestFilterNodeInheritsInputSchema(t *testing.T) {
	schema := studentsSchema()
	scan := &ScanNode{Table: "students", Schema: schema}
	filter := &FilterNode{Input: scan, Predicate: &ComparisonPredicate{Left: Col("id"), Op: Gt, Right: Lit(common.IntValue(0))}}
	assert.Equal(t, schema, filter.OutputSchema())
	assert.Equal(t, []PlanNode{scan}, filter.Children())
}

func TestProjectNodeOutputSchemaSubset(t *testing.T) {
	schema := studentsSchema()
	scan := &ScanNode{Table: "students", Schema: schema}
	proj := &ProjectNode{Input: scan, Columns: []string{"name"}}
	assert.Equal(t, 1, proj.OutputSchema().Arity())
	assert.Equal(t, "name", proj.OutputSchema().ColumnNames()[0])
}

func TestHashJoinNodeConcatsSchemas(t *testing.T) {
	left := &ScanNode{Table: "students", Schema: studentsSchema()}
	right := &ScanNode{Table: "enrollments", Schema: studentsSchema()}
	join := &HashJoinNode{Left: left, Right: right, Predicate: &EqualityJoinPredicate{Left: "id", Right: "id"}}
	assert.Equal(t, 4, join.OutputSchema().Arity())
	assert.Equal(t, []PlanNode{left, right}, join.Children())
}

func TestSinkNodeWrapsInput(t *testing.T) {
	scan := &ScanNode{Table: "students", Schema: studentsSchema()}
	sink := &SinkNode{Input: scan, Path: "out.csv"}
	assert.Equal(t, scan.OutputSchema(), sink.OutputSchema())
}
