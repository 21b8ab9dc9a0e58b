package exec

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/plan"
	"github.com/dsglabs/relquery/tuple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSource struct {
	tables map[string]struct {
		schema *tuple.Schema
		rows   []tuple.Tuple
	}
}

func newMemSource() *memSource {
	return &memSource{tables: make(map[string]struct {
		schema *tuple.Schema
		rows   []tuple.Tuple
	})}
}

func (m *memSource) add(name string, schema *tuple.Schema, rows []tuple.Tuple) {
	m.tables[name] = struct {
		schema *tuple.Schema
		rows   []tuple.Tuple
	}{schema, rows}
}

func (m *memSource) Table(name string) (*tuple.Schema, []tuple.Tuple, bool) {
	t, ok := m.tables[name]
	if !ok {
		return nil, nil, false
	}
	return t.schema, t.rows, true
}

func customersSchema() *tuple.Schema {
	return tuple.NewSchema([]tuple.Column{
		{Name: "id", Type: common.IntType},
		{Name: "name", Type: common.StringType},
		{Name: "age", Type: common.IntType},
	})
}

func customerRows(schema *tuple.Schema) []tuple.Tuple {
	return []tuple.Tuple{
		tuple.New(schema, []common.Value{common.IntValue(1), common.StringValue("Ann"), common.IntValue(25)}),
		tuple.New(schema, []common.Value{common.IntValue(2), common.StringValue("Bob"), common.IntValue(40)}),
		tuple.New(schema, []common.Value{common.IntValue(3), common.StringValue("Cal"), common.IntValue(35)}),
	}
}

// S1: scan -> filter(age>30) -> project(name) -> sink yields Bob, Cal.
func TestScanFilterProjectPipeline(t *testing.T) {
	schema := customersSchema()
	source := newMemSource()
	source.add("customers", schema, customerRows(schema))

	scanNode := &plan.ScanNode{Table: "customers", Schema: schema}
	filterNode := &plan.FilterNode{Input: scanNode, Predicate: &plan.ComparisonPredicate{Left: plan.Col("age"), Op: plan.Gt, Right: plan.Lit(common.IntValue(30))}}
	projectNode := &plan.ProjectNode{Input: filterNode, Columns: []string{"name"}}

	scan := NewScanExecutor(scanNode)
	filter := NewFilterExecutor(filterNode, scan)
	project := NewProjectExecutor(projectNode, filter)

	ctx := NewContext(source)
	require.NoError(t, project.Init(ctx))
	var names []string
	for project.Next() {
		names = append(names, project.Current().At(0).StringVal())
	}
	require.NoError(t, project.Error())
	require.NoError(t, project.Close())
	assert.Equal(t, []string{"Bob", "Cal"}, names)
}

func ordersSchema() *tuple.Schema {
	return tuple.NewSchema([]tuple.Column{
		{Name: "oid", Type: common.IntType},
		{Name: "cid", Type: common.IntType},
	})
}

// S2: scan(customers).join(scan(orders), id=cid).project(name,oid).
func TestHashJoinPipeline(t *testing.T) {
	cSchema := customersSchema()
	oSchema := ordersSchema()
	source := newMemSource()
	source.add("customers", cSchema, customerRows(cSchema))
	source.add("orders", oSchema, []tuple.Tuple{
		tuple.New(oSchema, []common.Value{common.IntValue(10), common.IntValue(2)}),
		tuple.New(oSchema, []common.Value{common.IntValue(11), common.IntValue(3)}),
		tuple.New(oSchema, []common.Value{common.IntValue(12), common.IntValue(9)}),
	})

	customersNode := &plan.ScanNode{Table: "customers", Schema: cSchema}
	ordersNode := &plan.ScanNode{Table: "orders", Schema: oSchema}
	joinNode := &plan.HashJoinNode{Left: customersNode, Right: ordersNode, Predicate: &plan.EqualityJoinPredicate{Left: "id", Right: "cid"}}
	projectNode := &plan.ProjectNode{Input: joinNode, Columns: []string{"name", "oid"}}

	join := NewHashJoinExecutor(joinNode, NewScanExecutor(customersNode), NewScanExecutor(ordersNode))
	project := NewProjectExecutor(projectNode, join)

	ctx := NewContext(source)
	require.NoError(t, project.Init(ctx))
	var got []string
	for project.Next() {
		row := project.Current()
		got = append(got, row.At(0).StringVal()+","+row.At(1).CanonicalString())
	}
	require.NoError(t, project.Error())
	require.NoError(t, project.Close())
	assert.ElementsMatch(t, []string{"Bob,10", "Cal,11"}, got)
}

// S6: project(name, distinct=true) over (1,Ann),(2,Ann),(3,Bob) yields
// {Ann, Bob} with Ann first.
func TestDistinctProjectionFirstSeenOrder(t *testing.T) {
	schema := tuple.NewSchema([]tuple.Column{
		{Name: "id", Type: common.IntType},
		{Name: "name", Type: common.StringType},
	})
	rows := []tuple.Tuple{
		tuple.New(schema, []common.Value{common.IntValue(1), common.StringValue("Ann")}),
		tuple.New(schema, []common.Value{common.IntValue(2), common.StringValue("Ann")}),
		tuple.New(schema, []common.Value{common.IntValue(3), common.StringValue("Bob")}),
	}
	source := newMemSource()
	source.add("t", schema, rows)

	scanNode := &plan.ScanNode{Table: "t", Schema: schema}
	projectNode := &plan.ProjectNode{Input: scanNode, Columns: []string{"name"}, Distinct: true}
	project := NewProjectExecutor(projectNode, NewScanExecutor(scanNode))

	ctx := NewContext(source)
	require.NoError(t, project.Init(ctx))
	var names []string
	for project.Next() {
		names = append(names, project.Current().At(0).StringVal())
	}
	require.NoError(t, project.Close())
	assert.Equal(t, []string{"Ann", "Bob"}, names)
}

func TestHashJoinSkipsNullKeys(t *testing.T) {
	schema := tuple.NewSchema([]tuple.Column{{Name: "k", Type: common.IntType}})
	source := newMemSource()
	leftRows := []tuple.Tuple{
		tuple.New(schema, []common.Value{common.NullValue(common.IntType)}),
		tuple.New(schema, []common.Value{common.IntValue(1)}),
	}
	rightRows := []tuple.Tuple{
		tuple.New(schema, []common.Value{common.NullValue(common.IntType)}),
		tuple.New(schema, []common.Value{common.IntValue(1)}),
	}
	source.add("l", schema, leftRows)
	source.add("r", schema, rightRows)

	leftNode := &plan.ScanNode{Table: "l", Schema: schema}
	rightNode := &plan.ScanNode{Table: "r", Schema: schema}
	joinNode := &plan.HashJoinNode{Left: leftNode, Right: rightNode, Predicate: &plan.EqualityJoinPredicate{Left: "k", Right: "k"}}
	join := NewHashJoinExecutor(joinNode, NewScanExecutor(leftNode), NewScanExecutor(rightNode))

	ctx := NewContext(source)
	require.NoError(t, join.Init(ctx))
	count := 0
	for join.Next() {
		count++
	}
	require.NoError(t, join.Close())
	assert.Equal(t, 1, count)
}

func TestHashJoinNumericWideningAcrossIntAndDouble(t *testing.T) {
	leftSchema := tuple.NewSchema([]tuple.Column{{Name: "k", Type: common.IntType}})
	rightSchema := tuple.NewSchema([]tuple.Column{{Name: "k", Type: common.DoubleType}})
	source := newMemSource()
	source.add("l", leftSchema, []tuple.Tuple{tuple.New(leftSchema, []common.Value{common.IntValue(3)})})
	source.add("r", rightSchema, []tuple.Tuple{tuple.New(rightSchema, []common.Value{common.DoubleValue(3.0)})})

	leftNode := &plan.ScanNode{Table: "l", Schema: leftSchema}
	rightNode := &plan.ScanNode{Table: "r", Schema: rightSchema}
	joinNode := &plan.HashJoinNode{Left: leftNode, Right: rightNode, Predicate: &plan.EqualityJoinPredicate{Left: "k", Right: "k"}}
	join := NewHashJoinExecutor(joinNode, NewScanExecutor(leftNode), NewScanExecutor(rightNode))

	ctx := NewContext(source)
	require.NoError(t, join.Init(ctx))
	require.True(t, join.Next())
	require.NoError(t, join.Close())
}

func TestSinkWritesCSV(t *testing.T) {
	schema := customersSchema()
	source := newMemSource()
	source.add("customers", schema, customerRows(schema))

	scanNode := &plan.ScanNode{Table: "customers", Schema: schema}
	sinkNode := &plan.SinkNode{Input: scanNode, Path: "unused"}
	sink := NewSinkExecutor(sinkNode, NewScanExecutor(scanNode))

	var buf bytes.Buffer
	sink.newWriter = func(s *tuple.Schema) (io.Writer, func() error, error) {
		return &buf, func() error { return nil }, nil
	}

	ctx := NewContext(source)
	require.NoError(t, sink.Init(ctx))
	require.False(t, sink.Next())
	require.NoError(t, sink.Error())
	require.NoError(t, sink.Close())
	assert.Equal(t, 3, sink.RowsWritten())
	assert.True(t, strings.Contains(buf.String(), "Bob"))
}

func TestExecuteClosesOnError(t *testing.T) {
	schema := customersSchema()
	source := newMemSource()
	// no "customers" table registered -> Init returns an error
	scanNode := &plan.ScanNode{Table: "customers", Schema: schema}
	scan := NewScanExecutor(scanNode)
	ctx := NewContext(source)
	err := Execute(scan, ctx)
	assert.Error(t, err)
	assert.Equal(t, lifecycleClosed, scan.state)
}
