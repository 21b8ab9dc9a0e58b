package builder

import (
	"testing"

	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/plan"
	"github.com/dsglabs/relquery/tuple"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePredicateIntegerLiteral(t *testing.T) {
	pred, err := ParsePredicate("age > 30")
	require.NoError(t, err)
	cmp := pred.(*plan.ComparisonPredicate)
	assert.Equal(t, "age", cmp.Left.Column)
	assert.Equal(t, plan.Gt, cmp.Op)
	assert.Equal(t, common.IntValue(30), cmp.Right.Literal)
}

func TestParsePredicateDoubleLiteral(t *testing.T) {
	pred, err := ParsePredicate("gpa >= 3.5")
	require.NoError(t, err)
	cmp := pred.(*plan.ComparisonPredicate)
	assert.Equal(t, common.DoubleValue(3.5), cmp.Right.Literal)
}

func TestParsePredicateStringLiteral(t *testing.T) {
	pred, err := ParsePredicate(`name = "Ann"`)
	require.NoError(t, err)
	cmp := pred.(*plan.ComparisonPredicate)
	assert.Equal(t, common.StringValue("Ann"), cmp.Right.Literal)
}

func TestParsePredicateColumnToColumn(t *testing.T) {
	pred, err := ParsePredicate("id = cid")
	require.NoError(t, err)
	cmp := pred.(*plan.ComparisonPredicate)
	assert.Equal(t, "id", cmp.Left.Column)
	assert.Equal(t, "cid", cmp.Right.Column)
}

func TestParsePredicateMalformedErrors(t *testing.T) {
	_, err := ParsePredicate("age > ")
	assert.Error(t, err)

	_, err = ParsePredicate("age ?? 30")
	assert.Error(t, err)
}

func studentsSchema() *tuple.Schema {
	return tuple.NewSchema([]tuple.Column{
		{Name: "id", Type: common.IntType},
		{Name: "name", Type: common.StringType},
		{Name: "age", Type: common.IntType},
	})
}

func TestBuilderChain(t *testing.T) {
	tree, err := Scan("students", studentsSchema()).
		Filter("age > 30").
		Project("name").
		Sink("out.csv")
	require.NoError(t, err)

	sink, ok := tree.(*plan.SinkNode)
	require.True(t, ok)
	proj, ok := sink.Input.(*plan.ProjectNode)
	require.True(t, ok)
	_, ok = proj.Input.(*plan.FilterNode)
	require.True(t, ok)
}

func TestBuilderJoin(t *testing.T) {
	left := Scan("students", studentsSchema())
	right := Scan("enrollments", studentsSchema())
	tree, err := left.Join(right, "id", "age").Project("name").Sink("out.csv")
	require.NoError(t, err)

	sink := tree.(*plan.SinkNode)
	proj := sink.Input.(*plan.ProjectNode)
	join, ok := proj.Input.(*plan.HashJoinNode)
	require.True(t, ok)
	eq := join.Predicate.(*plan.EqualityJoinPredicate)
	assert.Equal(t, "id", eq.Left)
	assert.Equal(t, "age", eq.Right)
}

func TestBuilderPropagatesFilterParseError(t *testing.T) {
	_, err := Scan("students", studentsSchema()).Filter("age ???").Project("name").Sink("out.csv")
	assert.Error(t, err)
}
