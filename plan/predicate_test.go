package plan

import (
	"testing"

	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/trace"
	"github.com/dsglabs/relquery/tuple"
	"github.com/stretchr/testify/assert"
)

func ageSchema() *tuple.Schema {
	return tuple.NewSchema([]tuple.Column{
		{Name: "age", Type: common.IntType},
		{Name: "name", Type: common.StringType},
	})
}

func TestComparisonPredicateEval(t *testing.T) {
	schema := ageSchema()
	row := tuple.New(schema, []common.Value{common.IntValue(21), common.StringValue("Ann")})

	pred := &ComparisonPredicate{Left: Col("age"), Op: Gte, Right: Lit(common.IntValue(18))}
	assert.True(t, pred.Eval(row, trace.NoopTracer{}))

	pred2 := &ComparisonPredicate{Left: Col("age"), Op: Lt, Right: Lit(common.IntValue(18))}
	assert.False(t, pred2.Eval(row, trace.NoopTracer{}))
}

func TestComparisonPredicateNullOperandIsFalse(t *testing.T) {
	schema := ageSchema()
	row := tuple.New(schema, []common.Value{common.NullValue(common.IntType), common.StringValue("Ann")})
	pred := &ComparisonPredicate{Left: Col("age"), Op: Eq, Right: Lit(common.IntValue(18))}
	assert.False(t, pred.Eval(row, trace.NoopTracer{}))
}

func TestAndPredicateShortCircuits(t *testing.T) {
	schema := ageSchema()
	row := tuple.New(schema, []common.Value{common.IntValue(21), common.StringValue("Ann")})

	and := &AndPredicate{Clauses: []Predicate{
		&ComparisonPredicate{Left: Col("age"), Op: Gte, Right: Lit(common.IntValue(18))},
		&ComparisonPredicate{Left: Col("name"), Op: Eq, Right: Lit(common.StringValue("Bob"))},
	}}
	assert.False(t, and.Eval(row, trace.NoopTracer{}))
}

func TestFlattenNonAndPredicate(t *testing.T) {
	p := &ComparisonPredicate{Left: Col("age"), Op: Eq, Right: Lit(common.IntValue(1))}
	flat := Flatten(p)
	assert.Len(t, flat, 1)
	assert.Same(t, p, flat[0])
}

func TestEqualityJoinPredicateSwapped(t *testing.T) {
	p := &EqualityJoinPredicate{Left: "a.id", Right: "b.id"}
	swapped := p.Swapped()
	assert.Equal(t, "b.id", swapped.Left)
	assert.Equal(t, "a.id", swapped.Right)
}
