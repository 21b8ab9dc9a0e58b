package plan

import (
	"fmt"

	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/trace"
	"github.com/dsglabs/relquery/tuple"
)

// CompareOp is the set of comparison operators a ComparisonPredicate
// supports (spec.md §4.2): equal, not-equal, and the four orderings.
type CompareOp int

const (
	Eq CompareOp = iota
	Neq
	Lt
	Lte
	Gt
	Gte
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Gt:
		return ">"
	case Gte:
		return ">="
	}
	return "?"
}

// Operand is one side of a ComparisonPredicate: either a column reference,
// resolved against the tuple's schema at evaluation time, or a literal
// Value bound at plan-construction time. This mirrors the teacher's
// BoundValueExpr/LiteralExpr split in planner/expr.go, simplified to the
// two operand kinds spec.md §4.2 needs (no arithmetic/concat/like
// expressions, which are out of scope).
type Operand struct {
	Column  string // empty when Literal is used
	Literal common.Value
	isLit   bool
}

// Col builds a column-reference Operand.
func Col(name string) Operand { return Operand{Column: name} }

// Lit builds a literal Operand.
func Lit(v common.Value) Operand { return Operand{Literal: v, isLit: true} }

func (o Operand) resolve(t tuple.Tuple) common.Value {
	if o.isLit {
		return o.Literal
	}
	return t.Get(o.Column)
}

func (o Operand) String() string {
	if o.isLit {
		return o.Literal.String()
	}
	return o.Column
}

// Predicate is a boolean expression evaluated against one tuple. Only the
// AND/comparison combinators spec.md §4.2 names are in scope (no OR/NOT —
// see spec.md Non-goals).
type Predicate interface {
	Eval(t tuple.Tuple, tr trace.Tracer) bool
	String() string
}

// ComparisonPredicate compares Left against Right with Op, resolving each
// side as a column lookup or a literal. Per spec.md §4.7 rule 2, if either
// side resolves to a null Value the predicate is false for every Op —
// Value.Compare is never invoked with a null operand.
type ComparisonPredicate struct {
	Left  Operand
	Op    CompareOp
	Right Operand
}

func (p *ComparisonPredicate) Eval(t tuple.Tuple, tr trace.Tracer) bool {
	lv := p.Left.resolve(t)
	rv := p.Right.resolve(t)
	if lv.IsNull() || rv.IsNull() {
		tr.Event("ComparisonPredicate", "eval", "null operand, false")
		return false
	}
	cmp := lv.Compare(rv)
	result := evalCompare(p.Op, cmp)
	tr.Event("ComparisonPredicate", "eval", fmt.Sprintf("%s %s %s -> %v", p.Left, p.Op, p.Right, result))
	return result
}

func evalCompare(op CompareOp, cmp int) bool {
	switch op {
	case Eq:
		return cmp == 0
	case Neq:
		return cmp != 0
	case Lt:
		return cmp < 0
	case Lte:
		return cmp <= 0
	case Gt:
		return cmp > 0
	case Gte:
		return cmp >= 0
	}
	return false
}

func (p *ComparisonPredicate) String() string {
	return fmt.Sprintf("%s %s %s", p.Left, p.Op, p.Right)
}

// AndPredicate is the short-circuiting conjunction of its Clauses
// (spec.md §4.2/§4.8): evaluation stops at the first false clause, and
// estimated selectivity is the product of each clause's selectivity
// (§4.8), which the optimizer's estimateSelectivity computes over Clauses.
type AndPredicate struct {
	Clauses []Predicate
}

func (p *AndPredicate) Eval(t tuple.Tuple, tr trace.Tracer) bool {
	for _, c := range p.Clauses {
		if !c.Eval(t, tr) {
			tr.Event("AndPredicate", "eval", "short-circuit false")
			return false
		}
	}
	tr.Event("AndPredicate", "eval", "true")
	return true
}

func (p *AndPredicate) String() string {
	s := ""
	for i, c := range p.Clauses {
		if i > 0 {
			s += " AND "
		}
		s += c.String()
	}
	return s
}

// Flatten returns an AndPredicate's clauses, or a one-element slice
// containing pred itself if it is not an AndPredicate. optimize's filter
// merge pass uses this to combine stacked Filter nodes into a single
// AndPredicate without nesting AndPredicate-of-AndPredicate.
func Flatten(pred Predicate) []Predicate {
	if and, ok := pred.(*AndPredicate); ok {
		return and.Clauses
	}
	return []Predicate{pred}
}
