package plan

import (
	"fmt"
)

// JoinPredicate determines whether a left tuple and a right tuple match
// (spec.md §4.6). EqualityJoinPredicate is the only implementation in
// scope — the teacher's planner/join_node.go supports arbitrary join
// conditions across several join strategies, but spec.md scopes HashJoin
// down to a single equi-join column pair.
type JoinPredicate interface {
	LeftColumn() string
	RightColumn() string
	String() string
}

// EqualityJoinPredicate matches rows where Left (a column of the left
// input) equals Right (a column of the right input), under the same
// numeric-widening coercion Value.Compare uses (spec.md §4.6/§4.7).
type EqualityJoinPredicate struct {
	Left, Right string
}

func (p *EqualityJoinPredicate) LeftColumn() string  { return p.Left }
func (p *EqualityJoinPredicate) RightColumn() string { return p.Right }
func (p *EqualityJoinPredicate) String() string {
	return fmt.Sprintf("%s = %s", p.Left, p.Right)
}

// Swapped returns the predicate with its left/right columns exchanged,
// for use when the optimizer's join-reordering pass swaps a HashJoinNode's
// Left and Right children (spec.md §4.8: the optimizer may reorder a
// join's children to put the smaller estimated input on the build side).
func (p *EqualityJoinPredicate) Swapped() *EqualityJoinPredicate {
	return &EqualityJoinPredicate{Left: p.Right, Right: p.Left}
}

// BuildKeyColumn and ProbeKeyColumn name which column of a tuple's own
// schema to hash when it arrives from the build (left) or probe (right)
// side of a HashJoinNode.
func (p *EqualityJoinPredicate) BuildKeyColumn() string { return p.Left }
func (p *EqualityJoinPredicate) ProbeKeyColumn() string { return p.Right }
