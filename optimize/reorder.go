package optimize

import "github.com/dsglabs/relquery/plan"

// reorderJoins swaps a HashJoinNode's children when the right input's
// estimated cardinality is smaller than the left's, grounded on
// BasicOptimizer.optimizeJoins ("smaller relation on left" via
// canSwapJoinOrder/swapJoinPredicate). Every HashJoinNode in scope uses
// EqualityJoinPredicate, so the "can this predicate be swapped" check the
// original makes is unconditionally true here.
func (o *Optimizer) reorderJoins(node plan.PlanNode) plan.PlanNode {
	switch n := node.(type) {
	case *plan.HashJoinNode:
		left := o.reorderJoins(n.Left)
		right := o.reorderJoins(n.Right)

		leftCard := o.EstimateCardinality(left)
		rightCard := o.EstimateCardinality(right)
		if rightCard < leftCard {
			eq := n.Predicate.(*plan.EqualityJoinPredicate)
			return &plan.HashJoinNode{Left: right, Right: left, Predicate: eq.Swapped()}
		}
		return &plan.HashJoinNode{Left: left, Right: right, Predicate: n.Predicate}

	case *plan.FilterNode:
		return &plan.FilterNode{Input: o.reorderJoins(n.Input), Predicate: n.Predicate}
	case *plan.ProjectNode:
		return &plan.ProjectNode{Input: o.reorderJoins(n.Input), Columns: n.Columns, Distinct: n.Distinct}
	case *plan.SinkNode:
		return &plan.SinkNode{Input: o.reorderJoins(n.Input), Path: n.Path}
	}
	return node
}
