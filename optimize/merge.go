package optimize

import "github.com/dsglabs/relquery/plan"

// mergeFilters combines a Filter directly above another Filter into one
// Filter carrying an AndPredicate of both, grounded on
// BasicOptimizer.mergeFilters. It recurses past non-adjacent filters and
// into every other node's children, same as the original.
func mergeFilters(node plan.PlanNode) plan.PlanNode {
	switch n := node.(type) {
	case *plan.FilterNode:
		if child, ok := n.Input.(*plan.FilterNode); ok {
			composite := &plan.AndPredicate{
				Clauses: append(append([]plan.Predicate{}, plan.Flatten(n.Predicate)...), plan.Flatten(child.Predicate)...),
			}
			grandchild := mergeFilters(child.Input)
			return &plan.FilterNode{Input: grandchild, Predicate: composite}
		}
		return &plan.FilterNode{Input: mergeFilters(n.Input), Predicate: n.Predicate}

	case *plan.HashJoinNode:
		return &plan.HashJoinNode{Left: mergeFilters(n.Left), Right: mergeFilters(n.Right), Predicate: n.Predicate}
	case *plan.ProjectNode:
		return &plan.ProjectNode{Input: mergeFilters(n.Input), Columns: n.Columns, Distinct: n.Distinct}
	case *plan.SinkNode:
		return &plan.SinkNode{Input: mergeFilters(n.Input), Path: n.Path}
	}
	return node
}
