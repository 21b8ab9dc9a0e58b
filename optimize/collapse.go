package optimize

import "github.com/dsglabs/relquery/plan"

// collapseProjections merges a Project directly above another Project of
// the same distinctness into one Project reading straight from the
// grandchild, grounded on BasicOptimizer.optimizeProjections. Since a
// ProjectNode's Columns are plain names (not aliased expressions), the
// Java version's column-mapping step degenerates to keeping the parent's
// column list unchanged — a column name surviving two projections in a row
// still resolves against the grandchild's schema the same way.
func collapseProjections(node plan.PlanNode) plan.PlanNode {
	switch n := node.(type) {
	case *plan.ProjectNode:
		if child, ok := n.Input.(*plan.ProjectNode); ok && n.Distinct == child.Distinct {
			return &plan.ProjectNode{
				Input:    collapseProjections(child.Input),
				Columns:  n.Columns,
				Distinct: n.Distinct,
			}
		}
		return &plan.ProjectNode{Input: collapseProjections(n.Input), Columns: n.Columns, Distinct: n.Distinct}

	case *plan.FilterNode:
		return &plan.FilterNode{Input: collapseProjections(n.Input), Predicate: n.Predicate}
	case *plan.HashJoinNode:
		return &plan.HashJoinNode{Left: collapseProjections(n.Left), Right: collapseProjections(n.Right), Predicate: n.Predicate}
	case *plan.SinkNode:
		return &plan.SinkNode{Input: collapseProjections(n.Input), Path: n.Path}
	}
	return node
}
