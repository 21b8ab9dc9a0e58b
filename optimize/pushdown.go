package optimize

import "github.com/dsglabs/relquery/plan"

// pushDownFilters moves a FilterNode toward the leaves of the plan,
// grounded on BasicOptimizer.pushDownFilters: a filter above a join is
// pushed to whichever side's output schema covers every column the
// predicate references; a filter above a project is pushed below it when
// the predicate only touches already-projected columns. A filter that
// cannot be pushed through its immediate child recurses into the child
// instead, exactly as the original's fallthrough "recursively optimize the
// child" branch does.
func pushDownFilters(node plan.PlanNode) plan.PlanNode {
	switch n := node.(type) {
	case *plan.FilterNode:
		switch child := n.Input.(type) {
		case *plan.HashJoinNode:
			cols := referencedColumns(n.Predicate)
			if coveredBy(cols, child.Left.OutputSchema().ColumnNames()) {
				return &plan.HashJoinNode{
					Left:      pushDownFilters(&plan.FilterNode{Input: child.Left, Predicate: n.Predicate}),
					Right:     child.Right,
					Predicate: child.Predicate,
				}
			}
			if coveredBy(cols, child.Right.OutputSchema().ColumnNames()) {
				return &plan.HashJoinNode{
					Left:      child.Left,
					Right:     pushDownFilters(&plan.FilterNode{Input: child.Right, Predicate: n.Predicate}),
					Predicate: child.Predicate,
				}
			}
		case *plan.ProjectNode:
			if coveredBy(referencedColumns(n.Predicate), child.Columns) {
				return &plan.ProjectNode{
					Input:    pushDownFilters(&plan.FilterNode{Input: child.Input, Predicate: n.Predicate}),
					Columns:  child.Columns,
					Distinct: child.Distinct,
				}
			}
		}
		optimizedChild := pushDownFilters(n.Input)
		return &plan.FilterNode{Input: optimizedChild, Predicate: n.Predicate}

	case *plan.HashJoinNode:
		return &plan.HashJoinNode{
			Left:      pushDownFilters(n.Left),
			Right:     pushDownFilters(n.Right),
			Predicate: n.Predicate,
		}
	case *plan.ProjectNode:
		return &plan.ProjectNode{Input: pushDownFilters(n.Input), Columns: n.Columns, Distinct: n.Distinct}
	case *plan.SinkNode:
		return &plan.SinkNode{Input: pushDownFilters(n.Input), Path: n.Path}
	}
	return node
}

// referencedColumns collects every column name a predicate tree mentions
// (spec.md §4.2), matching getReferencedAttributes.
func referencedColumns(pred plan.Predicate) []string {
	var cols []string
	var walk func(plan.Predicate)
	walk = func(p plan.Predicate) {
		switch v := p.(type) {
		case *plan.ComparisonPredicate:
			if v.Left.Column != "" {
				cols = append(cols, v.Left.Column)
			}
			if v.Right.Column != "" {
				cols = append(cols, v.Right.Column)
			}
		case *plan.AndPredicate:
			for _, c := range v.Clauses {
				walk(c)
			}
		}
	}
	walk(pred)
	return cols
}

// coveredBy reports whether every entry of cols appears in available,
// matching predicateOnlyReferencesAttributes's containsAll check.
func coveredBy(cols, available []string) bool {
	set := make(map[string]bool, len(available))
	for _, a := range available {
		set[a] = true
	}
	for _, c := range cols {
		if !set[c] {
			return false
		}
	}
	return true
}
