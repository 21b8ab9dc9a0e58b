// Package plan defines the logical query plan tree spec.md §4 describes:
// Scan, Filter, Project, HashJoin, and Sink nodes, plus the predicate types
// Filter and HashJoin carry. This mirrors the teacher's planner package —
// PlanNode is the teacher's own interface name and shape (OutputSchema,
// Children, String) — generalized from the teacher's disk-table scan/join
// variants down to the five node kinds spec.md scopes in, and dropping the
// teacher's NestedLoopJoinNode/IndexNestedLoopJoinNode/SortMergeJoinNode
// (Non-goal: secondary join algorithms; the optimizer never chooses between
// join strategies here, since HashJoin is the only one in scope).
package plan

import (
	"fmt"
	"strings"

	"github.com/dsglabs/relquery/tuple"
)

// PlanNode is one node of a logical query plan. Every node knows its own
// output schema (computed from its children, not carried as separate
// state) and can render itself for debugging.
type PlanNode interface {
	OutputSchema() *tuple.Schema
	Children() []PlanNode
	String() string
}

// ScanNode reads an entire table by name (spec.md §4.1). Table is resolved
// against a catalog/source map at execution time, not at plan-construction
// time, so a ScanNode is just a name plus the schema it will produce.
type ScanNode struct {
	Table  string
	Schema *tuple.Schema
}

func (n *ScanNode) OutputSchema() *tuple.Schema { return n.Schema }
func (n *ScanNode) Children() []PlanNode        { return nil }
func (n *ScanNode) String() string              { return fmt.Sprintf("Scan(%s)", n.Table) }

// FilterNode keeps only rows matching Predicate (spec.md §4.2).
type FilterNode struct {
	Input     PlanNode
	Predicate Predicate
}

func (n *FilterNode) OutputSchema() *tuple.Schema { return n.Input.OutputSchema() }
func (n *FilterNode) Children() []PlanNode        { return []PlanNode{n.Input} }
func (n *FilterNode) String() string {
	return fmt.Sprintf("Filter(%s)[%s]", n.Predicate, n.Input)
}

// ProjectNode keeps only the named columns, in order, optionally
// deduplicating identical output rows (spec.md §4.4).
type ProjectNode struct {
	Input    PlanNode
	Columns  []string
	Distinct bool
}

func (n *ProjectNode) OutputSchema() *tuple.Schema { return n.Input.OutputSchema().Project(n.Columns) }
func (n *ProjectNode) Children() []PlanNode        { return []PlanNode{n.Input} }
func (n *ProjectNode) String() string {
	tag := ""
	if n.Distinct {
		tag = " distinct"
	}
	return fmt.Sprintf("Project(%s)%s[%s]", strings.Join(n.Columns, ","), tag, n.Input)
}

// HashJoinNode combines Left and Right rows matching JoinPredicate, emitting
// left-schema-then-right-schema tuples (spec.md §4.6).
type HashJoinNode struct {
	Left, Right PlanNode
	Predicate   JoinPredicate
}

func (n *HashJoinNode) OutputSchema() *tuple.Schema {
	return n.Left.OutputSchema().Concat(n.Right.OutputSchema())
}
func (n *HashJoinNode) Children() []PlanNode { return []PlanNode{n.Left, n.Right} }
func (n *HashJoinNode) String() string {
	return fmt.Sprintf("HashJoin(%s)[%s, %s]", n.Predicate, n.Left, n.Right)
}

// SinkNode writes its input's rows to an output destination (spec.md
// §4.5). Path names the output file; the executor layer decides how to
// open it.
type SinkNode struct {
	Input PlanNode
	Path  string
}

func (n *SinkNode) OutputSchema() *tuple.Schema { return n.Input.OutputSchema() }
func (n *SinkNode) Children() []PlanNode        { return []PlanNode{n.Input} }
func (n *SinkNode) String() string              { return fmt.Sprintf("Sink(%s)[%s]", n.Path, n.Input) }
