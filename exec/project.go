package exec

import (
	"github.com/dsglabs/relquery/plan"
	"github.com/dsglabs/relquery/trace"
	"github.com/dsglabs/relquery/tuple"
)

// ProjectExecutor narrows each input tuple to Node.Columns, skipping
// already-emitted rows when Node.Distinct is set (spec.md §4.4), grounded
// on ProjectOperator.java's seenTuples set — first-seen order is preserved
// because a duplicate is simply skipped rather than reordered.
type ProjectExecutor struct {
	node  *plan.ProjectNode
	input Executor
	state lifecycle
	err   error

	seen    map[string]struct{}
	current tuple.Tuple
	tracer  trace.Tracer
}

// NewProjectExecutor builds a ProjectExecutor reading from input.
func NewProjectExecutor(node *plan.ProjectNode, input Executor) *ProjectExecutor {
	return &ProjectExecutor{node: node, input: input}
}

func (e *ProjectExecutor) PlanNode() plan.PlanNode { return e.node }

func (e *ProjectExecutor) Init(ctx *ExecutorContext) error {
	if e.state != lifecycleUnopened {
		return misuseError("Project: Init called more than once")
	}
	if err := e.input.Init(ctx); err != nil {
		return err
	}
	if e.node.Distinct {
		e.seen = make(map[string]struct{})
	}
	e.tracer = ctx.tracer()
	e.state = lifecycleOpen
	e.tracer.Event("Project", "open", "")
	return nil
}

func (e *ProjectExecutor) Next() bool {
	if e.state != lifecycleOpen {
		e.err = misuseError("Project: Next called before Init or after Close")
		return false
	}
	for e.input.Next() {
		projected := e.input.Current().Project(e.node.Columns)
		if e.node.Distinct {
			key := projected.ProjectionKey()
			if _, dup := e.seen[key]; dup {
				continue
			}
			e.seen[key] = struct{}{}
		}
		e.current = projected
		e.tracer.Event("Project", "next", "")
		return true
	}
	if err := e.input.Error(); err != nil {
		e.err = err
	}
	e.tracer.Event("Project", "next", "exhausted")
	return false
}

func (e *ProjectExecutor) Current() tuple.Tuple { return e.current }
func (e *ProjectExecutor) Error() error          { return e.err }

func (e *ProjectExecutor) Close() error {
	if e.state == lifecycleClosed {
		return nil
	}
	e.state = lifecycleClosed
	err := e.input.Close()
	e.seen = nil
	if e.tracer != nil {
		e.tracer.Event("Project", "close", "")
	}
	return err
}
