package exec

import (
	"github.com/dsglabs/relquery/plan"
	"github.com/dsglabs/relquery/trace"
	"github.com/dsglabs/relquery/tuple"
)

// FilterExecutor pulls from Input and re-emits only tuples for which
// Predicate evaluates true (spec.md §4.2).
type FilterExecutor struct {
	node  *plan.FilterNode
	input Executor
	state lifecycle
	err   error

	current tuple.Tuple
	tracer  trace.Tracer
}

// NewFilterExecutor builds a FilterExecutor reading from input.
func NewFilterExecutor(node *plan.FilterNode, input Executor) *FilterExecutor {
	return &FilterExecutor{node: node, input: input}
}

func (e *FilterExecutor) PlanNode() plan.PlanNode { return e.node }

func (e *FilterExecutor) Init(ctx *ExecutorContext) error {
	if e.state != lifecycleUnopened {
		return misuseError("Filter: Init called more than once")
	}
	if err := e.input.Init(ctx); err != nil {
		return err
	}
	e.tracer = ctx.tracer()
	e.state = lifecycleOpen
	e.tracer.Event("Filter", "open", e.node.Predicate.String())
	return nil
}

func (e *FilterExecutor) Next() bool {
	if e.state != lifecycleOpen {
		e.err = misuseError("Filter: Next called before Init or after Close")
		return false
	}
	for e.input.Next() {
		candidate := e.input.Current()
		if e.node.Predicate.Eval(candidate, e.tracer) {
			e.current = candidate
			e.tracer.Event("Filter", "next", "match")
			return true
		}
	}
	if err := e.input.Error(); err != nil {
		e.err = err
	}
	e.tracer.Event("Filter", "next", "exhausted")
	return false
}

func (e *FilterExecutor) Current() tuple.Tuple { return e.current }
func (e *FilterExecutor) Error() error          { return e.err }

func (e *FilterExecutor) Close() error {
	if e.state == lifecycleClosed {
		return nil
	}
	e.state = lifecycleClosed
	err := e.input.Close()
	if e.tracer != nil {
		e.tracer.Event("Filter", "close", "")
	}
	return err
}
