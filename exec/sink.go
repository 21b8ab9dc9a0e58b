package exec

import (
	"io"
	"os"

	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/csvio"
	"github.com/dsglabs/relquery/plan"
	"github.com/dsglabs/relquery/trace"
	"github.com/dsglabs/relquery/tuple"
)

// SinkExecutor writes every input tuple to a CSV file (spec.md §4.5). A
// Sink is where spec.md §4.5's "implementation must pick one [pull
// strategy] and document it" applies concretely: SinkExecutor drives its
// own pull loop internally inside Next rather than exposing one output row
// per Next call, because a sink has no downstream consumer to pace it —
// the first (and only) Next call drains Input completely and writes every
// row, then reports false on every subsequent call. This mirrors
// SinkOperator's role in the original as the tree's sole driver of
// next()-in-a-loop.
type SinkExecutor struct {
	node  *plan.SinkNode
	input Executor
	state lifecycle
	err   error

	newWriter func(schema *tuple.Schema) (io.Writer, func() error, error)
	drained   bool
	rowCount  int
	tracer    trace.Tracer
}

// NewSinkExecutor builds a SinkExecutor that writes to node.Path on disk.
func NewSinkExecutor(node *plan.SinkNode, input Executor) *SinkExecutor {
	return &SinkExecutor{
		node:  node,
		input: input,
		newWriter: func(schema *tuple.Schema) (io.Writer, func() error, error) {
			f, err := os.Create(node.Path)
			if err != nil {
				return nil, nil, common.NewError(common.IOError, "creating sink file %s: %v", node.Path, err)
			}
			return f, f.Close, nil
		},
	}
}

func (e *SinkExecutor) PlanNode() plan.PlanNode { return e.node }

func (e *SinkExecutor) Init(ctx *ExecutorContext) error {
	if e.state != lifecycleUnopened {
		return misuseError("Sink: Init called more than once")
	}
	if err := e.input.Init(ctx); err != nil {
		return err
	}
	e.tracer = ctx.tracer()
	e.state = lifecycleOpen
	e.tracer.Event("Sink", "open", e.node.Path)
	return nil
}

func (e *SinkExecutor) Next() bool {
	if e.state != lifecycleOpen {
		e.err = misuseError("Sink: Next called before Init or after Close")
		return false
	}
	if e.drained {
		return false
	}
	e.drained = true

	w, closeFn, err := e.newWriter(e.node.Input.OutputSchema())
	if err != nil {
		e.err = err
		return false
	}
	defer closeFn()

	writer, err := csvio.NewWriter(w, e.node.Input.OutputSchema())
	if err != nil {
		e.err = err
		return false
	}
	for e.input.Next() {
		if err := writer.Write(e.input.Current()); err != nil {
			e.err = err
			return false
		}
		e.rowCount++
	}
	if err := e.input.Error(); err != nil {
		e.err = err
		return false
	}
	if err := writer.Flush(); err != nil {
		e.err = err
		return false
	}
	e.tracer.Event("Sink", "next", "drained")
	return false
}

func (e *SinkExecutor) Current() tuple.Tuple { return tuple.Tuple{} }
func (e *SinkExecutor) Error() error          { return e.err }

// RowsWritten returns the number of rows written to the sink, valid after
// Next has been called once.
func (e *SinkExecutor) RowsWritten() int { return e.rowCount }

func (e *SinkExecutor) Close() error {
	if e.state == lifecycleClosed {
		return nil
	}
	e.state = lifecycleClosed
	err := e.input.Close()
	if e.tracer != nil {
		e.tracer.Event("Sink", "close", "")
	}
	return err
}
