package exec

import (
	"github.com/dsglabs/relquery/plan"
	"github.com/dsglabs/relquery/trace"
	"github.com/dsglabs/relquery/tuple"
)

// ScanExecutor walks a table's rows in load order (spec.md §4.1). Rows are
// resolved once, at Init, from the ExecutorContext's TableSource — there is
// no page-by-page streaming since Non-goals rule out persistent/paged
// storage.
type ScanExecutor struct {
	node  *plan.ScanNode
	state lifecycle
	err   error

	rows    []tuple.Tuple
	pos     int
	current tuple.Tuple
	tracer  trace.Tracer
}

// NewScanExecutor builds a ScanExecutor for node.
func NewScanExecutor(node *plan.ScanNode) *ScanExecutor {
	return &ScanExecutor{node: node}
}

func (e *ScanExecutor) PlanNode() plan.PlanNode { return e.node }

func (e *ScanExecutor) Init(ctx *ExecutorContext) error {
	if e.state != lifecycleUnopened {
		return misuseError("Scan(%s): Init called more than once", e.node.Table)
	}
	schema, rows, ok := ctx.Sources.Table(e.node.Table)
	if !ok {
		return misuseError("Scan(%s): table not found", e.node.Table)
	}
	e.node.Schema = schema
	e.rows = rows
	e.state = lifecycleOpen
	ctx.tracer().Event("Scan", "open", e.node.Table)
	e.tracer = ctx.tracer()
	return nil
}

func (e *ScanExecutor) Next() bool {
	if e.state != lifecycleOpen {
		e.err = misuseError("Scan(%s): Next called before Init or after Close", e.node.Table)
		return false
	}
	if e.pos >= len(e.rows) {
		e.tracer.Event("Scan", "next", "exhausted")
		return false
	}
	e.current = e.rows[e.pos]
	e.pos++
	e.tracer.Event("Scan", "next", "")
	return true
}

func (e *ScanExecutor) Current() tuple.Tuple { return e.current }
func (e *ScanExecutor) Error() error          { return e.err }

func (e *ScanExecutor) Close() error {
	if e.state == lifecycleClosed {
		return nil
	}
	e.state = lifecycleClosed
	if e.tracer != nil {
		e.tracer.Event("Scan", "close", e.node.Table)
	}
	return nil
}
