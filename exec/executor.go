// Package exec implements the pull-based iterator model spec.md §4/§5
// describes: every operator is an Executor with Init/Next/Current/Close,
// driven by a single caller that opens once, pulls until exhausted, and
// always closes — mirroring the teacher's execution.Executor interface and
// lifecycle contract exactly, generalized from the teacher's disk-backed
// SeqScan/Filter/Projection/HashJoin executors to this engine's in-memory
// CSV tuples.
package exec

import (
	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/plan"
	"github.com/dsglabs/relquery/trace"
	"github.com/dsglabs/relquery/tuple"
)

// Executor is the pull-based iterator every operator implements
// (spec.md §5): Init must be called exactly once before Next, Next
// advances to the next output tuple (or returns false when exhausted or on
// error — check Error() to distinguish the two), Current returns the most
// recently produced tuple, and Close releases any resources regardless of
// whether iteration finished normally. Calling Next after Close, or Next
// before Init, is a MisuseError surfaced through Error().
type Executor interface {
	PlanNode() plan.PlanNode
	Init(ctx *ExecutorContext) error
	Next() bool
	Current() tuple.Tuple
	Error() error
	Close() error
}

// ExecutorContext carries the state threaded through an executor tree at
// Init time: the Tracer every executor reports lifecycle events to
// (defaulting to trace.NoopTracer so tracing compiles out to nothing when
// unused), and table sources a ScanExecutor resolves its table name
// against. This is the engine's explicit substitute for the teacher's
// TransactionID-carrying ExecutorContext — there are no transactions in
// scope, so the context only carries what Scan and tracing need.
type ExecutorContext struct {
	Tracer  trace.Tracer
	Sources TableSource
}

// TableSource resolves a table name to its already-loaded rows and schema.
// Engine (the root package) implements this over a catalog/CSV load; tests
// can supply a trivial in-memory implementation.
type TableSource interface {
	Table(name string) (*tuple.Schema, []tuple.Tuple, bool)
}

// NewContext builds an ExecutorContext with a NoopTracer; callers that want
// tracing replace ctx.Tracer after construction.
func NewContext(sources TableSource) *ExecutorContext {
	return &ExecutorContext{Tracer: trace.NoopTracer{}, Sources: sources}
}

func (c *ExecutorContext) tracer() trace.Tracer {
	if c.Tracer == nil {
		return trace.NoopTracer{}
	}
	return c.Tracer
}

// lifecycle tracks the open/next/close state every executor enforces via
// misuseError, mirroring the teacher's pattern of guarding Next/Close
// against being called out of order.
type lifecycle int

const (
	lifecycleUnopened lifecycle = iota
	lifecycleOpen
	lifecycleClosed
)

func misuseError(format string, args ...any) error {
	return common.NewError(common.MisuseError, format, args...)
}
