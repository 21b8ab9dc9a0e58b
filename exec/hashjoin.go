package exec

import (
	"github.com/dsglabs/relquery/plan"
	"github.com/dsglabs/relquery/trace"
	"github.com/dsglabs/relquery/tuple"
)

// HashJoinExecutor performs an equi-join: build a hash table from Left
// keyed on the join column, then probe it with each Right tuple (spec.md
// §4.6). This is grounded on JoinOperator.java's build/probe structure —
// open() builds, next() probes lazily one right tuple at a time — but
// corrects its hash-table keying: the original indexes every value of
// every left tuple ("For each value in the tuple, we'll add it to the hash
// table... This approach handles the case where we don't know the exact
// join attribute"), which is quadratic in the tuple's arity and unnecessary
// once the join predicate names its column explicitly. This executor hashes
// only Node.Predicate's left column, using Value.HashKey() so an integer
// and an equal-valued double key to the same bucket, matching the
// engine-wide coercion rule Value.Compare already applies (spec.md §4.7 /
// Design Notes §9's resolved Open Question).
type HashJoinExecutor struct {
	node        *plan.HashJoinNode
	left, right Executor
	eq          *plan.EqualityJoinPredicate
	state       lifecycle
	err         error

	buildTable map[string][]tuple.Tuple
	probeDone  bool
	matches    []tuple.Tuple
	matchPos   int
	rightRow   tuple.Tuple

	current tuple.Tuple
	tracer  trace.Tracer
}

// NewHashJoinExecutor builds a HashJoinExecutor reading left/right from the
// given child executors.
func NewHashJoinExecutor(node *plan.HashJoinNode, left, right Executor) *HashJoinExecutor {
	return &HashJoinExecutor{node: node, left: left, right: right, eq: node.Predicate.(*plan.EqualityJoinPredicate)}
}

func (e *HashJoinExecutor) PlanNode() plan.PlanNode { return e.node }

func (e *HashJoinExecutor) Init(ctx *ExecutorContext) error {
	if e.state != lifecycleUnopened {
		return misuseError("HashJoin: Init called more than once")
	}
	if err := e.left.Init(ctx); err != nil {
		return err
	}
	if err := e.right.Init(ctx); err != nil {
		return err
	}
	e.tracer = ctx.tracer()
	e.tracer.Event("HashJoin", "open", e.eq.String())

	e.buildTable = make(map[string][]tuple.Tuple)
	for e.left.Next() {
		row := e.left.Current()
		key := row.Get(e.eq.BuildKeyColumn())
		if key.IsNull() {
			continue
		}
		hk := key.HashKey()
		e.buildTable[hk] = append(e.buildTable[hk], row)
	}
	if err := e.left.Error(); err != nil {
		return err
	}
	e.state = lifecycleOpen
	return nil
}

func (e *HashJoinExecutor) Next() bool {
	if e.state != lifecycleOpen {
		e.err = misuseError("HashJoin: Next called before Init or after Close")
		return false
	}
	for {
		if e.matchPos < len(e.matches) {
			left := e.matches[e.matchPos]
			e.matchPos++
			e.current = left.Concat(e.rightRow)
			e.tracer.Event("HashJoin", "next", "match")
			return true
		}
		if e.probeDone {
			e.tracer.Event("HashJoin", "next", "exhausted")
			return false
		}
		if !e.right.Next() {
			if err := e.right.Error(); err != nil {
				e.err = err
			}
			e.probeDone = true
			continue
		}
		e.rightRow = e.right.Current()
		probeKey := e.rightRow.Get(e.eq.ProbeKeyColumn())
		if probeKey.IsNull() {
			e.matches = nil
			e.matchPos = 0
			continue
		}
		e.matches = e.buildTable[probeKey.HashKey()]
		e.matchPos = 0
	}
}

func (e *HashJoinExecutor) Current() tuple.Tuple { return e.current }
func (e *HashJoinExecutor) Error() error          { return e.err }

func (e *HashJoinExecutor) Close() error {
	if e.state == lifecycleClosed {
		return nil
	}
	e.state = lifecycleClosed
	leftErr := e.left.Close()
	rightErr := e.right.Close()
	e.buildTable = nil
	if e.tracer != nil {
		e.tracer.Event("HashJoin", "close", "")
	}
	if leftErr != nil {
		return leftErr
	}
	return rightErr
}
