// Package trace provides the structural trace hook Design Notes (§9) asks
// for in place of the original coursework's hard-coded log4j calls at
// operator open/next/close and at predicate evaluation.
package trace

import (
	"log"
	"os"
)

// Tracer receives a trace event for an operator lifecycle transition or a
// predicate evaluation. operator identifies the emitting component (e.g.
// "Filter", "HashJoin", "ComparisonPredicate"); phase is one of "open",
// "next", "close", "eval"; detail is a short free-form description.
type Tracer interface {
	Event(operator, phase, detail string)
}

// NoopTracer discards every event. This is the default used when a caller
// does not wire a Tracer, matching the teacher's NoopLogManager — tracing
// compiles out to nothing but an interface call.
type NoopTracer struct{}

func (NoopTracer) Event(operator, phase, detail string) {}

// StdTracer logs every event through the standard library's log package.
// No example in the corpus pulls in a structured-logging library for
// application tracing (see DESIGN.md), so StdTracer is the engine's only
// non-noop Tracer; callers wanting structured output can implement Tracer
// themselves against whatever sink they prefer.
type StdTracer struct {
	*log.Logger
}

// NewStdTracer returns a StdTracer writing to stderr with a fixed prefix.
func NewStdTracer() StdTracer {
	return StdTracer{Logger: log.New(os.Stderr, "relquery: ", log.LstdFlags)}
}

func (t StdTracer) Event(operator, phase, detail string) {
	if detail == "" {
		t.Printf("%s.%s()", operator, phase)
		return
	}
	t.Printf("%s.%s(): %s", operator, phase, detail)
}
