package common

import "fmt"

// Assert checks a condition and panics if it is false.
//
// Internal invariants (tuple arity matching its schema, Compare never
// receiving a null operand) are bugs in the engine itself, not
// conditions a caller can recover from — so they panic loudly instead of
// returning an error a caller might accidentally swallow. Validation of
// external input (CSV content, predicate text, file paths) always returns
// an EngineError instead; see errors.go. Executor lifecycle misuse (Next
// before Init or after Close) is also reported as a MisuseError, not a
// panic.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
