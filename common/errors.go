package common

import "fmt"

// ErrorCode classifies the fatal error kinds the engine can raise.
type ErrorCode int

const (
	// SchemaError indicates a duplicate column name within a table, a
	// malformed "name:type" header, or an unknown type keyword.
	SchemaError ErrorCode = iota
	// ResolutionError indicates a predicate or projection referenced a
	// column not present in its input schema. The engine does not raise
	// this by default (it degrades to null per spec), but the code is
	// kept for callers that want to run in a strict mode.
	ResolutionError
	// TypeError indicates non-comparable values were reached after
	// coercion; should not occur given the coercion rules.
	TypeError
	// IOError indicates an input file is missing/unreadable or an output
	// file is unwritable.
	IOError
	// ArityError indicates a tuple whose value count disagrees with its
	// schema, which points at a corrupt upstream operator.
	ArityError
	// MisuseError indicates a violation of the open/next/close lifecycle
	// contract (next before open, next after close, double close).
	MisuseError
)

func (c ErrorCode) String() string {
	switch c {
	case SchemaError:
		return "SchemaError"
	case ResolutionError:
		return "ResolutionError"
	case TypeError:
		return "TypeError"
	case IOError:
		return "IOError"
	case ArityError:
		return "ArityError"
	case MisuseError:
		return "MisuseError"
	}
	return "unknown"
}

// EngineError is the engine's single error type. It wraps an ErrorCode with
// a human-readable message so callers can branch on the code while ordinary
// error-handling code can just treat it as an error.
type EngineError struct {
	Code ErrorCode
	Msg  string
}

func (e EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.String(), e.Msg)
}

// NewError constructs an EngineError with a formatted message.
func NewError(code ErrorCode, format string, args ...any) EngineError {
	return EngineError{Code: code, Msg: fmt.Sprintf(format, args...)}
}
