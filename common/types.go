package common

import (
	"fmt"
	"strconv"
)

// Type is the closed set of column types a schema column may declare.
type Type int8

const (
	IntType Type = iota
	DoubleType
	StringType
)

func (t Type) String() string {
	switch t {
	case IntType:
		return "integer"
	case DoubleType:
		return "double"
	case StringType:
		return "string"
	}
	return "unknown"
}

// ParseType maps a header type keyword to a Type. Returns a SchemaError if
// the keyword is not one of the three recognized types.
func ParseType(keyword string) (Type, error) {
	switch keyword {
	case "integer":
		return IntType, nil
	case "double":
		return DoubleType, nil
	case "string":
		return StringType, nil
	}
	return 0, NewError(SchemaError, "unknown type keyword %q", keyword)
}

// Value is a dynamically typed scalar: one of integer, double, string, or
// null. It is the closed sum type Design Notes (§9) asks for in place of the
// source's Object-typed cells, so every comparison/coercion path funnels
// through Compare below instead of runtime type-switching at every call site.
type Value struct {
	kind    Type
	isNull  bool
	intVal  int64
	dblVal  float64
	strVal  string
}

// NullValue constructs a null Value of the given declared type. A null
// Value still carries its column's type because Schema columns are typed
// even when a particular cell is empty.
func NullValue(t Type) Value {
	return Value{kind: t, isNull: true}
}

// IntValue constructs a non-null integer Value.
func IntValue(v int64) Value {
	return Value{kind: IntType, intVal: v}
}

// DoubleValue constructs a non-null double Value.
func DoubleValue(v float64) Value {
	return Value{kind: DoubleType, dblVal: v}
}

// StringValue constructs a non-null string Value.
func StringValue(v string) Value {
	return Value{kind: StringType, strVal: v}
}

// Type returns the value's declared column type.
func (v Value) Type() Type {
	return v.kind
}

// IsNull reports whether the Value represents a missing/empty cell.
func (v Value) IsNull() bool {
	return v.isNull
}

// IntVal returns the underlying integer. Caller must check Type()==IntType
// and !IsNull().
func (v Value) IntVal() int64 {
	return v.intVal
}

// DoubleVal returns the underlying double. Caller must check
// Type()==DoubleType and !IsNull().
func (v Value) DoubleVal() float64 {
	return v.dblVal
}

// StringVal returns the underlying string. Caller must check
// Type()==StringType and !IsNull().
func (v Value) StringVal() string {
	return v.strVal
}

// numeric reports whether the value's declared type is numeric (integer or
// double) and yields its value widened to float64.
func (v Value) numeric() (float64, bool) {
	switch v.kind {
	case IntType:
		return float64(v.intVal), true
	case DoubleType:
		return v.dblVal, true
	}
	return 0, false
}

// CanonicalString returns the canonical textual form of a non-null value,
// used both for cross-type comparison fallback (§4.7 rule 4) and for CSV
// serialization.
func (v Value) CanonicalString() string {
	if v.isNull {
		return ""
	}
	switch v.kind {
	case IntType:
		return strconv.FormatInt(v.intVal, 10)
	case DoubleType:
		return strconv.FormatFloat(v.dblVal, 'g', -1, 64)
	case StringType:
		return v.strVal
	}
	return ""
}

// HashKey returns a canonical, equality-consistent string used to bucket a
// Value in a hash table, following the same rules Compare does rather than
// a class-prefixed encoding: numeric values widen to double first and use
// that double's canonical string, so an IntType 3 and a DoubleType 3.0 (or
// an IntType 1000000 and a DoubleType 1e6) land in the same bucket; string
// values use their own text, so an IntType 3 and a StringType "3" also
// collide, as under Compare's rule-4 cross-kind fallback. That cross-kind
// collision holds only where the integer's decimal form equals its widened
// double's canonical form (e.g. not for IntType 1000000, keyed "1e+06").
func (v Value) HashKey() string {
	if v.isNull {
		return "\x00null"
	}
	if f, ok := v.numeric(); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return v.CanonicalString()
}

// Compare implements the coercion rules of spec.md §4.7 (steps 3-5) for two
// non-null values:
//  1. If both are numeric (integer or double), widen both to double and
//     compare.
//  2. Otherwise, if the two values are of different kinds, cast both to
//     their canonical string form and compare lexicographically.
//  3. Otherwise compare with the type's natural ordering.
//
// Compare must not be called with a null operand; predicate evaluation
// checks IsNull() before ever reaching here (§4.7 rule 2: null comparisons
// are handled by the caller, which returns false without comparing).
func (v Value) Compare(other Value) int {
	Assert(!v.isNull && !other.isNull, "Compare called with a null operand")

	if lf, lok := v.numeric(); lok {
		if rf, rok := other.numeric(); rok {
			return compareFloat(lf, rf)
		}
	}

	if v.kind != other.kind {
		return compareString(v.CanonicalString(), other.CanonicalString())
	}

	switch v.kind {
	case IntType:
		return compareInt(v.intVal, other.intVal)
	case DoubleType:
		return compareFloat(v.dblVal, other.dblVal)
	case StringType:
		return compareString(v.strVal, other.strVal)
	}
	panic("unreachable")
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (v Value) String() string {
	if v.isNull {
		return "NULL"
	}
	return fmt.Sprintf("%s(%s)", v.kind, v.CanonicalString())
}
