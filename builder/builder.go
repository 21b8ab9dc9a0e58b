// Package builder provides a fluent construction API for plan trees plus
// the small predicate-text grammar spec.md §6 describes ("<col|literal> <op>
// <col|literal>"), grounded on the teacher's habit of offering a builder
// façade (godb.go's top-level helpers) over raw PlanNode construction so
// callers don't hand-assemble node structs.
package builder

import (
	"strconv"
	"strings"

	"github.com/dsglabs/relquery/common"
	"github.com/dsglabs/relquery/plan"
	"github.com/dsglabs/relquery/tuple"
)

// Builder accumulates a plan tree one stage at a time. Scan is always the
// first call; Sink (or Build, for callers that want the tree without a
// sink) ends the chain. Each stage wraps the previous PlanNode, matching
// spec.md §4's "every operator but Scan has exactly one input" shape,
// except Join which takes a second Builder for its right input.
type Builder struct {
	node PlanOrError
}

// PlanOrError carries either a constructed PlanNode or the first error
// encountered while building it, so a chain of stage calls can keep
// returning *Builder without a second error-carrying return value at every
// step; Build() surfaces the error at the end of the chain.
type PlanOrError struct {
	node plan.PlanNode
	err  error
}

// Scan starts a new Builder reading table, whose schema is schema (the
// Catalog/Loader supplies this from the table's CSV header at wiring time;
// Builder itself does not touch disk).
func Scan(table string, schema *tuple.Schema) *Builder {
	return &Builder{node: PlanOrError{node: &plan.ScanNode{Table: table, Schema: schema}}}
}

// Filter appends a FilterNode whose predicate is parsed from text using
// the grammar ParsePredicate documents.
func (b *Builder) Filter(text string) *Builder {
	if b.node.err != nil {
		return b
	}
	pred, err := ParsePredicate(text)
	if err != nil {
		return &Builder{node: PlanOrError{err: err}}
	}
	return &Builder{node: PlanOrError{node: &plan.FilterNode{Input: b.node.node, Predicate: pred}}}
}

// Join appends a HashJoinNode against other's tree, matching left and
// right on the named columns (spec.md §4.6).
func (b *Builder) Join(other *Builder, leftColumn, rightColumn string) *Builder {
	if b.node.err != nil {
		return b
	}
	if other.node.err != nil {
		return other
	}
	return &Builder{node: PlanOrError{node: &plan.HashJoinNode{
		Left:      b.node.node,
		Right:     other.node.node,
		Predicate: &plan.EqualityJoinPredicate{Left: leftColumn, Right: rightColumn},
	}}}
}

// Project appends a ProjectNode over the named columns.
func (b *Builder) Project(columns ...string) *Builder {
	return b.project(columns, false)
}

// ProjectDistinct appends a ProjectNode over the named columns with
// duplicate elimination (spec.md §4.4).
func (b *Builder) ProjectDistinct(columns ...string) *Builder {
	return b.project(columns, true)
}

func (b *Builder) project(columns []string, distinct bool) *Builder {
	if b.node.err != nil {
		return b
	}
	return &Builder{node: PlanOrError{node: &plan.ProjectNode{Input: b.node.node, Columns: columns, Distinct: distinct}}}
}

// Sink appends a SinkNode writing to path and returns the finished tree.
func (b *Builder) Sink(path string) (plan.PlanNode, error) {
	if b.node.err != nil {
		return nil, b.node.err
	}
	return &plan.SinkNode{Input: b.node.node, Path: path}, nil
}

// Build returns the tree constructed so far, without a Sink, for callers
// that drive execution a different way (e.g. tests reading rows directly).
func (b *Builder) Build() (plan.PlanNode, error) {
	return b.node.node, b.node.err
}

// ParsePredicate parses the grammar "<operand> <op> <operand>" into a
// ComparisonPredicate, where each operand is either a bare column name or
// a literal. A literal is parsed as an integer if it is numeric and has no
// fractional part, else as a double if numeric, else as a string (spec.md
// §6). Column references are distinguished from string literals only by
// not being quoted; ParsePredicate treats a double-quoted token as a
// string literal with the quotes stripped.
func ParsePredicate(text string) (plan.Predicate, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return nil, common.NewError(common.SchemaError, "predicate %q must have the form '<operand> <op> <operand>'", text)
	}
	op, err := parseOp(fields[1])
	if err != nil {
		return nil, err
	}
	return &plan.ComparisonPredicate{
		Left:  parseOperand(fields[0]),
		Op:    op,
		Right: parseOperand(fields[2]),
	}, nil
}

func parseOp(token string) (plan.CompareOp, error) {
	switch token {
	case "=":
		return plan.Eq, nil
	case "!=":
		return plan.Neq, nil
	case "<":
		return plan.Lt, nil
	case "<=":
		return plan.Lte, nil
	case ">":
		return plan.Gt, nil
	case ">=":
		return plan.Gte, nil
	}
	return 0, common.NewError(common.SchemaError, "unknown comparison operator %q", token)
}

func parseOperand(token string) plan.Operand {
	if strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) && len(token) >= 2 {
		return plan.Lit(common.StringValue(strings.Trim(token, `"`)))
	}
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return plan.Lit(common.IntValue(n))
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return plan.Lit(common.DoubleValue(f))
	}
	return plan.Col(token)
}
