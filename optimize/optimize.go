// Package optimize rewrites a logical plan tree in four passes — filter
// pushdown, filter merging, projection collapsing, and cost-based join
// reordering — directly grounded on the coursework's BasicOptimizer (see
// DESIGN.md): pushDownFilters, mergeFilters, optimizeProjections and
// optimizeJoins map one-to-one onto this package's four pass functions, and
// the cardinality/selectivity constants below are copied from
// estimateSelectivity/estimateJoinSelectivity/estimateCardinality exactly
// (spec.md §4.8).
package optimize

import (
	"math"

	"github.com/dsglabs/relquery/catalog"
	"github.com/dsglabs/relquery/plan"
)

// Baseline selectivity constants spec.md §4.8 mandates. A comparison
// predicate's default selectivity, an equality join's default selectivity,
// and the fallback cardinality used for a scan whose table is missing from
// the catalog.
const (
	comparisonSelectivity = 0.3
	equalityJoinSelectivity = 0.1
	fallbackCardinality     = 1000
)

// Optimizer rewrites plans using Catalog statistics. UseHistograms opts
// into refining comparisonSelectivity per-column with a table's histogram
// (catalog.Histogram.EstimateEquality) when available; it defaults to false
// so that an Optimizer built with only NewOptimizer reproduces the literal
// baseline constants above, matching what the original coursework's fixed
// constants guarantee.
type Optimizer struct {
	Catalog       *catalog.Catalog
	UseHistograms bool
}

// NewOptimizer builds an Optimizer against cat with histogram refinement
// off.
func NewOptimizer(cat *catalog.Catalog) *Optimizer {
	return &Optimizer{Catalog: cat}
}

// Optimize applies the four rewrite passes in order — pushdown, merge,
// project-collapse, then join reordering — mirroring
// BasicOptimizer.optimize's applyRuleBasedOptimizations followed by
// applyCostBasedOptimizations.
func (o *Optimizer) Optimize(root plan.PlanNode) plan.PlanNode {
	rewritten := pushDownFilters(root)
	rewritten = mergeFilters(rewritten)
	rewritten = collapseProjections(rewritten)
	rewritten = o.reorderJoins(rewritten)
	return rewritten
}

// EstimateCardinality returns the estimated row count of a plan subtree,
// per spec.md §4.8's scan/filter/join/project/sink rules. A ScanNode whose
// table is absent from the Catalog falls back to fallbackCardinality,
// exactly as estimateCardinality's "Default estimate" branch does.
func (o *Optimizer) EstimateCardinality(node plan.PlanNode) float64 {
	switch n := node.(type) {
	case *plan.ScanNode:
		if ts, ok := o.Catalog.Table(n.Table); ok {
			return float64(ts.RowCount)
		}
		return fallbackCardinality
	case *plan.FilterNode:
		return math.Round(o.EstimateCardinality(n.Input) * o.estimateSelectivity(n.Predicate, n.Input))
	case *plan.HashJoinNode:
		left := o.EstimateCardinality(n.Left)
		right := o.EstimateCardinality(n.Right)
		return math.Round(left * right * equalityJoinSelectivity)
	case *plan.ProjectNode:
		if n.Distinct {
			return math.Min(o.EstimateCardinality(n.Input), math.Pow(10, float64(len(n.Columns))))
		}
		return o.EstimateCardinality(n.Input)
	case *plan.SinkNode:
		return o.EstimateCardinality(n.Input)
	}
	return fallbackCardinality
}

// estimateSelectivity mirrors estimateSelectivity: a comparison defaults to
// comparisonSelectivity, an AND multiplies its clauses' selectivities. When
// UseHistograms is set and the predicate's child is a ScanNode with a
// histogram for the compared column, the histogram's equality estimate
// replaces the flat constant for Eq comparisons against a literal.
func (o *Optimizer) estimateSelectivity(pred plan.Predicate, input plan.PlanNode) float64 {
	switch p := pred.(type) {
	case *plan.ComparisonPredicate:
		if o.UseHistograms {
			if sel, ok := o.histogramSelectivity(p, input); ok {
				return sel
			}
		}
		return comparisonSelectivity
	case *plan.AndPredicate:
		sel := 1.0
		for _, clause := range p.Clauses {
			sel *= o.estimateSelectivity(clause, input)
		}
		return sel
	}
	return comparisonSelectivity
}

func (o *Optimizer) histogramSelectivity(p *plan.ComparisonPredicate, input plan.PlanNode) (float64, bool) {
	if p.Op != plan.Eq {
		return 0, false
	}
	scan, ok := input.(*plan.ScanNode)
	if !ok {
		return 0, false
	}
	ts, ok := o.Catalog.Table(scan.Table)
	if !ok {
		return 0, false
	}
	if p.Left.Column != "" && p.Right.Column != "" {
		return 0, false
	}
	col := p.Left.Column
	lit := p.Right.Literal
	if col == "" {
		col = p.Right.Column
		lit = p.Left.Literal
	}
	if col == "" {
		return 0, false
	}
	cs := ts.ColumnStats(col)
	if cs == nil || cs.Histogram == nil {
		return 0, false
	}
	return cs.Histogram.EstimateEquality(lit), true
}
