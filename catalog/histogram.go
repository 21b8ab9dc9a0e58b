package catalog

import (
	"sort"

	"github.com/dsglabs/relquery/common"
)

// Histogram is an equi-width histogram over a column's non-null values,
// grounded on StoreMy's statistics.Histogram but simplified from
// StoreMy's equi-depth bucketing to the equi-width scheme spec.md §3
// describes: buckets of equal value-range rather than equal row-count,
// since the engine's Value model already gives every numeric column a
// natural bounded range (Min..Max) to slice evenly.
type Histogram struct {
	buckets []histogramBucket
	total   int
}

type histogramBucket struct {
	lower, upper float64 // inclusive bounds, as canonicalized doubles
	count        int
	distinct     map[float64]struct{}
}

const defaultBucketCount = 10

// BuildHistogram constructs an equi-width histogram over values, which must
// all be non-null and numeric (IntType or DoubleType); non-numeric columns
// get no histogram (Histogram stays nil on their ColumnStatistics).
func BuildHistogram(values []common.Value) *Histogram {
	if len(values) == 0 {
		return &Histogram{}
	}

	nums := make([]float64, len(values))
	for i, v := range values {
		nums[i] = numericOf(v)
	}
	sort.Float64s(nums)

	lo, hi := nums[0], nums[len(nums)-1]
	h := &Histogram{total: len(nums)}
	if lo == hi {
		h.buckets = []histogramBucket{{lower: lo, upper: hi, count: len(nums), distinct: map[float64]struct{}{lo: {}}}}
		return h
	}

	width := (hi - lo) / float64(defaultBucketCount)
	h.buckets = make([]histogramBucket, defaultBucketCount)
	for i := range h.buckets {
		h.buckets[i].lower = lo + float64(i)*width
		h.buckets[i].upper = lo + float64(i+1)*width
		h.buckets[i].distinct = make(map[float64]struct{})
	}
	h.buckets[defaultBucketCount-1].upper = hi

	for _, n := range nums {
		idx := bucketIndex(n, lo, width, defaultBucketCount)
		h.buckets[idx].count++
		h.buckets[idx].distinct[n] = struct{}{}
	}
	return h
}

func bucketIndex(n, lo, width float64, bucketCount int) int {
	if width == 0 {
		return 0
	}
	idx := int((n - lo) / width)
	if idx >= bucketCount {
		idx = bucketCount - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func numericOf(v common.Value) float64 {
	switch v.Type() {
	case common.IntType:
		return float64(v.IntVal())
	case common.DoubleType:
		return v.DoubleVal()
	default:
		return 0
	}
}

// EstimateEquality returns the estimated selectivity of "column = value"
// using the bucket containing value, assuming uniform distribution within
// the bucket (same assumption StoreMy's estimateEqualitySelectivity makes).
// Returns 0 if value falls outside every bucket's range or the histogram
// has no data.
func (h *Histogram) EstimateEquality(value common.Value) float64 {
	if h == nil || h.total == 0 {
		return 0
	}
	n := numericOf(value)
	lo := h.buckets[0].lower
	hi := h.buckets[len(h.buckets)-1].upper
	if n < lo || n > hi {
		return 0
	}
	width := 0.0
	if len(h.buckets) > 1 {
		width = (hi - lo) / float64(len(h.buckets))
	}
	b := h.buckets[bucketIndex(n, lo, width, len(h.buckets))]
	distinct := len(b.distinct)
	if distinct == 0 {
		return 0
	}
	bucketFraction := float64(b.count) / float64(h.total)
	return (1.0 / float64(distinct)) * bucketFraction
}
