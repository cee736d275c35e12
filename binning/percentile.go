package binning

import (
	"sort"

	"github.com/forust-go/forust/core/data"
	"github.com/forust-go/forust/pkg/errors"
)

// WeightedPercentiles returns one boundary value per requested cumulative
// weight fraction, plus the count of distinct values in v.
//
// pcts must be ascending fractions in [0, 1]. Indices are sorted by value
// and walked while accumulating weight[i]/total; the current value is
// emitted whenever the running mass reaches the next pending fraction. A
// fraction of exactly 0 is satisfied by the first (smallest) value. At most
// one boundary is emitted per element, so fractions that collide on a
// heavily weighted value resolve on subsequent elements.
//
// Missing values are not supported here; the caller filters NaNs first.
func WeightedPercentiles[T data.Float](v, sampleWeight, pcts []T) ([]T, int, error) {
	if len(pcts) == 0 {
		return nil, 0, errors.WithStack(errors.ErrNoPercentiles)
	}
	if len(v) == 0 {
		return nil, 0, errors.WithStack(errors.ErrEmptyData)
	}
	if len(sampleWeight) != len(v) {
		return nil, 0, errors.NewDimensionError("WeightedPercentiles", len(v), len(sampleWeight), 0)
	}

	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })

	var total T
	for _, w := range sampleWeight {
		total += w
	}
	if err := errors.CheckPositiveFinite("sample_weight_total", float64(total)); err != nil {
		return nil, 0, err
	}

	out := make([]T, 0, len(pcts))
	next := 0
	var mass T
	nunique := 1
	current := v[idx[0]]

	for _, i := range idx {
		if current != v[i] {
			nunique++
			current = v[i]
		}
		mass += sampleWeight[i] / total
		if next < len(pcts) && (pcts[next] == 0 || mass >= pcts[next]) {
			out = append(out, current)
			next++
		}
	}
	return out, nunique, nil
}
