// Package binning converts continuous, possibly missing feature matrices
// into discrete bin indices suitable for histogram-based tree growing.
//
// For every column a sorted cut table is derived from weighted percentiles
// (or from the raw distinct values when the column has few of them), capped
// by a sentinel equal to the numeric type's maximum value. Every entry is
// then mapped to a bin index by binary search over the cut table. Bin 0 is
// reserved for missing values; finite values land in bins 1..K.
//
// If we generated these cuts:
//
//	[0.0, 7.8958, 14.4542, 31.0, 512.3292, MAX]
//
// bin 0 holds missing values, bin 1 holds values in [0.0, 7.8958), bin 2
// holds [7.8958, 14.4542), and so on; a learned split "bin < 4" translates
// back to "feature < 31.0".
package binning

import (
	"math"
	"sort"
	"time"

	"github.com/forust-go/forust/core/data"
	"github.com/forust-go/forust/core/parallel"
	"github.com/forust-go/forust/pkg/errors"
	"github.com/forust-go/forust/pkg/log"
)

// BinnedData is the discretized form of a feature matrix: the bin-index
// matrix (column-major, same shape as the source), the per-column cut
// tables, and the per-column count of distinct finite values. It is built
// once per training matrix and shared read-only by every boosting
// iteration.
type BinnedData[T data.Float] struct {
	Binned  []uint16
	Cuts    [][]T
	NUnique []int
}

// FirstGreaterThan returns the index of the first value in x that is
// strictly greater than v. x must be sorted ascending. Every comparison is
// false for NaN, which forces the search to the bottom and thus to zero —
// this is how missing values self-route to the missing bin.
func FirstGreaterThan[T data.Float](x []T, v T) int {
	low, high := 0, len(x)
	for low != high {
		mid := (low + high) / 2
		if x[mid] <= v {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low
}

// mapBin assigns v to a bin given a column's cut table. Non-finite values
// go to bin 0; the explicit check also catches infinities, which would
// otherwise compare past the sentinel.
func mapBin[T data.Float](cuts []T, v T) uint16 {
	if data.IsNonFinite(v) {
		return 0
	}
	return uint16(FirstGreaterThan(cuts, v))
}

// cutsOrValues returns the sorted distinct values themselves when the
// column has no more of them than requested percentiles — quantile
// estimation would be wasted effort and could duplicate boundaries —
// and weighted percentile boundaries otherwise.
func cutsOrValues[T data.Float](v, sampleWeight, pcts []T) ([]T, int, error) {
	vu := make([]T, len(v))
	copy(vu, v)
	sort.Slice(vu, func(a, b int) bool { return vu[a] < vu[b] })
	vu = dedupSorted(vu)

	if len(vu) <= len(pcts)+1 {
		return vu, len(vu), nil
	}
	return WeightedPercentiles(v, sampleWeight, pcts)
}

// dedupSorted removes consecutive duplicates in place.
func dedupSorted[T data.Float](xs []T) []T {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// BinMatrix bins every column of m into at most nbins quantile buckets,
// honoring per-row instance weights. Binning is all-or-nothing: the first
// column without usable variance aborts the whole call.
func BinMatrix[T data.Float](m *data.Matrix[T], sampleWeight []T, nbins uint16) (*BinnedData[T], error) {
	if nbins == 0 {
		return nil, errors.NewValidationError("nbins", "must be strictly positive", nbins)
	}
	if len(sampleWeight) != m.Rows {
		return nil, errors.NewDimensionError("BinMatrix", m.Rows, len(sampleWeight), 0)
	}
	start := time.Now()

	pcts := make([]T, nbins)
	for i := 0; i < int(nbins); i++ {
		pcts[i] = T(i) / T(nbins)
	}

	cuts := make([][]T, m.Cols)
	nunique := make([]int, m.Cols)

	// Columns are independent; build every cut table in parallel and keep
	// the error of the lowest failing column.
	err := parallel.ParallelizeItems(m.Cols, func(c int) (err error) {
		defer errors.Recover(&err, "binning.buildCuts")

		col := m.Col(c)
		noMiss := make([]T, 0, len(col))
		noMissWeight := make([]T, 0, len(col))
		for r, val := range col {
			if !data.IsNonFinite(val) {
				noMiss = append(noMiss, val)
				noMissWeight = append(noMissWeight, sampleWeight[r])
			}
		}

		colCuts, nu, err := cutsOrValues(noMiss, noMissWeight, pcts)
		if err != nil {
			return err
		}
		colCuts = append(colCuts, data.MaxValue[T]())
		colCuts = dedupSorted(colCuts)

		// One real boundary plus the missing bin and the sentinel is the
		// minimum for the column to be splittable at all.
		if len(colCuts) < 3 {
			return errors.NewNoVarianceError(c)
		}
		if len(colCuts) > math.MaxUint16 {
			return errors.NewValidationError("nbins", "cut table exceeds the uint16 bin index range", len(colCuts))
		}

		cuts[c] = colCuts
		nunique[c] = nu
		return nil
	})
	if err != nil {
		return nil, err
	}

	binned := binMatrixFromCuts(m, cuts)

	logger := log.GetLoggerWithName("binning")
	logger.Debug("binned matrix",
		log.SamplesKey, m.Rows,
		log.FeaturesKey, m.Cols,
		log.NBinsKey, int(nbins),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &BinnedData[T]{
		Binned:  binned,
		Cuts:    cuts,
		NUnique: nunique,
	}, nil
}

// binMatrixFromCuts maps every matrix entry to its bin index. Each worker
// owns a disjoint range of output columns, so no synchronization is needed
// beyond the final gather.
func binMatrixFromCuts[T data.Float](m *data.Matrix[T], cuts [][]T) []uint16 {
	binned := make([]uint16, len(m.Data))
	parallel.Parallelize(m.Cols, func(startCol, endCol int) {
		for c := startCol; c < endCol; c++ {
			col := m.Col(c)
			out := binned[c*m.Rows : (c+1)*m.Rows]
			for r, val := range col {
				out[r] = mapBin(cuts[c], val)
			}
		}
	})
	return binned
}
