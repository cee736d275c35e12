// Package forust provides the statistical preprocessing and row-selection
// core of a histogram-based gradient boosting engine.
//
// The library covers the stages every boosting iteration depends on before
// any tree is grown:
//
//   - Quantile binning: package binning converts a continuous, possibly
//     missing, column-major matrix into a bounded-width bin-index matrix,
//     deriving per-column cut tables from weighted percentiles.
//   - Objective functions: package objective supplies pointwise loss,
//     gradient and hessian kernels (logistic loss and squared loss) over
//     labels, raw predictions and instance weights.
//   - Row sampling: package sampler selects the rows that feed tree
//     construction each iteration, with uniform subsampling and
//     Gradient-based One-Sided Sampling (GOSS).
//
// Supporting packages follow the same layout as the rest of the module:
// core/data holds the generic column-major matrix type, core/parallel the
// worker helpers, pkg/errors the typed error taxonomy and pkg/log the
// structured logging setup.
//
// # Quick start
//
//	X, err := data.NewMatrix(values, rows, cols)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	weights := make([]float64, rows)
//	for i := range weights {
//	    weights[i] = 1
//	}
//	binned, err := binning.BinMatrix(X, weights, 256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// binned.Binned, binned.Cuts and binned.NUnique feed the tree builder.
//
// Histogram accumulation, split search, tree assembly and the boosting loop
// itself are consumers of this core and live outside this module.
package forust
