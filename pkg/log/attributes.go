// Standard attribute keys for forust log records.
//
// Keys follow a dotted hierarchical convention (e.g. "data.samples",
// "binning.nbins") so structured log pipelines can filter on them
// consistently across packages.

package log

// Operation context.
const (
	// ComponentKey identifies which package is performing the operation.
	// Examples: "binning", "sampler.goss", "objective"
	ComponentKey = "component"

	// OperationKey specifies the operation being performed.
	// Examples: "bin_matrix", "sample", "calc_grad"
	OperationKey = "operation"
)

// Data shape.
const (
	// SamplesKey is the number of rows in the data being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns in the data being processed.
	FeaturesKey = "data.features"
)

// Binning.
const (
	// NBinsKey is the requested number of bins per column.
	NBinsKey = "binning.nbins"

	// CutsKey is the number of cut boundaries produced for a column.
	CutsKey = "binning.cuts"
)

// Sampling.
const (
	// MethodKey is the sampling method in use ("random", "goss").
	MethodKey = "sampling.method"

	// ChosenKey is the number of rows chosen for the next tree.
	ChosenKey = "sampling.chosen"

	// ExcludedKey is the number of rows excluded from the next tree.
	ExcludedKey = "sampling.excluded"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in
	// milliseconds.
	DurationMsKey = "perf.duration_ms"
)
