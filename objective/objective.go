// Package objective provides the pointwise loss, gradient and hessian
// kernels that turn labels and current predictions into the first- and
// second-order signal consumed by the sampler and the tree builder.
//
// The objective is chosen once through a Type value and resolved into a
// pair of gradient/hessian callables via GradHessCallables; there is no
// per-row dispatch during training.
package objective

import (
	"math"

	"github.com/forust-go/forust/core/data"
	"github.com/forust-go/forust/core/parallel"
	"github.com/forust-go/forust/pkg/errors"
)

// Type enumerates the supported objective functions.
type Type string

const (
	// LogLossType optimizes logistic loss for binary classification.
	LogLossType Type = "LogLoss"
	// SquaredLossType optimizes squared error for regression.
	SquaredLossType Type = "SquaredLoss"
)

// acceptedTypes lists the config strings ParseType recognizes.
var acceptedTypes = []string{string(LogLossType), string(SquaredLossType)}

// ParseType converts a configuration string into a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case string(LogLossType):
		return LogLossType, nil
	case string(SquaredLossType):
		return SquaredLossType, nil
	default:
		return "", errors.NewParseStringError(s, "ObjectiveType", acceptedTypes)
	}
}

// Function is a pointwise objective: loss, gradient and hessian over
// equal-length label, raw-prediction and instance-weight slices, one
// output value per row.
type Function[T data.Float] interface {
	CalcLoss(y, yhat, sampleWeight []T) []T
	CalcGrad(y, yhat, sampleWeight []T) []T
	CalcHess(y, yhat, sampleWeight []T) []T
}

// ObjFn is a resolved gradient or hessian callable.
type ObjFn[T data.Float] func(y, yhat, sampleWeight []T) []T

// New returns the objective implementation for the given type.
func New[T data.Float](t Type) (Function[T], error) {
	switch t {
	case LogLossType:
		return LogLoss[T]{}, nil
	case SquaredLossType:
		return SquaredLoss[T]{}, nil
	default:
		return nil, errors.NewParseStringError(string(t), "ObjectiveType", acceptedTypes)
	}
}

// GradHessCallables resolves an objective type into its gradient and
// hessian callables once, for the remainder of training.
func GradHessCallables[T data.Float](t Type) (grad, hess ObjFn[T], err error) {
	fn, err := New[T](t)
	if err != nil {
		return nil, nil, err
	}
	return fn.CalcGrad, fn.CalcHess, nil
}

// Rows are independent, so the kernels parallelize across disjoint output
// ranges once the input is large enough to amortize the goroutines.
const parallelThreshold = 4096

func mapRows[T data.Float](n int, out []T, fn func(i int)) []T {
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
	return out
}

func sigmoid[T data.Float](x T) T {
	return T(1 / (1 + math.Exp(-float64(x))))
}

// LogLoss is the binary classification objective. Predictions are raw
// (pre-sigmoid) scores.
type LogLoss[T data.Float] struct{}

// CalcLoss returns the weighted binary cross-entropy per row.
func (LogLoss[T]) CalcLoss(y, yhat, sampleWeight []T) []T {
	out := make([]T, len(y))
	return mapRows(len(y), out, func(i int) {
		p := float64(sigmoid(yhat[i]))
		out[i] = -T(float64(y[i])*math.Log(p)+(1-float64(y[i]))*math.Log(1-p)) * sampleWeight[i]
	})
}

// CalcGrad returns (sigmoid(yhat) - y) * weight per row.
func (LogLoss[T]) CalcGrad(y, yhat, sampleWeight []T) []T {
	out := make([]T, len(y))
	return mapRows(len(y), out, func(i int) {
		out[i] = (sigmoid(yhat[i]) - y[i]) * sampleWeight[i]
	})
}

// CalcHess returns sigmoid(yhat) * (1 - sigmoid(yhat)) * weight per row.
func (LogLoss[T]) CalcHess(y, yhat, sampleWeight []T) []T {
	out := make([]T, len(yhat))
	return mapRows(len(yhat), out, func(i int) {
		p := sigmoid(yhat[i])
		out[i] = p * (1 - p) * sampleWeight[i]
	})
}

// SquaredLoss is the regression objective with constant curvature.
type SquaredLoss[T data.Float] struct{}

// CalcLoss returns the weighted squared error per row.
func (SquaredLoss[T]) CalcLoss(y, yhat, sampleWeight []T) []T {
	out := make([]T, len(y))
	return mapRows(len(y), out, func(i int) {
		s := y[i] - yhat[i]
		out[i] = s * s * sampleWeight[i]
	})
}

// CalcGrad returns (yhat - y) * weight per row.
func (SquaredLoss[T]) CalcGrad(y, yhat, sampleWeight []T) []T {
	out := make([]T, len(y))
	return mapRows(len(y), out, func(i int) {
		out[i] = (yhat[i] - y[i]) * sampleWeight[i]
	})
}

// CalcHess returns the instance weight per row.
func (SquaredLoss[T]) CalcHess(_, _, sampleWeight []T) []T {
	out := make([]T, len(sampleWeight))
	copy(out, sampleWeight)
	return out
}
