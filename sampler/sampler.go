// Package sampler selects, each boosting iteration, the subset of rows
// whose gradient and hessian participate in tree construction.
//
// Three strategies are provided: keep every row (None), uniform
// subsampling (Random) and Gradient-based One-Sided Sampling (Goss). The
// strategy is a runtime configuration choice resolved once via FromConfig.
// Randomness comes from an injected, seedable *rand.Rand, so results are
// reproducible for a fixed seed and input order; a generator must not be
// shared across concurrent sampling calls.
package sampler

import (
	"math/rand/v2"
	"sort"

	"github.com/forust-go/forust/core/data"
	"github.com/forust-go/forust/pkg/errors"
	"github.com/forust-go/forust/pkg/log"
)

// Method enumerates the sampling strategies.
type Method int

const (
	// None keeps every eligible row.
	None Method = iota
	// Random subsamples rows uniformly at a fixed rate.
	Random
	// Goss keeps the highest-gradient rows and a compensated random
	// subset of the rest.
	Goss
)

// acceptedMethods lists the config strings ParseMethod recognizes. None is
// the absence of a sampling setting, not a parseable value.
var acceptedMethods = []string{"random", "goss"}

// ParseMethod converts a configuration string into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "random":
		return Random, nil
	case "goss":
		return Goss, nil
	default:
		return None, errors.NewParseStringError(s, "SampleMethod", acceptedMethods)
	}
}

// String returns the configuration spelling of the method.
func (m Method) String() string {
	switch m {
	case Random:
		return "random"
	case Goss:
		return "goss"
	default:
		return "none"
	}
}

// Sampler partitions the eligible rows into the set chosen for the next
// tree and the set excluded from it. The gradient and hessian buffers are
// indexed by row id and may be rescaled in place.
type Sampler[T data.Float] interface {
	Sample(rng *rand.Rand, index []int, grad, hess []T) (chosen, excluded []int, err error)
}

// NoneSampler keeps every eligible row.
type NoneSampler[T data.Float] struct{}

// Sample returns all eligible rows as chosen.
func (NoneSampler[T]) Sample(_ *rand.Rand, index []int, _, _ []T) ([]int, []int, error) {
	return index, nil, nil
}

// RandomSampler includes each eligible row independently with a fixed
// probability. The chosen-set size is binomial, not deterministic.
type RandomSampler[T data.Float] struct {
	subsample float64
}

// NewRandomSampler creates a RandomSampler with the given inclusion
// probability, which must lie in (0, 1].
func NewRandomSampler[T data.Float](subsample float64) (*RandomSampler[T], error) {
	if err := errors.CheckUnitInterval("subsample", subsample); err != nil {
		return nil, err
	}
	if subsample == 0 {
		return nil, errors.NewValidationError("subsample", "must be strictly positive", subsample)
	}
	return &RandomSampler[T]{subsample: subsample}, nil
}

// Sample draws each row independently; gradients are left untouched.
func (s *RandomSampler[T]) Sample(rng *rand.Rand, index []int, _, _ []T) ([]int, []int, error) {
	chosen := make([]int, 0, int(float64(len(index))*s.subsample))
	excluded := make([]int, 0, len(index)-cap(chosen))
	for _, i := range index {
		if rng.Float64() < s.subsample {
			chosen = append(chosen, i)
		} else {
			excluded = append(excluded, i)
		}
	}
	return chosen, excluded, nil
}

// GossSampler implements Gradient-based One-Sided Sampling: the top a*N
// rows by absolute gradient always train the next tree, and the remaining
// rows are subsampled with their gradient and hessian scaled up by
// (1-a)/b to compensate for the dropped low-gradient mass.
//
// See the LightGBM top_rate / other_rate parameters.
type GossSampler[T data.Float] struct {
	a float64 // top-gradient retention fraction
	b float64 // random retention fraction of the remainder
}

// DefaultGoss returns a GossSampler with the conventional a=0.2, b=0.1.
func DefaultGoss[T data.Float]() *GossSampler[T] {
	return &GossSampler[T]{a: 0.2, b: 0.1}
}

// NewGossSampler creates a GossSampler; both rates must lie in [0, 1].
func NewGossSampler[T data.Float](a, b float64) (*GossSampler[T], error) {
	if err := errors.CheckUnitInterval("top_rate", a); err != nil {
		return nil, err
	}
	if err := errors.CheckUnitInterval("other_rate", b); err != nil {
		return nil, err
	}
	return &GossSampler[T]{a: a, b: b}, nil
}

// Sample ranks the eligible rows by descending absolute gradient, keeps
// the top floor(a*N) unconditionally, and keeps each remaining row with
// probability floor(b*N)/(N-floor(a*N)), rescaling its gradient and
// hessian in place. The excluded set is not populated for this variant.
func (s *GossSampler[T]) Sample(rng *rand.Rand, index []int, grad, hess []T) ([]int, []int, error) {
	n := len(index)
	if n == 0 {
		return nil, nil, nil
	}

	topN := int(s.a * float64(n))
	randN := int(s.b * float64(n))

	// Sort row ids by absolute gradient, highest first.
	sorted := make([]int, n)
	copy(sorted, index)
	sort.SliceStable(sorted, func(x, y int) bool {
		gx, gy := grad[sorted[x]], grad[sorted[y]]
		if gx < 0 {
			gx = -gx
		}
		if gy < 0 {
			gy = -gy
		}
		return gx > gy
	})

	rest := sorted[topN:]
	if len(rest) == 0 {
		if randN > 0 {
			return nil, nil, errors.NewValidationError("top_rate",
				"no rows left to subsample; lower top_rate or set other_rate to zero", s.a)
		}
		// Every row is in the top set; nothing to rescale.
		return sorted, nil, nil
	}

	subsample := float64(randN) / float64(len(rest))
	randomSet := make([]int, 0, randN)
	for _, i := range rest {
		if rng.Float64() < subsample {
			randomSet = append(randomSet, i)
		}
	}

	// Scale up the sparse low-gradient sample so its expected mass matches
	// the rows it stands in for.
	if len(randomSet) > 0 {
		fact := T((1 - s.a) / s.b)
		for _, i := range randomSet {
			grad[i] *= fact
			hess[i] *= fact
		}
	}

	chosen := make([]int, 0, topN+len(randomSet))
	chosen = append(chosen, sorted[:topN]...)
	chosen = append(chosen, randomSet...)

	logger := log.GetLoggerWithName("sampler.goss")
	logger.Debug("sampled rows",
		log.SamplesKey, n,
		log.ChosenKey, len(chosen),
		log.MethodKey, Goss.String(),
	)

	return chosen, nil, nil
}

// Config is the sampling section of a training configuration.
type Config struct {
	Method Method

	// Subsample is the Random inclusion probability.
	Subsample float64

	// TopRate and OtherRate are the Goss a and b parameters.
	TopRate   float64
	OtherRate float64
}

// FromConfig resolves the configured method into a Sampler once; the
// returned value is reused for every iteration.
func FromConfig[T data.Float](cfg Config) (Sampler[T], error) {
	switch cfg.Method {
	case None:
		return NoneSampler[T]{}, nil
	case Random:
		return NewRandomSampler[T](cfg.Subsample)
	case Goss:
		return NewGossSampler[T](cfg.TopRate, cfg.OtherRate)
	default:
		return nil, errors.NewValidationError("sample_method", "unknown method", int(cfg.Method))
	}
}
