package sampler

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forust-go/forust/pkg/errors"
)

func newRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func identityIndex(n int) []int {
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	return index
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("random")
	require.NoError(t, err)
	assert.Equal(t, Random, m)

	m, err = ParseMethod("goss")
	require.NoError(t, err)
	assert.Equal(t, Goss, m)

	_, err = ParseMethod("stratified")
	require.Error(t, err)
	var pe *errors.ParseStringError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "stratified", pe.Value)
	assert.Equal(t, "SampleMethod", pe.Target)
	assert.Equal(t, []string{"random", "goss"}, pe.Accepted)
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "random", Random.String())
	assert.Equal(t, "goss", Goss.String())
}

func TestNoneSampler(t *testing.T) {
	index := identityIndex(10)
	chosen, excluded, err := NoneSampler[float64]{}.Sample(newRng(1), index, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, index, chosen)
	assert.Empty(t, excluded)
}

func TestRandomSamplerValidation(t *testing.T) {
	for _, rate := range []float64{-0.1, 0, 1.5, math.NaN()} {
		_, err := NewRandomSampler[float64](rate)
		assert.Error(t, err, "rate %v", rate)
	}

	_, err := NewRandomSampler[float64](1)
	assert.NoError(t, err)
}

func TestRandomSamplerPartition(t *testing.T) {
	const n = 1000
	s, err := NewRandomSampler[float64](0.5)
	require.NoError(t, err)

	grad := make([]float64, n)
	hess := make([]float64, n)
	for i := range grad {
		grad[i] = float64(i)
		hess[i] = 1
	}

	chosen, excluded, err := s.Sample(newRng(99), identityIndex(n), grad, hess)
	require.NoError(t, err)

	// chosen and excluded are disjoint and cover every row exactly once.
	seen := make(map[int]int, n)
	for _, i := range chosen {
		seen[i]++
	}
	for _, i := range excluded {
		seen[i]++
	}
	require.Len(t, seen, n)
	for i, c := range seen {
		require.Equal(t, 1, c, "row %d", i)
	}

	// Binomial around n*p; 150 is many standard deviations out.
	assert.InDelta(t, n/2, len(chosen), 150)

	// Random sampling never touches the buffers.
	for i := range grad {
		require.Equal(t, float64(i), grad[i])
		require.Equal(t, 1.0, hess[i])
	}
}

func TestRandomSamplerReproducible(t *testing.T) {
	s, err := NewRandomSampler[float64](0.3)
	require.NoError(t, err)
	index := identityIndex(200)

	chosen1, _, err := s.Sample(newRng(7), index, nil, nil)
	require.NoError(t, err)
	chosen2, _, err := s.Sample(newRng(7), index, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, chosen1, chosen2)
}

func TestGossSamplerValidation(t *testing.T) {
	for _, tc := range []struct{ a, b float64 }{
		{-0.1, 0.1},
		{1.1, 0.1},
		{0.2, -0.5},
		{0.2, 2},
		{math.NaN(), 0.1},
	} {
		_, err := NewGossSampler[float64](tc.a, tc.b)
		require.Error(t, err, "a=%v b=%v", tc.a, tc.b)
		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	}

	_, err := NewGossSampler[float64](0, 0)
	assert.NoError(t, err)
	_, err = NewGossSampler[float64](1, 1)
	assert.NoError(t, err)
}

func TestDefaultGoss(t *testing.T) {
	s := DefaultGoss[float64]()
	assert.Equal(t, 0.2, s.a)
	assert.Equal(t, 0.1, s.b)
}

func TestGossSamplerInvariants(t *testing.T) {
	const n = 1000
	s, err := NewGossSampler[float64](0.2, 0.1)
	require.NoError(t, err)

	grad := make([]float64, n)
	hess := make([]float64, n)
	for i := range grad {
		grad[i] = float64(i+1) / n // strictly increasing magnitude
		hess[i] = 1
	}
	original := append([]float64(nil), grad...)

	chosen, excluded, err := s.Sample(newRng(5), identityIndex(n), grad, hess)
	require.NoError(t, err)
	assert.Empty(t, excluded, "GOSS does not populate the excluded set")

	const topN = 200 // floor(0.2 * 1000)
	chosenSet := make(map[int]bool, len(chosen))
	for _, i := range chosen {
		chosenSet[i] = true
	}
	require.Len(t, chosenSet, len(chosen), "no duplicate rows")

	// The topN rows by |gradient| are rows n-topN..n-1 and must all be kept.
	for i := n - topN; i < n; i++ {
		assert.True(t, chosenSet[i], "top-gradient row %d must be chosen", i)
	}

	// Every other chosen row was rescaled by (1-a)/b = 8; unchosen rows
	// and top rows keep their original values.
	const fact = 8.0
	nRandom := 0
	for i := 0; i < n; i++ {
		switch {
		case i >= n-topN:
			assert.Equal(t, original[i], grad[i])
			assert.Equal(t, 1.0, hess[i])
		case chosenSet[i]:
			nRandom++
			assert.InDelta(t, original[i]*fact, grad[i], 1e-12)
			assert.Equal(t, fact, hess[i])
		default:
			assert.Equal(t, original[i], grad[i])
		}
	}
	assert.Equal(t, topN+nRandom, len(chosen))
	// Expected size of the random set is floor(b*n) = 100.
	assert.InDelta(t, 100, nRandom, 40)

	// Compensation: the rescaled mass of the random set approximates the
	// gradient mass of all non-top rows.
	restMass, sampledMass := 0.0, 0.0
	for i := 0; i < n-topN; i++ {
		restMass += original[i]
		if chosenSet[i] {
			sampledMass += grad[i]
		}
	}
	assert.InDelta(t, restMass, sampledMass, restMass*0.5)
}

func TestGossSamplerRowIDsFromIndex(t *testing.T) {
	// Eligible rows are a sparse subset; returned ids must come from it.
	index := []int{3, 11, 20, 35, 42, 57, 61, 70, 88, 99}
	grad := make([]float64, 100)
	hess := make([]float64, 100)
	for _, i := range index {
		grad[i] = float64(i)
		hess[i] = 1
	}

	s, err := NewGossSampler[float64](0.5, 0.2)
	require.NoError(t, err)
	chosen, _, err := s.Sample(newRng(13), index, grad, hess)
	require.NoError(t, err)

	valid := make(map[int]bool, len(index))
	for _, i := range index {
		valid[i] = true
	}
	for _, i := range chosen {
		assert.True(t, valid[i], "row %d is not eligible", i)
	}

	// Top half by |gradient|: 57, 61, 70, 88, 99.
	for _, i := range []int{57, 61, 70, 88, 99} {
		assert.Contains(t, chosen, i)
	}
}

func TestGossSamplerDegeneratePool(t *testing.T) {
	grad := []float64{1, 2, 3, 4}
	hess := []float64{1, 1, 1, 1}

	// top_rate 1 leaves nothing to subsample while other_rate asks for rows.
	s, err := NewGossSampler[float64](1, 0.5)
	require.NoError(t, err)
	_, _, err = s.Sample(newRng(1), identityIndex(4), grad, hess)
	require.Error(t, err)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))

	// With other_rate 0 the full top set is simply returned.
	s, err = NewGossSampler[float64](1, 0)
	require.NoError(t, err)
	chosen, excluded, err := s.Sample(newRng(1), identityIndex(4), grad, hess)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, chosen)
	assert.Empty(t, excluded)
	assert.Equal(t, []float64{1, 2, 3, 4}, grad, "nothing to rescale")
}

func TestGossSamplerZeroOtherRate(t *testing.T) {
	grad := []float64{0.1, 0.9, 0.5, 0.7, 0.3, 0.8}
	hess := []float64{1, 1, 1, 1, 1, 1}

	s, err := NewGossSampler[float64](0.5, 0)
	require.NoError(t, err)
	chosen, _, err := s.Sample(newRng(2), identityIndex(6), grad, hess)
	require.NoError(t, err)

	// floor(0.5*6) = 3 top rows, no random remainder.
	assert.ElementsMatch(t, []int{1, 5, 3}, chosen)
}

func TestGossSamplerEmptyIndex(t *testing.T) {
	s := DefaultGoss[float64]()
	chosen, excluded, err := s.Sample(newRng(1), nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, chosen)
	assert.Empty(t, excluded)
}

func TestFromConfig(t *testing.T) {
	s, err := FromConfig[float64](Config{Method: None})
	require.NoError(t, err)
	assert.IsType(t, NoneSampler[float64]{}, s)

	s, err = FromConfig[float64](Config{Method: Random, Subsample: 0.8})
	require.NoError(t, err)
	assert.IsType(t, &RandomSampler[float64]{}, s)

	s, err = FromConfig[float64](Config{Method: Goss, TopRate: 0.2, OtherRate: 0.1})
	require.NoError(t, err)
	assert.IsType(t, &GossSampler[float64]{}, s)

	_, err = FromConfig[float64](Config{Method: Random, Subsample: 0})
	assert.Error(t, err)

	_, err = FromConfig[float64](Config{Method: Method(42)})
	assert.Error(t, err)
}
