package oracle

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/dbsmedya/amplisearch/internal/types"
)

// DefaultMaxStateVectorQubits bounds the total register size simulated by StateVector.
const DefaultMaxStateVectorQubits = 16

// StateVector simulates the amplitudes literally: a sign-flip oracle on every
// marked element followed by inversion about the mean, and for counting a
// joint counting ⊗ data register with an explicit inverse Fourier transform.
//
// Cost is O(2^n) per round instead of O(1), so it exists for parity checks
// against Analytic on small spaces. Computed distributions are cached per
// engine, which makes repeated draws from one amplified state cheap.
type StateVector struct {
	MaxQubits int

	once  sync.Once
	cache *distCache
}

// stateVectorCacheSize bounds the distributions one engine keeps; a parallel
// sweep holds one per worker.
const stateVectorCacheSize = 32

// NewStateVector returns a state-vector engine limited to maxQubits qubits.
func NewStateVector(maxQubits int) *StateVector {
	if maxQubits <= 0 {
		maxQubits = DefaultMaxStateVectorQubits
	}
	return &StateVector{MaxQubits: maxQubits}
}

// Amplitudes returns the data-register amplitudes after iterations rounds of
// G = D·O starting from the uniform superposition.
func (sv *StateVector) Amplitudes(spaceSize int, marked *types.MarkedSet, iterations int) ([]float64, error) {
	if err := ValidateSpace(spaceSize, marked); err != nil {
		return nil, err
	}
	if iterations < 0 {
		return nil, fmt.Errorf("%w: iteration count %d is negative", ErrInvalidConfiguration, iterations)
	}
	if n := Qubits(spaceSize); n > sv.MaxQubits {
		return nil, fmt.Errorf("%w: %d data qubits exceed the state-vector limit of %d",
			ErrInvalidConfiguration, n, sv.MaxQubits)
	}

	amps := make([]float64, spaceSize)
	initial := 1 / math.Sqrt(float64(spaceSize))
	for i := range amps {
		amps[i] = initial
	}
	items := marked.Items()
	for k := 0; k < iterations; k++ {
		flipMarked(amps, items)
		invertAboutMean(amps)
	}
	return amps, nil
}

// Sample draws one measured index from the simulated state.
func (sv *StateVector) Sample(spaceSize int, marked *types.MarkedSet, iterations int, rng *rand.Rand) (int, error) {
	if err := validateSample(spaceSize, marked, iterations, rng); err != nil {
		return 0, err
	}
	key := fmt.Sprintf("sample/%d/%d/%s", spaceSize, iterations, marked)
	cdf, err := sv.cached(key, func() ([]float64, error) {
		amps, err := sv.Amplitudes(spaceSize, marked, iterations)
		if err != nil {
			return nil, err
		}
		probs := make([]float64, len(amps))
		for i, a := range amps {
			probs[i] = a * a
		}
		return probs, nil
	})
	if err != nil {
		return 0, err
	}
	return sampleCDF(cdf, rng), nil
}

// CountingProbabilities returns the corrected counting-register distribution
// obtained by simulating the joint register.
func (sv *StateVector) CountingProbabilities(spaceSize int, marked *types.MarkedSet, width int) ([]float64, error) {
	if err := ValidateSpace(spaceSize, marked); err != nil {
		return nil, err
	}
	if width < 1 {
		return nil, fmt.Errorf("%w: counting width %d is below 1", ErrInvalidConfiguration, width)
	}
	if n := Qubits(spaceSize) + width; n > sv.MaxQubits {
		return nil, fmt.Errorf("%w: %d counting+data qubits exceed the state-vector limit of %d",
			ErrInvalidConfiguration, n, sv.MaxQubits)
	}

	size := 1 << width
	items := marked.Items()
	initial := 1 / math.Sqrt(float64(size*spaceSize))
	joint := make([][]float64, size)
	for c := range joint {
		joint[c] = make([]float64, spaceSize)
		for x := range joint[c] {
			joint[c][x] = initial
		}
	}

	// counting bit j controls 2^j applications of −G
	for j := 0; j < width; j++ {
		rounds := 1 << j
		for c := 0; c < size; c++ {
			if c&(1<<j) == 0 {
				continue
			}
			for r := 0; r < rounds; r++ {
				flipMarked(joint[c], items)
				reflectAboutMean(joint[c])
			}
		}
	}

	cos := make([]float64, size)
	sin := make([]float64, size)
	for i := 0; i < size; i++ {
		a := -2 * math.Pi * float64(i) / float64(size)
		cos[i], sin[i] = math.Cos(a), math.Sin(a)
	}

	probs := make([]float64, size)
	for y := 0; y < size; y++ {
		mass := 0.0
		for x := 0; x < spaceSize; x++ {
			var re, im float64
			for c := 0; c < size; c++ {
				w := (c * y) % size
				re += joint[c][x] * cos[w]
				im += joint[c][x] * sin[w]
			}
			mass += (re*re + im*im) / float64(size)
		}
		probs[CorrectMSB(y, width)] = mass
	}
	return probs, nil
}

// SampleCounting draws one corrected counting-register outcome.
func (sv *StateVector) SampleCounting(spaceSize int, marked *types.MarkedSet, width int, rng *rand.Rand) (int, error) {
	if err := validateCounting(spaceSize, marked, width, rng); err != nil {
		return 0, err
	}
	key := fmt.Sprintf("counting/%d/%d/%s", spaceSize, width, marked)
	cdf, err := sv.cached(key, func() ([]float64, error) {
		return sv.CountingProbabilities(spaceSize, marked, width)
	})
	if err != nil {
		return 0, err
	}
	return sampleCDF(cdf, rng), nil
}

func (sv *StateVector) cached(key string, compute func() ([]float64, error)) ([]float64, error) {
	sv.once.Do(func() { sv.cache = newDistCache(stateVectorCacheSize) })
	return sv.cache.get(key, compute)
}

func flipMarked(amps []float64, items []int) {
	for _, idx := range items {
		amps[idx] = -amps[idx]
	}
}

func mean(amps []float64) float64 {
	sum := 0.0
	for _, a := range amps {
		sum += a
	}
	return sum / float64(len(amps))
}

// invertAboutMean applies D = 2|s⟩⟨s| − I.
func invertAboutMean(amps []float64) {
	m := mean(amps)
	for i := range amps {
		amps[i] = 2*m - amps[i]
	}
}

// reflectAboutMean applies −D, the diffusion as built from H, X and a
// multi-controlled Z.
func reflectAboutMean(amps []float64) {
	m := mean(amps)
	for i := range amps {
		amps[i] -= 2 * m
	}
}
