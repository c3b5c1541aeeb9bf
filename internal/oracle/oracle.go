// Package oracle models the measurement statistics of amplitude amplification.
//
// An oracle stands in for a quantum sampling backend: given a search space of
// size N, a marked set and an amplification round count it draws measured
// indices whose distribution follows the amplitude-amplification law, and for
// phase counting it draws counting-register outcomes.
package oracle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dbsmedya/amplisearch/internal/types"
)

// ErrInvalidConfiguration is returned for malformed space sizes, marked sets,
// iteration counts or counting widths. It is always fatal to the call.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Engine names accepted by New.
const (
	EngineAnalytic    = "analytic"
	EngineStateVector = "statevector"
)

// Sampler draws one measured index from a search space after a number of
// amplification rounds.
type Sampler interface {
	Sample(spaceSize int, marked *types.MarkedSet, iterations int, rng *rand.Rand) (int, error)
}

// CountingSampler draws one counting-register outcome of phase counting with
// a register of the given width.
type CountingSampler interface {
	SampleCounting(spaceSize int, marked *types.MarkedSet, width int, rng *rand.Rand) (int, error)
}

// Oracle is a complete sampling backend.
type Oracle interface {
	Sampler
	CountingSampler
}

// New returns the oracle engine with the given name. maxQubits bounds the
// state-vector engine and is ignored by the analytic one.
func New(engine string, maxQubits int) (Oracle, error) {
	switch strings.ToLower(engine) {
	case EngineAnalytic, "":
		return Analytic{}, nil
	case EngineStateVector:
		return NewStateVector(maxQubits), nil
	default:
		return nil, fmt.Errorf("%w: unknown oracle engine %q", ErrInvalidConfiguration, engine)
	}
}

// ResolveSeed returns seed, or a fresh random seed when seed is zero.
func ResolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return seed
}

// NewRand returns a deterministic random source for one run.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ValidateSpace checks the search space size and marked-set membership.
func ValidateSpace(spaceSize int, marked *types.MarkedSet) error {
	if spaceSize < 4 {
		return fmt.Errorf("%w: space size %d is below 4", ErrInvalidConfiguration, spaceSize)
	}
	if spaceSize&(spaceSize-1) != 0 {
		return fmt.Errorf("%w: space size %d is not a power of two", ErrInvalidConfiguration, spaceSize)
	}
	if marked == nil {
		return fmt.Errorf("%w: marked set is nil", ErrInvalidConfiguration)
	}
	if hi, ok := marked.Max(); ok && hi >= spaceSize {
		return fmt.Errorf("%w: marked element %d outside [0, %d)", ErrInvalidConfiguration, hi, spaceSize)
	}
	return nil
}

func validateSample(spaceSize int, marked *types.MarkedSet, iterations int, rng *rand.Rand) error {
	if err := ValidateSpace(spaceSize, marked); err != nil {
		return err
	}
	if iterations < 0 {
		return fmt.Errorf("%w: iteration count %d is negative", ErrInvalidConfiguration, iterations)
	}
	if rng == nil {
		return fmt.Errorf("%w: random source is nil", ErrInvalidConfiguration)
	}
	return nil
}

func validateCounting(spaceSize int, marked *types.MarkedSet, width int, rng *rand.Rand) error {
	if err := ValidateSpace(spaceSize, marked); err != nil {
		return err
	}
	if width < 1 || width > 24 {
		return fmt.Errorf("%w: counting width %d outside [1, 24]", ErrInvalidConfiguration, width)
	}
	if rng == nil {
		return fmt.Errorf("%w: random source is nil", ErrInvalidConfiguration)
	}
	return nil
}

// Qubits returns n for a space of size 2^n.
func Qubits(spaceSize int) int {
	n := 0
	for s := spaceSize; s > 1; s >>= 1 {
		n++
	}
	return n
}
