// Package grover sizes amplification rounds and holds a built amplified state
// that can be sampled repeatedly.
package grover

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/dbsmedya/amplisearch/internal/oracle"
	"github.com/dbsmedya/amplisearch/internal/types"
)

// IterationCount returns floor((π/4)·sqrt(spaceSize/assumed)), the rotation
// count that brings an assumed number of targets closest to certainty without
// passing it. Values of assumed below 1 are treated as 1.
func IterationCount(spaceSize, assumed int) int {
	if assumed < 1 {
		assumed = 1
	}
	return int(math.Floor(math.Pi / 4 * math.Sqrt(float64(spaceSize)/float64(assumed))))
}

// State is an amplified state built for one target-count estimate. It stays
// valid only while that estimate is unchanged; a new estimate needs a new State.
type State struct {
	sampler    oracle.Sampler
	spaceSize  int
	marked     *types.MarkedSet
	assumed    int
	iterations int
}

// Build prepares an amplified state over marked, sized for assumed targets.
func Build(sampler oracle.Sampler, spaceSize int, marked *types.MarkedSet, assumed int) (*State, error) {
	if sampler == nil {
		return nil, fmt.Errorf("%w: sampler is nil", oracle.ErrInvalidConfiguration)
	}
	if err := oracle.ValidateSpace(spaceSize, marked); err != nil {
		return nil, err
	}
	if assumed < 1 {
		assumed = 1
	}
	return &State{
		sampler:    sampler,
		spaceSize:  spaceSize,
		marked:     marked,
		assumed:    assumed,
		iterations: IterationCount(spaceSize, assumed),
	}, nil
}

// Draw measures the state once.
func (s *State) Draw(rng *rand.Rand) (int, error) {
	return s.sampler.Sample(s.spaceSize, s.marked, s.iterations, rng)
}

// Rounds returns the amplification rounds each draw consumes.
func (s *State) Rounds() int { return s.iterations }

// Assumed returns the target count the state was sized for.
func (s *State) Assumed() int { return s.assumed }
