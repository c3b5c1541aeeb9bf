// Package search estimates how many targets a search space holds and then
// discovers them one by one by sampling an amplified state.
package search

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/dbsmedya/amplisearch/internal/oracle"
	"github.com/dbsmedya/amplisearch/internal/types"
)

const (
	// estimationRounds is the fixed amplification depth of the estimation pass.
	estimationRounds = 1
	// shotsPerRootN scales the estimation shot count: floor(sqrt(N)·10).
	shotsPerRootN = 10
	// estimationDivisor is (2k+1)² for k = estimationRounds. A hit rate p after
	// one round is sin²(3θ), so θ² = asin(√p)²/9 and M ≈ N·θ². Changing
	// estimationRounds requires re-deriving this value.
	estimationDivisor = 9
)

// Estimate is the outcome of the estimation pass.
type Estimate struct {
	Mhat  float64         // continuous estimate of the target count
	Found *types.FoundSet // distinct targets observed during the pass
	Shots int             // samples drawn
	Hits  int             // samples that landed on a target
}

// EstimationShots returns floor(sqrt(spaceSize)·10).
func EstimationShots(spaceSize int) int {
	return int(math.Sqrt(float64(spaceSize)) * shotsPerRootN)
}

// EstimateMarkedCount runs a single-round amplification pass and derives an
// estimate of the number of marked elements. Given a seeded rng the result is
// reproducible.
func EstimateMarkedCount(sampler oracle.Sampler, spaceSize int, marked *types.MarkedSet, rng *rand.Rand) (Estimate, error) {
	if sampler == nil {
		return Estimate{}, fmt.Errorf("%w: sampler is nil", oracle.ErrInvalidConfiguration)
	}
	if err := oracle.ValidateSpace(spaceSize, marked); err != nil {
		return Estimate{}, err
	}

	est := Estimate{
		Found: types.NewFoundSet(),
		Shots: EstimationShots(spaceSize),
	}
	for i := 0; i < est.Shots; i++ {
		x, err := sampler.Sample(spaceSize, marked, estimationRounds, rng)
		if err != nil {
			return Estimate{}, fmt.Errorf("estimation shot %d: %w", i, err)
		}
		if marked.Contains(x) {
			est.Hits++
			est.Found.Add(x)
		}
	}

	est.Mhat = MhatFromHitRate(spaceSize, float64(est.Hits)/float64(est.Shots))
	est.Mhat = math.Max(est.Mhat, float64(est.Found.Len()))
	return est, nil
}

// MhatFromHitRate converts a single-round hit rate into N·asin(√p)²/9.
func MhatFromHitRate(spaceSize int, p float64) float64 {
	a := math.Asin(math.Sqrt(p))
	return float64(spaceSize) * a * a / estimationDivisor
}
