package oracle

import (
	"fmt"
	"math/rand/v2"

	"github.com/dbsmedya/amplisearch/internal/types"
)

// countingCache is shared by every Analytic value; counting distributions
// depend only on N, M and the register width.
var countingCache = newDistCache(64)

// Analytic samples directly from the closed-form amplitude-amplification law
// without simulating amplitudes. It is safe for concurrent use.
type Analytic struct{}

// Sample draws one index. The draw is a pure function of the rng stream, so
// a seeded source replays the same sequence.
func (Analytic) Sample(spaceSize int, marked *types.MarkedSet, iterations int, rng *rand.Rand) (int, error) {
	if err := validateSample(spaceSize, marked, iterations, rng); err != nil {
		return 0, err
	}
	d := distribution(spaceSize, marked.Len(), iterations)
	u := rng.Float64()
	m := marked.Len()

	if m > 0 && (m == spaceSize || u < d.MarkedMass) {
		return marked.Select(rng.IntN(m))
	}
	return unmarkedAt(rng.IntN(spaceSize-m), marked), nil
}

// SampleCounting draws one corrected counting-register outcome.
func (Analytic) SampleCounting(spaceSize int, marked *types.MarkedSet, width int, rng *rand.Rand) (int, error) {
	if err := validateCounting(spaceSize, marked, width, rng); err != nil {
		return 0, err
	}
	m := marked.Len()
	key := fmt.Sprintf("%d/%d/%d", spaceSize, m, width)
	cdf, err := countingCache.get(key, func() ([]float64, error) {
		return CountingDistribution(spaceSize, m, width), nil
	})
	if err != nil {
		return 0, err
	}
	return sampleCDF(cdf, rng), nil
}
