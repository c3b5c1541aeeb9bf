package oracle

import (
	"fmt"
	"math"
	"sort"

	"github.com/dbsmedya/amplisearch/internal/types"
)

// Distribution is the measurement distribution over a search space after a
// number of amplification rounds. Mass is uniform within the marked class and
// within the unmarked class.
type Distribution struct {
	SpaceSize   int
	MarkedCount int
	Iterations  int
	MarkedMass  float64 // total probability of drawing any marked element
	PerMarked   float64 // probability of one specific marked element
	PerUnmarked float64 // probability of one specific unmarked element
}

// Probabilities returns the distribution after iterations rounds:
// sin²((2k+1)θ)/M on each marked element and cos²((2k+1)θ)/(N−M) on each
// unmarked one, with θ = asin(sqrt(M/N)). Past the optimum the marked mass
// keeps following the sinusoid and decreases.
func Probabilities(spaceSize int, marked *types.MarkedSet, iterations int) (Distribution, error) {
	if err := ValidateSpace(spaceSize, marked); err != nil {
		return Distribution{}, err
	}
	if iterations < 0 {
		return Distribution{}, fmt.Errorf("%w: iteration count %d is negative", ErrInvalidConfiguration, iterations)
	}
	return distribution(spaceSize, marked.Len(), iterations), nil
}

func distribution(spaceSize, m, iterations int) Distribution {
	d := Distribution{SpaceSize: spaceSize, MarkedCount: m, Iterations: iterations}
	switch {
	case m == 0:
		d.PerUnmarked = 1 / float64(spaceSize)
	case m == spaceSize:
		d.MarkedMass = 1
		d.PerMarked = 1 / float64(m)
	default:
		mass := MarkedMass(spaceSize, m, iterations)
		d.MarkedMass = mass
		d.PerMarked = mass / float64(m)
		d.PerUnmarked = (1 - mass) / float64(spaceSize-m)
	}
	return d
}

// MarkedMass returns sin²((2k+1)θ) for m marked elements out of spaceSize.
func MarkedMass(spaceSize, m, iterations int) float64 {
	theta := Angle(spaceSize, m)
	s := math.Sin(float64(2*iterations+1) * theta)
	return s * s
}

// Angle returns θ = asin(sqrt(m/spaceSize)).
func Angle(spaceSize, m int) float64 {
	return math.Asin(math.Sqrt(float64(m) / float64(spaceSize)))
}

// prob returns the probability of measuring x. marked must be the set the
// distribution was computed for.
func (d Distribution) prob(x int, marked *types.MarkedSet) float64 {
	if x < 0 || x >= d.SpaceSize {
		return 0
	}
	if marked.Contains(x) {
		return d.PerMarked
	}
	return d.PerUnmarked
}

// total returns the summed probability over the whole space.
func (d Distribution) total() float64 {
	return float64(d.MarkedCount)*d.PerMarked + float64(d.SpaceSize-d.MarkedCount)*d.PerUnmarked
}

// unmarkedAt returns the r-th smallest unmarked element (0-based).
func unmarkedAt(r int, marked *types.MarkedSet) int {
	m := marked.Len()
	// x - Rank(x) + 1 counts unmarked elements <= x; the answer lies in [r, r+m].
	d := sort.Search(m+1, func(d int) bool {
		x := r + d
		return x+1-marked.Rank(x) >= r+1
	})
	return r + d
}
