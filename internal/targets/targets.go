// Package targets draws random marked sets for experiments.
package targets

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/dbsmedya/amplisearch/internal/types"
)

// ErrTooManyTargets is returned when more distinct targets are requested
// than the search space holds.
var ErrTooManyTargets = errors.New("too many targets")

// Generate returns count distinct targets drawn uniformly from [0, spaceSize).
func Generate(spaceSize, count int, rng *rand.Rand) (*types.MarkedSet, error) {
	if count < 0 {
		return nil, fmt.Errorf("target count %d is negative", count)
	}
	if count > spaceSize {
		return nil, fmt.Errorf("%w: %d requested from a space of %d", ErrTooManyTargets, count, spaceSize)
	}
	if rng == nil {
		return nil, errors.New("random source is nil")
	}

	// Partial Fisher-Yates when the set is dense, rejection otherwise.
	if count*2 > spaceSize {
		perm := rng.Perm(spaceSize)
		return types.NewMarkedSet(perm[:count]...)
	}
	seen := make(map[int]struct{}, count)
	items := make([]int, 0, count)
	for len(items) < count {
		x := rng.IntN(spaceSize)
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		items = append(items, x)
	}
	return types.NewMarkedSet(items...)
}
