package search

import (
	"math"

	"github.com/dbsmedya/amplisearch/internal/config"
)

// StoppingPolicy decides how many consecutive non-discovering samples end a run.
type StoppingPolicy interface {
	// Budget is recomputed after every discovery from the number of targets
	// found so far and the number the amplified state was sized for.
	Budget(found, estimated int) int
	Name() string
}

// Adaptive is the sequential stopping rule ceil(ln(ProbMin)/ln(r)) with
// r = found/estimated: the number of misses after which an undiscovered
// target would have shown up with probability at least 1 − ProbMin.
type Adaptive struct {
	ProbMin  float64
	Fallback int // budget while nothing has been found
}

// Budget implements StoppingPolicy.
func (a Adaptive) Budget(found, estimated int) int {
	if estimated < 1 {
		estimated = 1
	}
	if found <= 0 {
		return a.Fallback
	}
	r := float64(found) / float64(estimated)
	if r >= 1 {
		// ln(1) = 0 would make the budget infinite; pretend one target is left.
		f := float64(max(found, estimated))
		r = f / (f + 1)
	}
	budget := int(math.Ceil(math.Log(a.ProbMin)/math.Log(r) - 1e-9))
	return max(budget, 1)
}

// Name implements StoppingPolicy.
func (Adaptive) Name() string { return config.StoppingAdaptive }

// Fixed tolerates a constant number of misses regardless of progress.
type Fixed struct {
	Limit int
}

// Budget implements StoppingPolicy.
func (f Fixed) Budget(int, int) int { return f.Limit }

// Name implements StoppingPolicy.
func (Fixed) Name() string { return config.StoppingFixed }

// NewStoppingPolicy builds the policy selected in cfg.
func NewStoppingPolicy(cfg config.SearchConfig) StoppingPolicy {
	if cfg.StoppingPolicy == config.StoppingFixed {
		return Fixed{Limit: cfg.FixedBudget}
	}
	return Adaptive{ProbMin: cfg.ProbMin, Fallback: cfg.FallbackBudget}
}
