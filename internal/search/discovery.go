package search

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/dbsmedya/amplisearch/internal/config"
	"github.com/dbsmedya/amplisearch/internal/grover"
	"github.com/dbsmedya/amplisearch/internal/logger"
	"github.com/dbsmedya/amplisearch/internal/oracle"
	"github.com/dbsmedya/amplisearch/internal/types"
)

// Phase is the state of a discovery run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSampling
	PhaseConverged
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSampling:
		return "sampling"
	case PhaseConverged:
		return "converged"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Result reports one estimation + discovery run. Missing targets after
// convergence are an expected statistical outcome, not an error.
type Result struct {
	SpaceSize   int
	Total       int             // size of the ground-truth marked set
	Found       *types.FoundSet // targets discovered, including the estimation pass
	Estimate    Estimate
	Estimated   int // targets the first amplified state was sized for
	Rebuilds    int // amplified states built
	FinalBudget int
	Phase       Phase
	CapReached  bool // stopped by MaxSamples before converging
	Stats       types.RunStats

	marked *types.MarkedSet
}

// Complete reports whether every target was found.
func (r *Result) Complete() bool {
	if r.marked == nil {
		return r.Found.Len() == r.Total
	}
	return r.Found.Covers(r.marked)
}

// String renders the run summary: targets found, measurements and rounds.
func (r *Result) String() string {
	s := fmt.Sprintf("terminated with %d/%d solutions found, performed %d measurements and %d amplification rounds",
		r.Found.Len(), r.Total, r.Stats.Measurements, r.Stats.Rounds)
	if r.CapReached {
		s += " (sample cap reached)"
	}
	return s
}

// Loop drives the discovery state machine Idle → Sampling → Converged.
type Loop struct {
	sampler    oracle.Sampler
	policy     StoppingPolicy
	rebuild    string
	maxSamples int
	logger     *logger.Logger
}

// NewLoop creates a discovery loop from the search configuration.
func NewLoop(cfg config.SearchConfig, sampler oracle.Sampler, log *logger.Logger) *Loop {
	if log == nil {
		log = logger.NewDefault()
	}
	rebuild := cfg.RebuildPolicy
	if rebuild == "" {
		rebuild = config.RebuildReuse
	}
	return &Loop{
		sampler:    sampler,
		policy:     NewStoppingPolicy(cfg),
		rebuild:    rebuild,
		maxSamples: cfg.MaxSamples,
		logger:     log,
	}
}

// FindAll estimates the target count and then discovers targets until the
// stopping rule fires.
func (l *Loop) FindAll(spaceSize int, marked *types.MarkedSet, rng *rand.Rand) (*Result, error) {
	start := time.Now()
	est, err := EstimateMarkedCount(l.sampler, spaceSize, marked, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate target count: %w", err)
	}
	l.logger.Debugw("estimation pass finished",
		"mhat", est.Mhat, "hits", est.Hits, "shots", est.Shots, "found", est.Found.Len())

	res, err := l.Discover(spaceSize, marked, est, rng)
	if err != nil {
		return nil, err
	}
	res.Stats.Duration = time.Since(start)
	return res, nil
}

// Discover runs the sampling phase starting from an estimation result.
//
// The ground-truth marked set is never modified. The amplified state is built
// over the targets not yet found at build time. With the reuse policy that
// state is kept for the whole run and only the budget adapts; with the rebuild
// policy every discovery lowers the estimate by one and rebuilds the state.
func (l *Loop) Discover(spaceSize int, marked *types.MarkedSet, est Estimate, rng *rand.Rand) (*Result, error) {
	if l.sampler == nil {
		return nil, fmt.Errorf("%w: sampler is nil", oracle.ErrInvalidConfiguration)
	}
	if err := oracle.ValidateSpace(spaceSize, marked); err != nil {
		return nil, err
	}

	found := est.Found.Clone()
	res := &Result{
		SpaceSize: spaceSize,
		Total:     marked.Len(),
		Found:     found,
		Estimate:  est,
		Phase:     PhaseIdle,
		marked:    marked,
	}
	res.Stats.Add(est.Shots, estimationRounds)

	if est.Mhat <= 0 {
		res.Phase = PhaseConverged
		return res, nil
	}

	estimated := int(math.Floor(est.Mhat+0.5)) - found.Len()
	if estimated <= 0 {
		estimated = 1
	}
	res.Estimated = estimated

	state, err := grover.Build(l.sampler, spaceSize, marked.Without(found), estimated)
	if err != nil {
		return nil, fmt.Errorf("failed to build amplified state: %w", err)
	}
	res.Rebuilds = 1

	budget := l.policy.Budget(found.Len(), estimated)
	misses, sampled := 0, 0
	res.Phase = PhaseSampling

	for misses < budget {
		if l.maxSamples > 0 && sampled >= l.maxSamples {
			res.CapReached = true
			l.logger.Warnw("sample cap reached before convergence",
				"max_samples", l.maxSamples, "found", found.Len(), "misses", misses, "budget", budget)
			break
		}

		x, err := state.Draw(rng)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", sampled, err)
		}
		sampled++
		res.Stats.Add(1, state.Rounds())

		if !marked.Contains(x) || !found.Add(x) {
			misses++
			continue
		}

		misses = 0
		if l.rebuild == config.RebuildEachHit {
			estimated = max(estimated-1, 1)
			state, err = grover.Build(l.sampler, spaceSize, marked.Without(found), estimated)
			if err != nil {
				return nil, fmt.Errorf("failed to rebuild amplified state: %w", err)
			}
			res.Rebuilds++
		}
		budget = l.policy.Budget(found.Len(), estimated)
		l.logger.Debugw("target discovered",
			"target", x, "found", found.Len(), "budget", budget, "assumed", state.Assumed(), "rounds", state.Rounds())
	}

	res.FinalBudget = budget
	if !res.CapReached {
		res.Phase = PhaseConverged
	}
	return res, nil
}
