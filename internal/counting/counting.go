// Package counting estimates the number of marked elements by phase
// counting: the mode of repeated counting-register measurements is turned
// into a point estimate and an error interval.
package counting

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/dbsmedya/amplisearch/internal/config"
	"github.com/dbsmedya/amplisearch/internal/logger"
	"github.com/dbsmedya/amplisearch/internal/oracle"
	"github.com/dbsmedya/amplisearch/internal/types"
)

// CountEstimate is the result of one phase-counting estimate.
type CountEstimate struct {
	Width   int     // counting register width t
	Outcome int     // modal corrected register outcome
	Mhat    float64 // point estimate of the target count
	Min     int     // lower bound, clamped to [0, N]
	Max     int     // upper bound, clamped to [0, N]
	Rounds  int     // controlled amplification rounds consumed
}

// Contains reports whether m lies inside [Min, Max].
func (e CountEstimate) Contains(m int) bool {
	return e.Min <= m && m <= e.Max
}

func (e CountEstimate) String() string {
	return fmt.Sprintf("estimated %.3f targets in [%d, %d] (t=%d, y=%d)", e.Mhat, e.Min, e.Max, e.Width, e.Outcome)
}

// Estimate measures the counting register shots times and derives the count
// estimate from the most frequent outcome. Ties go to the smallest outcome.
func Estimate(sampler oracle.CountingSampler, spaceSize int, marked *types.MarkedSet, shots int, rng *rand.Rand) (CountEstimate, error) {
	if sampler == nil {
		return CountEstimate{}, fmt.Errorf("%w: counting sampler is nil", oracle.ErrInvalidConfiguration)
	}
	if shots < 1 {
		return CountEstimate{}, fmt.Errorf("%w: shot count %d is below 1", oracle.ErrInvalidConfiguration, shots)
	}
	if err := oracle.ValidateSpace(spaceSize, marked); err != nil {
		return CountEstimate{}, err
	}

	width := oracle.CountingWidth(spaceSize)
	counts := make([]int, 1<<width)
	for i := 0; i < shots; i++ {
		y, err := sampler.SampleCounting(spaceSize, marked, width, rng)
		if err != nil {
			return CountEstimate{}, fmt.Errorf("counting shot %d: %w", i, err)
		}
		if y < 0 || y >= len(counts) {
			return CountEstimate{}, fmt.Errorf("counting shot %d: outcome %d outside a %d-bit register", i, y, width)
		}
		counts[y]++
	}

	mode := 0
	for y, c := range counts {
		if c > counts[mode] {
			mode = y
		}
	}

	est := FromOutcome(spaceSize, width, mode)
	est.Rounds = shots * ((1 << width) - 1)
	return est, nil
}

// FromOutcome converts a corrected register outcome y of a width-bit
// register into the count estimate and its interval.
func FromOutcome(spaceSize, width, y int) CountEstimate {
	n := float64(spaceSize)
	size := float64(int(1) << width)

	theta := 2 * math.Pi * float64(y) / size
	s := math.Sin(theta / 2)
	mhat := n * s * s
	eps := (math.Sqrt(2*mhat*n) + n/size) * math.Pow(2, float64(1-width))

	lo := clamp(int(math.Ceil(mhat-eps)), 0, spaceSize)
	hi := clamp(int(math.Floor(mhat+eps)), 0, spaceSize)
	if lo > hi {
		lo, hi = hi, lo
	}
	return CountEstimate{Width: width, Outcome: y, Mhat: mhat, Min: lo, Max: hi}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Summary aggregates repeated estimates against a known target count.
type Summary struct {
	Width        int
	Trials       int
	Shots        int
	MeanAbsError float64 // mean |Mhat − M|
	Covered      int     // trials whose interval contained M
	Stats        types.RunStats
}

// Estimator runs phase-counting estimates with configured shot and trial counts.
type Estimator struct {
	sampler oracle.CountingSampler
	shots   int
	trials  int
	logger  *logger.Logger
}

// NewEstimator creates an estimator from the counting configuration.
func NewEstimator(cfg config.CountingConfig, sampler oracle.CountingSampler, log *logger.Logger) *Estimator {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Estimator{sampler: sampler, shots: cfg.Shots, trials: cfg.Trials, logger: log}
}

// Estimate runs a single estimate.
func (e *Estimator) Estimate(spaceSize int, marked *types.MarkedSet, rng *rand.Rand) (CountEstimate, error) {
	est, err := Estimate(e.sampler, spaceSize, marked, e.shots, rng)
	if err != nil {
		return CountEstimate{}, err
	}
	e.logger.Debugw("counting estimate",
		"outcome", est.Outcome, "mhat", est.Mhat, "min", est.Min, "max", est.Max)
	return est, nil
}

// Trials repeats the estimate and compares each one against the true count.
func (e *Estimator) Trials(spaceSize int, marked *types.MarkedSet, rng *rand.Rand) (Summary, error) {
	if e.trials < 1 {
		return Summary{}, fmt.Errorf("%w: trial count %d is below 1", oracle.ErrInvalidConfiguration, e.trials)
	}

	m := float64(marked.Len())
	sum := Summary{Trials: e.trials, Shots: e.shots}
	var errSum float64
	for i := 0; i < e.trials; i++ {
		est, err := e.WithTrial(i).Estimate(spaceSize, marked, rng)
		if err != nil {
			return Summary{}, fmt.Errorf("trial %d: %w", i, err)
		}
		sum.Width = est.Width
		errSum += math.Abs(est.Mhat - m)
		if est.Contains(marked.Len()) {
			sum.Covered++
		}
		sum.Stats.Measurements += e.shots
		sum.Stats.Rounds += est.Rounds
	}
	sum.MeanAbsError = errSum / float64(e.trials)
	return sum, nil
}

// WithTrial returns a copy of the estimator logging under a trial index.
func (e *Estimator) WithTrial(trial int) *Estimator {
	c := *e
	c.logger = e.logger.WithTrial(trial)
	return &c
}
