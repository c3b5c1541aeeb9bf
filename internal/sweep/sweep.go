// Package sweep runs discovery and counting over a grid of search-space
// sizes and target counts, and renders the results.
package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/dbsmedya/amplisearch/internal/config"
	"github.com/dbsmedya/amplisearch/internal/counting"
	"github.com/dbsmedya/amplisearch/internal/logger"
	"github.com/dbsmedya/amplisearch/internal/oracle"
	"github.com/dbsmedya/amplisearch/internal/search"
	"github.com/dbsmedya/amplisearch/internal/targets"
	"github.com/elliotchance/orderedmap/v2"
	"golang.org/x/sync/errgroup"
)

// Point is one cell of the sweep grid.
type Point struct {
	Qubits  int
	Targets int
}

// SpaceSize returns 2^Qubits.
func (p Point) SpaceSize() int { return 1 << p.Qubits }

func (p Point) String() string {
	return fmt.Sprintf("N=%d, M=%d", p.SpaceSize(), p.Targets)
}

// Grid lists every (n, M) pair for n in the range and M in [0, floor(sqrt(2^n))],
// ordered by n then M.
func Grid(r config.QubitRange) []Point {
	var points []Point
	for n := r.Min; n <= r.Max; n++ {
		maxTargets := int(math.Sqrt(float64(int(1) << n)))
		for m := 0; m <= maxTargets; m++ {
			points = append(points, Point{Qubits: n, Targets: m})
		}
	}
	return points
}

// DeriveSeed mixes the base seed with a grid point so every run has its own
// reproducible random stream regardless of scheduling order.
func DeriveSeed(base uint64, p Point) uint64 {
	z := base ^ (uint64(p.Qubits)<<32 | uint64(p.Targets))
	// splitmix64 finalizer
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// DiscoveryRun is the outcome of one estimation + discovery run.
type DiscoveryRun struct {
	Point  Point
	Seed   uint64
	Result *search.Result
}

// CountingRun is the outcome of the repeated counting trials at one point.
type CountingRun struct {
	Point   Point
	Seed    uint64
	Summary counting.Summary
}

// Runner executes sweeps against one oracle engine.
type Runner struct {
	cfg    *config.Config
	oracle oracle.Oracle
	seed   uint64
	logger *logger.Logger
}

// NewRunner creates a sweep runner. A zero configured seed is replaced by a
// random base seed, available through Seed for replaying the sweep.
func NewRunner(cfg *config.Config, orc oracle.Oracle, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.NewDefault()
	}
	seed := oracle.ResolveSeed(cfg.Oracle.Seed)
	return &Runner{
		cfg:    cfg,
		oracle: orc,
		seed:   seed,
		logger: log.WithFields(map[string]any{
			"seed":    seed,
			"workers": cfg.Sweep.Workers,
		}),
	}
}

// Seed returns the base seed the runs derive their seeds from.
func (r *Runner) Seed() uint64 { return r.seed }

// Discovery runs FindAll once per grid point of the discovery range.
func (r *Runner) Discovery(ctx context.Context) (*orderedmap.OrderedMap[Point, DiscoveryRun], error) {
	points := Grid(r.cfg.Sweep.Discovery)
	r.logger.Infow("starting discovery sweep",
		"runs", len(points))

	return runGrid(ctx, points, r.cfg.Sweep.Workers, func(p Point) (DiscoveryRun, error) {
		seed := DeriveSeed(r.seed, p)
		rng := oracle.NewRand(seed)
		log := r.logger.WithRun(p.Qubits, p.Targets)

		marked, err := targets.Generate(p.SpaceSize(), p.Targets, rng)
		if err != nil {
			return DiscoveryRun{}, err
		}
		res, err := search.NewLoop(r.cfg.Search, r.oracle, log).FindAll(p.SpaceSize(), marked, rng)
		if err != nil {
			return DiscoveryRun{}, err
		}
		log.Debugw("run finished", "found", res.Found.Len(), "measurements", res.Stats.Measurements)
		return DiscoveryRun{Point: p, Seed: seed, Result: res}, nil
	})
}

// Counting runs the configured number of counting trials per grid point of
// the counting range.
func (r *Runner) Counting(ctx context.Context) (*orderedmap.OrderedMap[Point, CountingRun], error) {
	points := Grid(r.cfg.Sweep.Counting)
	r.logger.Infow("starting counting sweep",
		"runs", len(points), "trials", r.cfg.Counting.Trials)

	return runGrid(ctx, points, r.cfg.Sweep.Workers, func(p Point) (CountingRun, error) {
		seed := DeriveSeed(r.seed, p)
		rng := oracle.NewRand(seed)

		marked, err := targets.Generate(p.SpaceSize(), p.Targets, rng)
		if err != nil {
			return CountingRun{}, err
		}
		est := counting.NewEstimator(r.cfg.Counting, r.oracle, r.logger.WithRun(p.Qubits, p.Targets))
		sum, err := est.Trials(p.SpaceSize(), marked, rng)
		if err != nil {
			return CountingRun{}, err
		}
		return CountingRun{Point: p, Seed: seed, Summary: sum}, nil
	})
}

// runGrid evaluates fn for every point with at most workers in flight and
// returns the results in grid order. The first error cancels the remaining runs.
func runGrid[T any](ctx context.Context, points []Point, workers int, fn func(Point) (T, error)) (*orderedmap.OrderedMap[Point, T], error) {
	results := make([]T, len(points))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range points {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := fn(p)
			if err != nil {
				return fmt.Errorf("run %s: %w", p, err)
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := orderedmap.NewOrderedMap[Point, T]()
	for i, p := range points {
		out.Set(p, results[i])
	}
	return out, nil
}
