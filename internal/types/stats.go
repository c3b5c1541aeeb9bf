package types

import "time"

// RunStats accumulates the cost of one estimation or discovery run.
type RunStats struct {
	Measurements int           // Samples drawn from the oracle
	Rounds       int           // Amplification rounds consumed across all samples
	Duration     time.Duration // Wall time of the run
}

// Add records n measurements, each costing rounds amplification rounds.
func (s *RunStats) Add(n, rounds int) {
	s.Measurements += n
	s.Rounds += n * rounds
}

// Merge folds other into s.
func (s *RunStats) Merge(other RunStats) {
	s.Measurements += other.Measurements
	s.Rounds += other.Rounds
	s.Duration += other.Duration
}
