// Package config provides configuration structures and loading for amplisearch.
package config

// Stopping and rebuild policy names.
const (
	StoppingAdaptive = "adaptive"
	StoppingFixed    = "fixed"

	RebuildReuse   = "reuse"
	RebuildEachHit = "rebuild"
)

// Config represents the complete application configuration.
type Config struct {
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Counting CountingConfig `yaml:"counting" mapstructure:"counting"`
	Oracle   OracleConfig   `yaml:"oracle" mapstructure:"oracle"`
	Sweep    SweepConfig    `yaml:"sweep" mapstructure:"sweep"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// SearchConfig controls the discovery loop.
type SearchConfig struct {
	ProbMin        float64 `yaml:"prob_min" mapstructure:"prob_min"`               // acceptable miss probability per remaining target
	FallbackBudget int     `yaml:"fallback_budget" mapstructure:"fallback_budget"` // budget while nothing is found yet
	StoppingPolicy string  `yaml:"stopping_policy" mapstructure:"stopping_policy"` // adaptive or fixed
	FixedBudget    int     `yaml:"fixed_budget" mapstructure:"fixed_budget"`       // budget of the fixed policy
	RebuildPolicy  string  `yaml:"rebuild_policy" mapstructure:"rebuild_policy"`   // reuse or rebuild
	MaxSamples     int     `yaml:"max_samples" mapstructure:"max_samples"`         // 0 disables the cap
}

// CountingConfig controls phase counting.
type CountingConfig struct {
	Shots  int `yaml:"shots" mapstructure:"shots"`
	Trials int `yaml:"trials" mapstructure:"trials"`
}

// OracleConfig selects the sampling backend.
type OracleConfig struct {
	Engine               string `yaml:"engine" mapstructure:"engine"` // analytic or statevector
	Seed                 uint64 `yaml:"seed" mapstructure:"seed"`     // 0 picks a random base seed
	MaxStateVectorQubits int    `yaml:"max_state_vector_qubits" mapstructure:"max_state_vector_qubits"`
}

// QubitRange is an inclusive range of data-qubit counts.
type QubitRange struct {
	Min int `yaml:"min_qubits" mapstructure:"min_qubits"`
	Max int `yaml:"max_qubits" mapstructure:"max_qubits"`
}

// SweepConfig controls parameter sweeps over (n, M).
type SweepConfig struct {
	Discovery QubitRange `yaml:"discovery" mapstructure:"discovery"`
	Counting  QubitRange `yaml:"counting" mapstructure:"counting"`
	Workers   int        `yaml:"workers" mapstructure:"workers"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with the reference parameters of the algorithm.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			ProbMin:        0.1,
			FallbackBudget: 10,
			StoppingPolicy: StoppingAdaptive,
			FixedBudget:    10,
			RebuildPolicy:  RebuildReuse,
			MaxSamples:     0,
		},
		Counting: CountingConfig{
			Shots:  10,
			Trials: 20,
		},
		Oracle: OracleConfig{
			Engine:               "analytic",
			MaxStateVectorQubits: 16,
		},
		Sweep: SweepConfig{
			Discovery: QubitRange{Min: 3, Max: 9},
			Counting:  QubitRange{Min: 3, Max: 6},
			Workers:   4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
