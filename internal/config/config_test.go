package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Search defaults are the reference constants of the algorithm
	if cfg.Search.ProbMin != 0.1 {
		t.Errorf("expected prob_min 0.1, got %v", cfg.Search.ProbMin)
	}
	if cfg.Search.FallbackBudget != 10 {
		t.Errorf("expected fallback_budget 10, got %d", cfg.Search.FallbackBudget)
	}
	if cfg.Search.StoppingPolicy != StoppingAdaptive {
		t.Errorf("expected adaptive stopping policy, got %s", cfg.Search.StoppingPolicy)
	}
	if cfg.Search.RebuildPolicy != RebuildReuse {
		t.Errorf("expected reuse rebuild policy, got %s", cfg.Search.RebuildPolicy)
	}
	if cfg.Search.MaxSamples != 0 {
		t.Errorf("expected no sample cap, got %d", cfg.Search.MaxSamples)
	}

	// Counting defaults
	if cfg.Counting.Shots != 10 {
		t.Errorf("expected counting shots 10, got %d", cfg.Counting.Shots)
	}
	if cfg.Counting.Trials != 20 {
		t.Errorf("expected counting trials 20, got %d", cfg.Counting.Trials)
	}

	// Sweep defaults
	if cfg.Sweep.Discovery.Min != 3 || cfg.Sweep.Discovery.Max != 9 {
		t.Errorf("expected discovery range 3..9, got %d..%d", cfg.Sweep.Discovery.Min, cfg.Sweep.Discovery.Max)
	}
	if cfg.Sweep.Counting.Min != 3 || cfg.Sweep.Counting.Max != 6 {
		t.Errorf("expected counting range 3..6, got %d..%d", cfg.Sweep.Counting.Min, cfg.Sweep.Counting.Max)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides(Overrides{
		LogLevel: "debug",
		Engine:   "statevector",
		Seed:     42,
		ProbMin:  0.05,
		Policy:   StoppingFixed,
		Workers:  8,
	})

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level override, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format untouched, got %s", cfg.Logging.Format)
	}
	if cfg.Oracle.Engine != "statevector" {
		t.Errorf("expected engine override, got %s", cfg.Oracle.Engine)
	}
	if cfg.Oracle.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Oracle.Seed)
	}
	if cfg.Search.ProbMin != 0.05 {
		t.Errorf("expected prob_min 0.05, got %v", cfg.Search.ProbMin)
	}
	if cfg.Search.StoppingPolicy != StoppingFixed {
		t.Errorf("expected fixed policy, got %s", cfg.Search.StoppingPolicy)
	}
	if cfg.Sweep.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Sweep.Workers)
	}
}

func TestApplyOverrides_ZeroValuesKeepConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides(Overrides{})

	if *cfg != *DefaultConfig() {
		t.Errorf("empty overrides changed the config: %+v", cfg)
	}
}
