package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
search:
  prob_min: 0.05
  stopping_policy: fixed
  fixed_budget: 12
  rebuild_policy: rebuild
  max_samples: 5000

counting:
  shots: 25

oracle:
  engine: statevector
  seed: 1234

sweep:
  discovery:
    min_qubits: 4
    max_qubits: 6
  workers: 2

logging:
  level: debug
  format: json
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Search.ProbMin != 0.05 {
		t.Errorf("expected prob_min 0.05, got %v", cfg.Search.ProbMin)
	}
	if cfg.Search.StoppingPolicy != StoppingFixed || cfg.Search.FixedBudget != 12 {
		t.Errorf("expected fixed policy with budget 12, got %s/%d", cfg.Search.StoppingPolicy, cfg.Search.FixedBudget)
	}
	if cfg.Search.RebuildPolicy != RebuildEachHit {
		t.Errorf("expected rebuild policy, got %s", cfg.Search.RebuildPolicy)
	}
	if cfg.Search.MaxSamples != 5000 {
		t.Errorf("expected max_samples 5000, got %d", cfg.Search.MaxSamples)
	}
	// Unset keys keep their defaults
	if cfg.Search.FallbackBudget != 10 {
		t.Errorf("expected default fallback_budget 10, got %d", cfg.Search.FallbackBudget)
	}
	if cfg.Counting.Shots != 25 || cfg.Counting.Trials != 20 {
		t.Errorf("expected counting 25/20, got %d/%d", cfg.Counting.Shots, cfg.Counting.Trials)
	}
	if cfg.Oracle.Engine != "statevector" || cfg.Oracle.Seed != 1234 {
		t.Errorf("unexpected oracle config: %+v", cfg.Oracle)
	}
	if cfg.Sweep.Discovery.Min != 4 || cfg.Sweep.Discovery.Max != 6 {
		t.Errorf("unexpected discovery range: %+v", cfg.Sweep.Discovery)
	}
	if cfg.Sweep.Counting.Min != 3 {
		t.Errorf("expected default counting range, got %+v", cfg.Sweep.Counting)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected json format, got %s", cfg.Logging.Format)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, found, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for missing file")
	}
	if cfg.Search.ProbMin != 0.1 {
		t.Errorf("expected defaults, got prob_min %v", cfg.Search.ProbMin)
	}

	cfg, found, err = LoadOrDefault("")
	if err != nil || found || cfg == nil {
		t.Errorf("expected defaults for empty path, got %v %v %v", cfg, found, err)
	}
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("counting.trials", 7)
	v.Set("search.prob_min", 0.2)

	cfg, err := LoadFromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Counting.Trials != 7 {
		t.Errorf("expected trials 7, got %d", cfg.Counting.Trials)
	}
	if cfg.Search.ProbMin != 0.2 {
		t.Errorf("expected prob_min 0.2, got %v", cfg.Search.ProbMin)
	}
}

func TestEnvVarSubstitution(t *testing.T) {
	t.Setenv("AMPLISEARCH_LOG", "/tmp/amplisearch.log")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "env.yaml")
	content := `
logging:
  output: ${AMPLISEARCH_LOG}
oracle:
  engine: $UNSET_ENGINE_VAR
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Logging.Output != "/tmp/amplisearch.log" {
		t.Errorf("expected substituted output, got %s", cfg.Logging.Output)
	}
	if cfg.Oracle.Engine != "$UNSET_ENGINE_VAR" {
		t.Errorf("expected unset variable to be kept, got %s", cfg.Oracle.Engine)
	}
}
