package cmd

import (
	"fmt"
	"os"

	"github.com/dbsmedya/amplisearch/internal/config"
	"github.com/dbsmedya/amplisearch/internal/logger"
	"github.com/dbsmedya/amplisearch/internal/oracle"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	engine    string
	seed      uint64
	probMin   float64
	stopping  string
)

var rootCmd = &cobra.Command{
	Use:   "amplisearch",
	Short: "Amplitude amplification search and counting simulator",
	Long: `A simulator for finding every marked element of a search space with
amplitude amplification, and for estimating how many there are.

Features:
  - Target-count estimation from a single-round amplification pass
  - Sequential discovery with an adaptive stopping rule
  - Phase counting with error intervals
  - Analytic and state-vector oracle engines
  - Parallel parameter sweeps with table and HTML chart reports`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "amplisearch.yaml",
		"Path to configuration file (defaults are used when it does not exist)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Oracle overrides
	rootCmd.PersistentFlags().StringVar(&engine, "engine", "",
		"Override oracle engine (analytic, statevector)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0,
		"Override base random seed (0 picks a random seed)")

	// Search overrides
	rootCmd.PersistentFlags().Float64Var(&probMin, "prob-min", 0,
		"Override the miss probability the adaptive stopping rule tolerates")
	rootCmd.PersistentFlags().StringVar(&stopping, "stopping", "",
		"Override stopping policy (adaptive, fixed)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Engine:    engine,
		Seed:      seed,
		ProbMin:   probMin,
		Policy:    stopping,
	}
}

// session bundles what every simulation command needs.
type session struct {
	cfg      *config.Config
	log      *logger.Logger
	oracle   oracle.Oracle
	fromFile bool
}

// loadSession loads the configuration, applies CLI overrides, validates it and
// builds the logger and oracle engine.
func loadSession(overrides config.Overrides) (*session, error) {
	cfg, fromFile, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyOverrides(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	orc, err := oracle.New(cfg.Oracle.Engine, cfg.Oracle.MaxStateVectorQubits)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		log:      log.WithEngine(cfg.Oracle.Engine),
		oracle:   orc,
		fromFile: fromFile,
	}, nil
}

// maxQubits bounds --qubits so that 2^n fits comfortably in an int.
const maxQubits = 30

func checkQubits(n int) error {
	if n < 2 || n > maxQubits {
		return fmt.Errorf("--qubits must be between 2 and %d, got %d", maxQubits, n)
	}
	return nil
}
