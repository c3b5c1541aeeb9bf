package cmd

import (
	"fmt"

	"github.com/dbsmedya/amplisearch/internal/config"
	"github.com/dbsmedya/amplisearch/internal/oracle"
	"github.com/dbsmedya/amplisearch/internal/search"
	"github.com/dbsmedya/amplisearch/internal/targets"
	"github.com/spf13/cobra"
)

var (
	discoverQubits  int
	discoverTargets int
	discoverRebuild string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find every marked element of one random search space",
	Long: `Discover draws M random targets in a space of N = 2^n elements, estimates
how many there are, then samples amplified states until the stopping rule
decides no target is left.

The run is reproducible: pass the printed seed back with --seed.

Example:
  amplisearch discover --qubits 8 --targets 5
  amplisearch discover -n 6 -m 3 --seed 42 --rebuild rebuild --stopping fixed`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVarP(&discoverQubits, "qubits", "n", 0, "Number of data qubits (N = 2^n)")
	discoverCmd.Flags().IntVarP(&discoverTargets, "targets", "m", 0, "Number of marked elements")
	discoverCmd.Flags().StringVar(&discoverRebuild, "rebuild", "",
		"Override rebuild policy (reuse, rebuild)")
	_ = discoverCmd.MarkFlagRequired("qubits")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if err := checkQubits(discoverQubits); err != nil {
		return err
	}
	s, err := loadSession(GetCLIOverrides())
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	if discoverRebuild != "" {
		s.cfg.Search.RebuildPolicy = discoverRebuild
		if err := s.cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	spaceSize := 1 << discoverQubits
	runSeed := oracle.ResolveSeed(s.cfg.Oracle.Seed)
	rng := oracle.NewRand(runSeed)
	log := s.log.WithRun(discoverQubits, discoverTargets)

	marked, err := targets.Generate(spaceSize, discoverTargets, rng)
	if err != nil {
		return err
	}

	log.Infow("starting discovery", "seed", runSeed,
		"stopping_policy", s.cfg.Search.StoppingPolicy, "rebuild_policy", s.cfg.Search.RebuildPolicy)
	res, err := search.NewLoop(s.cfg.Search, s.oracle, log).FindAll(spaceSize, marked, rng)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	log.Infow("discovery finished", "found", res.Found.Len(), "phase", res.Phase.String(),
		"measurements", res.Stats.Measurements, "duration", res.Stats.Duration)

	printDiscovery(cmd, s.cfg, runSeed, marked.String(), res)
	return nil
}

func printDiscovery(cmd *cobra.Command, cfg *config.Config, runSeed uint64, marked string, res *search.Result) {
	cmd.Printf("N=%d, M=%d (engine %s, seed %d)\n", res.SpaceSize, res.Total, cfg.Oracle.Engine, runSeed)
	cmd.Printf("  Estimate:  %.3f targets from %d shots (%d hits)\n",
		res.Estimate.Mhat, res.Estimate.Shots, res.Estimate.Hits)
	cmd.Printf("  Policy:    %s stopping, %s state, %d state builds\n",
		cfg.Search.StoppingPolicy, cfg.Search.RebuildPolicy, res.Rebuilds)
	cmd.Printf("  Targets:   %s\n", marked)
	cmd.Printf("  Found:     %s\n", res.Found)
	cmd.Printf("Algorithm %s\n", res)
}
