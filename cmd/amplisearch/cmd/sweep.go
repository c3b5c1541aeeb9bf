package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dbsmedya/amplisearch/internal/sweep"
	"github.com/spf13/cobra"
)

const (
	sweepModeDiscover = "discover"
	sweepModeCount    = "count"
)

var (
	sweepMode    string
	sweepChart   string
	sweepWorkers int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run discovery or counting over a grid of space sizes and target counts",
	Long: `Sweep runs every (n, M) pair with n in the configured qubit range and
M from 0 to floor(sqrt(2^n)). Each pair gets its own seed derived from the
base seed, so results do not depend on the number of workers.

Output:
  - One line per run
  - An aligned summary table
  - Optionally an HTML line chart (--chart)

Example:
  amplisearch sweep --mode discover --chart discovery.html
  amplisearch sweep --mode count --workers 8 --seed 1`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepMode, "mode", sweepModeDiscover, "Sweep mode (discover, count)")
	sweepCmd.Flags().StringVar(&sweepChart, "chart", "", "Write an HTML chart to this file")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Override number of parallel workers")

	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepMode != sweepModeDiscover && sweepMode != sweepModeCount {
		return fmt.Errorf("--mode must be %q or %q, got %q", sweepModeDiscover, sweepModeCount, sweepMode)
	}

	overrides := GetCLIOverrides()
	overrides.Workers = sweepWorkers
	s, err := loadSession(overrides)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := withInterrupt(parent, func(sig os.Signal) {
		s.log.Warnw("interrupted, canceling remaining runs", "signal", sig.String())
	})
	defer stop()

	runner := sweep.NewRunner(s.cfg, s.oracle, s.log)
	out := cmd.OutOrStdout()

	var render func(io.Writer) error
	switch sweepMode {
	case sweepModeDiscover:
		runs, err := runner.Discovery(ctx)
		if err != nil {
			return fmt.Errorf("discovery sweep failed: %w", err)
		}
		sweep.WriteDiscoveryLines(out, runs)
		fmt.Fprintln(out)
		sweep.WriteDiscoveryTable(out, runs)
		render = func(w io.Writer) error { return sweep.WriteDiscoveryChart(w, runs) }
	case sweepModeCount:
		runs, err := runner.Counting(ctx)
		if err != nil {
			return fmt.Errorf("counting sweep failed: %w", err)
		}
		sweep.WriteCountingLines(out, runs)
		fmt.Fprintln(out)
		sweep.WriteCountingTable(out, runs)
		render = func(w io.Writer) error { return sweep.WriteCountingChart(w, runs) }
	}
	fmt.Fprintf(out, "\nBase seed: %d\n", runner.Seed())

	if sweepChart == "" {
		return nil
	}
	if err := writeChart(sweepChart, render); err != nil {
		return err
	}
	s.log.Infow("chart written", "path", sweepChart)
	return nil
}

func writeChart(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close chart file: %w", cerr)
		}
	}()
	return render(f)
}
