package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// useTestFlags points the commands at a missing config file (defaults), a
// fixed seed and quiet logging, and restores every flag variable afterwards.
func useTestFlags(t *testing.T) {
	t.Helper()
	saved := struct {
		cfgFile, logLevel, logFormat, engine, stopping string
		seed                                           uint64
		probMin                                        float64
		discoverQubits, discoverTargets                int
		discoverRebuild                                string
		countQubits, countTargets, countShots          int
		countTrials                                    int
		sweepMode, sweepChart                          string
		sweepWorkers                                   int
	}{
		cfgFile, logLevel, logFormat, engine, stopping,
		seed, probMin,
		discoverQubits, discoverTargets, discoverRebuild,
		countQubits, countTargets, countShots, countTrials,
		sweepMode, sweepChart, sweepWorkers,
	}
	t.Cleanup(func() {
		cfgFile, logLevel, logFormat, engine, stopping = saved.cfgFile, saved.logLevel, saved.logFormat, saved.engine, saved.stopping
		seed, probMin = saved.seed, saved.probMin
		discoverQubits, discoverTargets, discoverRebuild = saved.discoverQubits, saved.discoverTargets, saved.discoverRebuild
		countQubits, countTargets, countShots, countTrials = saved.countQubits, saved.countTargets, saved.countShots, saved.countTrials
		sweepMode, sweepChart, sweepWorkers = saved.sweepMode, saved.sweepChart, saved.sweepWorkers
	})

	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	logLevel = "error"
	logFormat = ""
	engine = ""
	stopping = ""
	seed = 42
	probMin = 0
}

// capture runs fn with cmd writing into a buffer.
func capture(cmd *cobra.Command, fn func(*cobra.Command, []string) error) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	defer cmd.SetOut(nil)
	err := fn(cmd, nil)
	return buf.String(), err
}
