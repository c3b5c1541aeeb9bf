package cmd

import (
	"runtime"

	"github.com/dbsmedya/amplisearch/internal/oracle"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version, build details and the oracle engines compiled in.`,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	cmd.Printf("amplisearch version %s\n", Version)
	cmd.Printf("  Commit: %s\n", Commit)
	cmd.Printf("  Go version: %s\n", runtime.Version())
	cmd.Printf("  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	cmd.Printf("  Engines: %s, %s (max %d qubits)\n",
		oracle.EngineAnalytic, oracle.EngineStateVector, oracle.DefaultMaxStateVectorQubits)
}
