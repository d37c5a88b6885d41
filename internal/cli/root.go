package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess          = 0
	ExitChangesRequested = 1
	ExitUsageError       = 2
	ExitAuthError        = 3
	ExitRuntimeError     = 4
)

var rootCmd = &cobra.Command{
	Use:   "scry",
	Short: "AI-assisted diff review",
	Long:  "Scry reviews code diffs with an LLM provider and emits a structured verdict with deterministic exit codes.",
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(githubCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print scry version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "scry version %s\n", version)
	},
}
