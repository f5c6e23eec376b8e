// Package cmd implements the cachesim command-line tool.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var rootCmd = &cobra.Command{
	Use:   "cachesim",
	Short: "cachesim simulates a single-level CPU data cache against a request trace.",
	Long: `cachesim replays a CSV trace of CPU memory requests against a direct-mapped ` +
		`or 4-way set-associative cache model and reports elapsed cycles, hits, misses, ` +
		`and an estimated primitive-gate count for the modeled hardware.`,
}

// Execute runs the root command, exiting the process with a non-zero
// status on failure. Registered atexit handlers (closing the history
// database and the input trace file) run before the process exits either
// way.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
		return
	}

	atexit.Exit(0)
}
