package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/cachesim"
	"github.com/sarchlab/cachesim/config"
	"github.com/sarchlab/cachesim/ingest"
	"github.com/sarchlab/cachesim/snapshot"
)

var inspectDepth int

var inspectCmd = &cobra.Command{
	Use:   "inspect <inputFile>",
	Short: "Run a trace and dump the final cache state as JSON, without printing the summary.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectDepth, "depth", 3, "how many field levels deep to serialize")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	cfg := config.Default()
	cfg.InputFile = args[0]

	if _, err := cfg.Validate(); err != nil {
		return err
	}

	f, err := os.Open(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cfg.InputFile, err)
	}
	atexit.Register(func() { f.Close() })

	requests, err := ingest.ReadCSV(f)
	if err != nil {
		return err
	}

	harness, err := cachesim.MakeBuilder().
		WithCacheLines(cfg.CacheLines).
		WithLineSize(cfg.CacheLineSize).
		WithCacheLatency(cfg.CacheLatency).
		WithMemoryLatency(cfg.MemoryLatency).
		WithCycleBudget(cfg.Cycles).
		Build(requests)
	if err != nil {
		return err
	}

	if _, err := harness.Run(); err != nil {
		return err
	}

	data, err := snapshot.Of(harness.Cache, inspectDepth)
	if err != nil {
		return fmt.Errorf("serializing cache state: %w", err)
	}

	fmt.Println(string(data))

	return nil
}
