package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/cachesim"
	"github.com/sarchlab/cachesim/config"
	"github.com/sarchlab/cachesim/history"
	"github.com/sarchlab/cachesim/ingest"
	"github.com/sarchlab/cachesim/monitoring"
)

var (
	flagCycles        uint64
	flagDirectMapped  bool
	flagFourWay       bool
	flagCacheLineSize uint32
	flagCacheLines    uint32
	flagCacheLatency  uint64
	flagMemoryLatency uint64
	flagTraceFile     string
	flagL2            bool
	flagL3            bool
	flagServe         bool
	flagOpen          bool
	flagHistoryDB     string
)

var runCmd = &cobra.Command{
	Use:   "run <inputFile>",
	Short: "Run a cache simulation against a CSV trace.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().Uint64VarP(&flagCycles, "cycles", "c", 1_000_000_000, "number of cycles to simulate")
	runCmd.Flags().BoolVar(&flagDirectMapped, "directmapped", true, "simulate a direct-mapped cache")
	runCmd.Flags().BoolVar(&flagFourWay, "fourway", false, "simulate a 4-way set-associative cache")
	runCmd.Flags().Uint32Var(&flagCacheLineSize, "cacheline-size", 64, "cache line size in bytes")
	runCmd.Flags().Uint32Var(&flagCacheLines, "cachelines", 512, "number of cache lines")
	runCmd.Flags().Uint64Var(&flagCacheLatency, "cache-latency", 1, "cache hit latency, in cycles")
	runCmd.Flags().Uint64Var(&flagMemoryLatency, "memory-latency", 200, "backing memory latency, in cycles")
	runCmd.Flags().StringVar(&flagTraceFile, "tf", "", "write a waveform trace to this file")
	runCmd.Flags().BoolVar(&flagL2, "L2", false, "L2 preset: cachelines=2^14, cache-latency=5")
	runCmd.Flags().BoolVar(&flagL3, "L3", false, "L3 preset: cachelines=2^15, cache-latency=20")
	runCmd.Flags().BoolVar(&flagServe, "serve", false, "expose the running simulation over a monitoring HTTP server")
	runCmd.Flags().BoolVar(&flagOpen, "open", false, "open the monitoring dashboard in a browser (implies --serve)")
	runCmd.Flags().StringVar(&flagHistoryDB, "history-db", "cachesim-history.db", "SQLite database to log this run into")

	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("directmapped") && cmd.Flags().Changed("fourway") {
		return fmt.Errorf("a cache can't be four-way associative and direct-mapped simultaneously")
	}

	cfg := config.Default()
	cfg.InputFile = args[0]
	cfg.Cycles = flagCycles
	cfg.DirectMapped = !flagFourWay
	cfg.CacheLineSize = flagCacheLineSize
	cfg.CacheLines = flagCacheLines
	cfg.CacheLatency = flagCacheLatency
	cfg.MemoryLatency = flagMemoryLatency
	cfg.TraceFile = flagTraceFile

	if flagL2 {
		cfg.ApplyL2()
	}
	if flagL3 {
		cfg.ApplyL3()
	}

	advisory, err := cfg.Validate()
	if err != nil {
		return err
	}
	if advisory != "" {
		fmt.Fprint(os.Stderr, advisory)
	}

	printInputBanner(cfg)

	f, err := os.Open(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cfg.InputFile, err)
	}
	atexit.Register(func() { f.Close() })

	requests, err := ingest.ReadCSV(f)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		return fmt.Errorf("no operation is given, nothing to run")
	}

	builder := cachesim.MakeBuilder().
		WithCacheLines(cfg.CacheLines).
		WithLineSize(cfg.CacheLineSize).
		WithCacheLatency(cfg.CacheLatency).
		WithMemoryLatency(cfg.MemoryLatency).
		WithCycleBudget(cfg.Cycles)

	if cfg.DirectMapped {
		builder = builder.WithDirectMapped()
	} else {
		builder = builder.WithFourWay()
	}

	if cfg.TraceFile != "" {
		builder = builder.WithTraceFile(cfg.TraceFile)
	}

	harness, err := builder.Build(requests)
	if err != nil {
		return err
	}

	if flagServe || flagOpen {
		mon := monitoring.NewMonitor()
		mon.RegisterEngine(harness.Engine)
		mon.RegisterComponent(harness.CPU)
		mon.RegisterComponent(harness.Cache)
		harness.CPU.AcceptHook(mon.TrackRequests("trace", uint64(len(requests))))

		port := mon.StartServer()
		if flagOpen {
			_ = browser.OpenURL(fmt.Sprintf("http://localhost:%d", port))
		}
	}

	result, err := harness.Run()
	if err != nil {
		return err
	}

	fmt.Printf("OUTPUT:\nCycles: %d\nHits: %d\nMisses: %d\nPrimitiveGate: %d\n",
		result.Cycles, result.Hits, result.Misses, result.PrimitiveGateCount)

	if err := logRun(cfg, result); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not log run to history: %s\n", err)
	}

	return nil
}

// printInputBanner echoes the resolved configuration the way the reference
// tool's INPUT: block does, after flag parsing, the L2/L3 presets, and
// cache-lines rounding have all settled on final values.
func printInputBanner(cfg config.Config) {
	directMapped := 0
	if cfg.DirectMapped {
		directMapped = 1
	}

	traceFile := cfg.TraceFile
	if traceFile == "" {
		traceFile = "None"
	}

	fmt.Printf(
		"INPUT:\nCycles: %d\nDirect Mapped: %d\nCache Line Size: %d\nCache Lines: %d\n"+
			"Cache Latency: %d\nMemory Latency: %d\nTrace File: %s\nInput File: %s\n\n",
		cfg.Cycles, directMapped, cfg.CacheLineSize, cfg.CacheLines,
		cfg.CacheLatency, cfg.MemoryLatency, traceFile, cfg.InputFile)
}

func logRun(cfg config.Config, result cachesim.Result) error {
	store, err := history.Open(flagHistoryDB)
	if err != nil {
		return err
	}
	atexit.Register(func() { store.Close() })

	return store.Record(history.RunRecord{
		RanAt:         time.Now().UTC().Format(time.RFC3339),
		InputFile:     cfg.InputFile,
		DirectMapped:  cfg.DirectMapped,
		CacheLines:    cfg.CacheLines,
		CacheLineSize: cfg.CacheLineSize,
		CacheLatency:  cfg.CacheLatency,
		MemoryLatency: cfg.MemoryLatency,
		Result:        result,
	})
}
