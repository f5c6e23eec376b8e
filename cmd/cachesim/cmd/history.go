package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/history"
)

var historyLimit int
var historyDB string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past simulation runs from the history database.",
	RunE:  listHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyDB, "history-db", "cachesim-history.db", "SQLite database to read from")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Truncate the run history database.",
	RunE:  clearHistory,
}

func clearHistory(_ *cobra.Command, _ []string) error {
	store, err := history.Open(historyDB)
	if err != nil {
		return err
	}
	atexit.Register(func() { store.Close() })

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Println("history cleared")
	return nil
}

func listHistory(_ *cobra.Command, _ []string) error {
	store, err := history.Open(historyDB)
	if err != nil {
		return err
	}
	atexit.Register(func() { store.Close() })

	records, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("no runs recorded yet")
		return nil
	}

	for _, r := range records {
		kind := "direct-mapped"
		if !r.DirectMapped {
			kind = "4-way"
		}

		fmt.Printf(
			"#%d  %s  %s  %s (%d x %dB, latency %d/%d)  cycles=%d hits=%d misses=%d gates=%d\n",
			r.ID, r.RanAt, r.InputFile, kind,
			r.CacheLines, r.CacheLineSize, r.CacheLatency, r.MemoryLatency,
			r.Result.Cycles, r.Result.Hits, r.Result.Misses, r.Result.PrimitiveGateCount,
		)
	}

	return nil
}
