// Package config resolves the simulator's run parameters from CLI flags
// over built-in defaults, validating and rounding them the way the
// reference tool's option parser does. LoadEnv can load a .env file into
// the process environment, but no Config field is read from the
// environment.
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/joho/godotenv"
)

// Config is the fully resolved, validated set of parameters one simulation
// run needs.
type Config struct {
	InputFile     string
	Cycles        uint64
	DirectMapped  bool
	CacheLineSize uint32
	CacheLines    uint32
	CacheLatency  uint64
	MemoryLatency uint64
	TraceFile     string
}

// Default returns the reference tool's defaults: a billion-cycle budget
// against a 32 KB direct-mapped L1 (512 lines of 64 bytes), 1-cycle hit
// latency, 200-cycle memory latency.
func Default() Config {
	return Config{
		Cycles:        1_000_000_000,
		DirectMapped:  true,
		CacheLineSize: 64,
		CacheLines:    512,
		CacheLatency:  1,
		MemoryLatency: 200,
	}
}

// LoadEnv loads variables from a .env file (if present) into the process
// environment; variables the process environment already sets keep their
// values. A missing file is not an error. Nothing in this package reads
// those variables back into a Config.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// ApplyL2 sets the L2 preset: 2^14 cache lines at 5-cycle latency.
func (c *Config) ApplyL2() {
	c.CacheLines = 1 << 14
	c.CacheLatency = 5
}

// ApplyL3 sets the L3 preset: 2^15 cache lines at 20-cycle latency.
func (c *Config) ApplyL3() {
	c.CacheLines = 1 << 15
	c.CacheLatency = 20
}

// Validate checks the invariants the reference tool enforces before a run:
// a non-zero power-of-two line size, a .csv input file, and a cache-lines
// count it will round up to the next power of two (clamped to at least 4
// for a 4-way cache) if needed, returning an advisory message to print
// to standard error in that case. The rounded count is written back into
// CacheLines, so the advisory and the resolved configuration agree.
func (c *Config) Validate() (advisory string, err error) {
	if !isCSVFile(c.InputFile) {
		return "", fmt.Errorf("not a valid csv file -- %s", c.InputFile)
	}

	if c.CacheLineSize == 0 {
		return "", fmt.Errorf("cache line size can't be 0")
	}
	if !isPowerOfTwo(c.CacheLineSize) {
		return "", fmt.Errorf("cache line size must be a power of 2")
	}

	if c.CacheLines == 0 {
		return "", fmt.Errorf("cache lines can't be 0")
	}

	rounded := c.CacheLines
	if !isPowerOfTwo(c.CacheLines) {
		rounded = nextPowerOfTwo(c.CacheLines)

		if c.DirectMapped {
			advisory = fmt.Sprintf(
				"Attention: cache lines of direct-mapped cache must be a power of 2.\n"+
					"           the simulation will proceed with %d cache lines\n",
				rounded)
		} else {
			if rounded < 4 {
				rounded = 4
			}

			advisory = fmt.Sprintf(
				"Attention: cache lines of four-way cache must be at least 4 and a power of 2.\n"+
					"           the simulation will proceed with %d cache lines\n",
				rounded)
		}

		c.CacheLines = rounded
	}

	if !c.DirectMapped && c.CacheLines < 4 {
		advisory = fmt.Sprintf(
			"Attention: cache lines of four-way cache must be at least 4 and a power of 2.\n" +
				"           the simulation will proceed with 4 cache lines\n")
		c.CacheLines = 4
	}

	return advisory, nil
}

func isCSVFile(name string) bool {
	return len(name) > 4 && name[len(name)-4:] == ".csv"
}

func isPowerOfTwo(n uint32) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOfTwo(n uint32) uint32 {
	return uint32(math.Pow(2, math.Ceil(math.Log2(float64(n)))))
}
