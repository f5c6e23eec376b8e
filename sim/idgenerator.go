package sim

import (
	"strconv"
	"sync/atomic"
)

// IDGenerator can generate IDs
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

var idCounter uint64

// GetIDGenerator returns the ID generator used by this simulation.
// The simulator drives a single SerialEngine on one goroutine, so there is
// no need for the pluggable sequential/parallel generator swap a
// multi-engine framework would want: a monotonically increasing counter is
// deterministic, reproducible across runs of the same trace, and cheap.
func GetIDGenerator() IDGenerator {
	return sequentialIDGenerator{}
}

type sequentialIDGenerator struct{}

func (sequentialIDGenerator) Generate() string {
	n := atomic.AddUint64(&idCounter, 1)
	return strconv.FormatUint(n, 10)
}
