package cachesim

import "math"

// MaxCycles is the sentinel value reported as Cycles when the CPU exhausts
// its cycle budget before the trace completes.
const MaxCycles = math.MaxUint64

// Result is the outcome of one simulation run.
type Result struct {
	Cycles            uint64
	Hits              uint64
	Misses            uint64
	PrimitiveGateCount uint64
}

// BudgetExhausted reports whether the run ran out of cycles before
// finishing the trace.
func (r Result) BudgetExhausted() bool {
	return r.Cycles == MaxCycles
}
