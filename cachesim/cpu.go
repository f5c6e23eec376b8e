package cachesim

import (
	"github.com/sarchlab/cachesim/sim"
)

// HookPosRequestDone fires after the CPU has committed one request's effect
// on the cache, with a RequestTrace as the hook context's Detail. The
// waveform writer subscribes here.
var HookPosRequestDone = &sim.HookPos{Name: "cachesim.RequestDone"}

// RequestTrace is a snapshot of the signal-level state a hook observes after
// one request completes: the values that would have crossed the
// ready/addr/data/we/cycles/hits/misses wires in a signal-based rendition.
type RequestTrace struct {
	Cycles uint64
	Hits   uint64
	Misses uint64
	Addr   uint32
	Data   uint32
	WE     bool
	Ready  bool
}

// CPU is the request driver: it owns the ordered trace, ticks the 1 ns
// clock, and on each tick calls directly into the bound cache instead of
// going through a ready/addr/data/we signal handshake (the collapse a
// cache-latency-preserving rewrite is permitted to make). Each tick still
// consumes exactly one simulated nanosecond, so cycle accounting matches a
// signal-based implementation cycle for cycle.
type CPU struct {
	*sim.ComponentBase

	cache    Cache
	requests []Request
	budget   uint64

	index          int
	elapsedCycles  uint64
	budgetExceeded bool
	done           bool
}

// NewCPU creates a CPU driving requests into cache, stopping after budget
// cycles even if the trace has not been fully replayed.
func NewCPU(name string, cache Cache, requests []Request, budget uint64) *CPU {
	return &CPU{
		ComponentBase: sim.NewComponentBase(name),
		cache:         cache,
		requests:      requests,
		budget:        budget,
	}
}

// Tick processes the next request in the trace and reports whether the CPU
// should be ticked again. It returns false once the trace is exhausted or
// the cycle budget has run out.
func (c *CPU) Tick(now sim.VTimeInSec) bool {
	if c.done {
		return false
	}

	if c.index >= len(c.requests) {
		c.done = true
		return false
	}

	if c.elapsedCycles >= c.budget {
		c.budgetExceeded = true
		c.done = true
		return false
	}

	c.elapsedCycles++ // the clock tick that carries this request

	req := &c.requests[c.index]
	outcome := c.cache.ProcessRequest(req)
	c.elapsedCycles += outcome.Latency
	c.index++

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosRequestDone,
		Item:   req,
		Detail: RequestTrace{
			Cycles: c.elapsedCycles,
			Hits:   c.cache.Hits(),
			Misses: c.cache.Misses(),
			Addr:   req.Addr,
			Data:   req.Data,
			WE:     req.WE,
			Ready:  true,
		},
	})

	if c.elapsedCycles > c.budget {
		c.budgetExceeded = true
		c.done = true
		return false
	}

	if c.index >= len(c.requests) {
		c.done = true
		return false
	}

	return true
}

// Cycles reports the elapsed cycle count, or the max sentinel if the
// budget ran out before the trace finished.
func (c *CPU) Cycles() uint64 {
	if c.budgetExceeded {
		return MaxCycles
	}

	return c.elapsedCycles
}

// Completed reports whether every request in the trace was processed.
func (c *CPU) Completed() bool {
	return c.index >= len(c.requests) && !c.budgetExceeded
}
