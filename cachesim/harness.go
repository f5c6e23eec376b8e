package cachesim

import (
	"fmt"

	"github.com/sarchlab/cachesim/sim"
)

// Harness binds a CPU and a cache to a discrete-event engine, runs the
// simulation, and assembles the Result. It is the single entry point the
// CLI (and any other external driver) calls to run one trace against one
// cache configuration.
type Harness struct {
	Engine sim.Engine
	CPU    *CPU
	Cache  Cache

	tracePath string
}

// Builder constructs a Harness from its parameters, mirroring the
// with-method configuration style used throughout the simulated-component
// ecosystem this project draws on.
type Builder struct {
	directMapped  bool
	cacheLines    uint32
	lineSize      uint32
	cacheLatency  uint64
	memoryLatency uint64
	cycleBudget   uint64
	tracePath     string
}

// MakeBuilder creates a Builder with the reference configuration's
// defaults: direct-mapped, 512 lines of 64 bytes, 1-cycle hit latency,
// 200-cycle memory latency, billion-cycle budget.
func MakeBuilder() Builder {
	return Builder{
		directMapped:  true,
		cacheLines:    512,
		lineSize:      64,
		cacheLatency:  1,
		memoryLatency: 200,
		cycleBudget:   1_000_000_000,
	}
}

// WithDirectMapped selects the direct-mapped organization (the default).
func (b Builder) WithDirectMapped() Builder {
	b.directMapped = true
	return b
}

// WithFourWay selects the 4-way FIFO organization.
func (b Builder) WithFourWay() Builder {
	b.directMapped = false
	return b
}

// WithCacheLines sets the number of cache lines.
func (b Builder) WithCacheLines(n uint32) Builder {
	b.cacheLines = n
	return b
}

// WithLineSize sets the cache line size in bytes.
func (b Builder) WithLineSize(n uint32) Builder {
	b.lineSize = n
	return b
}

// WithCacheLatency sets the per-request cache hit latency, in cycles.
func (b Builder) WithCacheLatency(n uint64) Builder {
	b.cacheLatency = n
	return b
}

// WithMemoryLatency sets the per-missed-byte backing-memory latency, in
// cycles.
func (b Builder) WithMemoryLatency(n uint64) Builder {
	b.memoryLatency = n
	return b
}

// WithCycleBudget sets the cycle budget the CPU is allowed before it is
// forced to stop.
func (b Builder) WithCycleBudget(n uint64) Builder {
	b.cycleBudget = n
	return b
}

// WithTraceFile enables a waveform trace, written to path on Run.
func (b Builder) WithTraceFile(path string) Builder {
	b.tracePath = path
	return b
}

// Build allocates the engine, main memory, cache, and CPU, wires them
// together, and returns a Harness ready to Run against requests.
func (b Builder) Build(requests []Request) (*Harness, error) {
	mem := NewMemory()

	cache, err := NewCache("Cache", b.directMapped, Config{
		CacheLines:    b.cacheLines,
		LineSize:      b.lineSize,
		CacheLatency:  b.cacheLatency,
		MemoryLatency: b.memoryLatency,
	}, mem)
	if err != nil {
		return nil, err
	}

	engine := sim.NewSerialEngine()
	cpu := NewCPU("CPU", cache, requests, b.cycleBudget)

	return &Harness{
		Engine:    engine,
		CPU:       cpu,
		Cache:     cache,
		tracePath: b.tracePath,
	}, nil
}

// Run drives the CPU's tick scheduler until the trace is exhausted or the
// cycle budget runs out, optionally recording a waveform trace, and
// assembles the Result.
func (h *Harness) Run() (Result, error) {
	var tracer *Tracer
	if h.tracePath != "" {
		var err error
		tracer, err = NewTracer(h.tracePath)
		if err != nil {
			return Result{}, fmt.Errorf("opening trace file: %w", err)
		}
		defer tracer.Close()

		h.CPU.AcceptHook(tracer)
	}

	ticker := sim.NewTickingComponent("CPU", h.Engine, sim.GHz, h.CPU)
	ticker.TickNow()

	if err := h.Engine.Run(); err != nil {
		return Result{}, fmt.Errorf("running simulation: %w", err)
	}

	return Result{
		Cycles:             h.CPU.Cycles(),
		Hits:               h.Cache.Hits(),
		Misses:             h.Cache.Misses(),
		PrimitiveGateCount: h.Cache.GateCount(),
	}, nil
}
