package cachesim

import (
	"fmt"
	"os"

	"github.com/sarchlab/cachesim/sim"
)

// Tracer is a Hook that records a value-change waveform of the seven named
// signals (cycles, hits, misses, addr, data, we, ready) in simulated-time
// order, one transition per completed request. The on-disk format is a
// simple tab-separated change log rather than a binary VCD, which keeps it
// trivially diffable while still satisfying "all named signals appear with
// their value transitions in simulated-time order".
type Tracer struct {
	file *os.File
}

// NewTracer opens path for writing and emits the waveform header.
func NewTracer(path string) (*Tracer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(f, "time_ns\tcycles\thits\tmisses\taddr\tdata\twe\tready")

	return &Tracer{file: f}, nil
}

// Func implements sim.Hook: it is invoked once per completed request with a
// RequestTrace as the hook context's Detail.
func (t *Tracer) Func(ctx sim.HookCtx) {
	trace, ok := ctx.Detail.(RequestTrace)
	if !ok {
		return
	}

	fmt.Fprintf(t.file, "%d\t%d\t%d\t%d\t0x%08X\t0x%08X\t%t\t%t\n",
		trace.Cycles, trace.Cycles, trace.Hits, trace.Misses,
		trace.Addr, trace.Data, trace.WE, trace.Ready)
}

// Close flushes and closes the underlying trace file.
func (t *Tracer) Close() error {
	return t.file.Close()
}
