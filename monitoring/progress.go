package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/cachesim/sim"
)

// A ProgressBar tracks how far a trace replay has gotten, for the
// dashboard's /api/progress endpoint to report back to a human watching
// `cachesim run --serve`.
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// requestProgressHook advances a ProgressBar on every completed request and
// removes it from the dashboard once the trace is exhausted. TrackRequests
// wires it to the CPU's HookPosRequestDone.
type requestProgressHook struct {
	monitor *Monitor
	bar     *ProgressBar
}

// Func implements sim.Hook.
func (h *requestProgressHook) Func(_ sim.HookCtx) {
	h.bar.IncrementFinished(1)

	h.bar.Lock()
	done := h.bar.Finished >= h.bar.Total
	h.bar.Unlock()

	if done {
		h.monitor.CompleteProgressBar(h.bar)
	}
}

// TrackRequests creates a progress bar with the given name, registers it
// with the dashboard, and returns a sim.Hook that advances the bar on every
// invocation; the CPU invokes its hooks once per
// cachesim.HookPosRequestDone. Pass the returned hook to
// the CPU's AcceptHook to wire up live progress for `cachesim run --serve`.
func (m *Monitor) TrackRequests(name string, total uint64) sim.Hook {
	bar := m.CreateProgressBar(name, total)

	return &requestProgressHook{monitor: m, bar: bar}
}
