package cachesim_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cachesim"
)

var _ = Describe("Harness", func() {
	It("runs a trace to completion and assembles a Result", func() {
		requests := []cachesim.Request{
			{Addr: 0x00, WE: true, Data: 0xDEADBEEF},
			{Addr: 0x00},
		}

		h, err := cachesim.MakeBuilder().
			WithDirectMapped().
			WithCacheLines(4).
			WithLineSize(16).
			WithCacheLatency(1).
			WithMemoryLatency(10).
			WithCycleBudget(10000).
			Build(requests)
		Expect(err).NotTo(HaveOccurred())

		result, err := h.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Hits).To(Equal(uint64(1)))
		Expect(result.Misses).To(Equal(uint64(1)))
		Expect(result.Cycles).NotTo(Equal(uint64(cachesim.MaxCycles)))
		Expect(requests[1].Data).To(Equal(uint32(0xDEADBEEF)))
	})

	It("reports the max sentinel when the cycle budget runs out", func() {
		requests := []cachesim.Request{
			{Addr: 0x00, WE: true, Data: 1},
			{Addr: 0x04, WE: true, Data: 2},
			{Addr: 0x08, WE: true, Data: 3},
		}

		h, err := cachesim.MakeBuilder().
			WithDirectMapped().
			WithCacheLines(4).
			WithLineSize(16).
			WithCycleBudget(1).
			Build(requests)
		Expect(err).NotTo(HaveOccurred())

		result, err := h.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Cycles).To(Equal(uint64(cachesim.MaxCycles)))
	})

	It("writes a waveform trace file when requested", func() {
		path := os.TempDir() + "/cachesim_harness_test_trace.tsv"
		defer os.Remove(path)

		requests := []cachesim.Request{
			{Addr: 0x00, WE: true, Data: 0xABCD},
		}

		h, err := cachesim.MakeBuilder().
			WithCacheLines(4).
			WithLineSize(16).
			WithTraceFile(path).
			Build(requests)
		Expect(err).NotTo(HaveOccurred())

		_, err = h.Run()
		Expect(err).NotTo(HaveOccurred())

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).To(BeNumerically(">", 0))
	})
})
