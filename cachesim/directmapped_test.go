package cachesim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cachesim"
)

var _ = Describe("DirectMappedCache", func() {
	var cfg cachesim.Config

	BeforeEach(func() {
		cfg = cachesim.Config{
			CacheLines:    4,
			LineSize:      16,
			CacheLatency:  1,
			MemoryLatency: 10,
		}
	})

	It("charges memory latency and counts a miss on a cold write", func() {
		mem := cachesim.NewMemory()
		cache, err := cachesim.NewCache("Cache", true, cfg, mem)
		Expect(err).NotTo(HaveOccurred())

		req := &cachesim.Request{Addr: 0x00, WE: true, Data: 0xDEADBEEF}
		outcome := cache.ProcessRequest(req)

		Expect(outcome.Hit).To(BeFalse())
		Expect(cache.Misses()).To(Equal(uint64(1)))
		Expect(cache.Hits()).To(Equal(uint64(0)))
		Expect(outcome.Latency).To(BeNumerically(">=", 11))
	})

	It("hits and returns the written value on a re-read", func() {
		mem := cachesim.NewMemory()
		cache, err := cachesim.NewCache("Cache", true, cfg, mem)
		Expect(err).NotTo(HaveOccurred())

		write := &cachesim.Request{Addr: 0x00, WE: true, Data: 0xDEADBEEF}
		cache.ProcessRequest(write)

		read := &cachesim.Request{Addr: 0x00}
		outcome := cache.ProcessRequest(read)

		Expect(outcome.Hit).To(BeTrue())
		Expect(cache.Hits()).To(Equal(uint64(1)))
		Expect(cache.Misses()).To(Equal(uint64(1)))
		Expect(read.Data).To(Equal(uint32(0xDEADBEEF)))
	})

	It("misses repeatedly on index collisions between distinct tags", func() {
		mem := cachesim.NewMemory()
		cache, err := cachesim.NewCache("Cache", true, cfg, mem)
		Expect(err).NotTo(HaveOccurred())

		r1 := &cachesim.Request{Addr: 0x00}
		r2 := &cachesim.Request{Addr: 0x40}
		r3 := &cachesim.Request{Addr: 0x00}

		o1 := cache.ProcessRequest(r1)
		o2 := cache.ProcessRequest(r2)
		o3 := cache.ProcessRequest(r3)

		Expect(o1.Hit).To(BeFalse())
		Expect(o2.Hit).To(BeFalse())
		Expect(o3.Hit).To(BeFalse())
		Expect(cache.Hits()).To(Equal(uint64(0)))
		Expect(cache.Misses()).To(Equal(uint64(3)))
	})

	It("reads zero from a never-written address", func() {
		mem := cachesim.NewMemory()
		cache, err := cachesim.NewCache("Cache", true, cfg, mem)
		Expect(err).NotTo(HaveOccurred())

		req := &cachesim.Request{Addr: 0x1000}
		cache.ProcessRequest(req)

		Expect(req.Data).To(Equal(uint32(0)))
	})

	It("handles a misaligned request straddling two lines", func() {
		mem := cachesim.NewMemory()
		cache, err := cachesim.NewCache("Cache", true, cfg, mem)
		Expect(err).NotTo(HaveOccurred())

		req := &cachesim.Request{Addr: 15, WE: true, Data: 0x01020304}
		outcome := cache.ProcessRequest(req)

		Expect(outcome.Hit).To(BeFalse())
		Expect(cache.Misses()).To(Equal(uint64(1)))
	})

	It("processes an access at the top of the address space without overflow", func() {
		mem := cachesim.NewMemory()
		cache, err := cachesim.NewCache("Cache", true, cfg, mem)
		Expect(err).NotTo(HaveOccurred())

		req := &cachesim.Request{Addr: 0xFFFFFFFC}

		Expect(func() { cache.ProcessRequest(req) }).NotTo(Panic())
	})

	It("produces exactly one additional hit on a repeated identical request", func() {
		mem := cachesim.NewMemory()
		cache, err := cachesim.NewCache("Cache", true, cfg, mem)
		Expect(err).NotTo(HaveOccurred())

		req := &cachesim.Request{Addr: 0x20}
		cache.ProcessRequest(req)

		misses := cache.Misses()
		outcome := cache.ProcessRequest(&cachesim.Request{Addr: 0x20})

		Expect(outcome.Hit).To(BeTrue())
		Expect(cache.Misses()).To(Equal(misses))
		Expect(cache.Hits()).To(Equal(uint64(1)))
	})
})
