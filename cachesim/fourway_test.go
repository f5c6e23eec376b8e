package cachesim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cachesim"
)

var _ = Describe("FourWayCache", func() {
	var cfg cachesim.Config

	BeforeEach(func() {
		cfg = cachesim.Config{
			CacheLines:    4,
			LineSize:      16,
			CacheLatency:  1,
			MemoryLatency: 10,
		}
	})

	It("evicts the oldest resident line in FIFO order", func() {
		mem := cachesim.NewMemory()
		cache, err := cachesim.NewCache("Cache", false, cfg, mem)
		Expect(err).NotTo(HaveOccurred())

		addrs := []uint32{0x000, 0x100, 0x200, 0x300, 0x400}
		for _, a := range addrs {
			outcome := cache.ProcessRequest(&cachesim.Request{Addr: a})
			Expect(outcome.Hit).To(BeFalse())
		}

		stillResident := cache.ProcessRequest(&cachesim.Request{Addr: 0x100})
		Expect(stillResident.Hit).To(BeTrue())

		evicted := cache.ProcessRequest(&cachesim.Request{Addr: 0x000})
		Expect(evicted.Hit).To(BeFalse())
	})

	It("keeps write updates in place on the resident line", func() {
		mem := cachesim.NewMemory()
		cache, err := cachesim.NewCache("Cache", false, cfg, mem)
		Expect(err).NotTo(HaveOccurred())

		w1 := cache.ProcessRequest(&cachesim.Request{Addr: 0x000, WE: true, Data: 0x01020304})
		w2 := cache.ProcessRequest(&cachesim.Request{Addr: 0x004, WE: true, Data: 0x05060708})

		read := &cachesim.Request{Addr: 0x000}
		r := cache.ProcessRequest(read)

		Expect(w1.Hit).To(BeFalse())
		Expect(w2.Hit).To(BeTrue())
		Expect(r.Hit).To(BeTrue())
		Expect(cache.Misses()).To(Equal(uint64(1)))
		Expect(cache.Hits()).To(Equal(uint64(2)))
		Expect(read.Data).To(Equal(uint32(0x01020304)))
	})

	It("requires at least 4 cache lines", func() {
		mem := cachesim.NewMemory()
		_, err := cachesim.NewCache("Cache", false, cachesim.Config{
			CacheLines: 2,
			LineSize:   16,
		}, mem)

		Expect(err).To(HaveOccurred())
	})
})
