package cachesim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cachesim"
)

var _ = Describe("Cache configuration validation", func() {
	It("rejects a non-power-of-two line size", func() {
		mem := cachesim.NewMemory()
		_, err := cachesim.NewCache("Cache", true, cachesim.Config{
			CacheLines: 4,
			LineSize:   15,
		}, mem)

		Expect(err).To(HaveOccurred())
	})

	It("rejects a non-power-of-two cache line count", func() {
		mem := cachesim.NewMemory()
		_, err := cachesim.NewCache("Cache", true, cachesim.Config{
			CacheLines: 3,
			LineSize:   16,
		}, mem)

		Expect(err).To(HaveOccurred())
	})
})
