package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/config"
)

var _ = Describe("Config", func() {
	It("rejects a non-csv input file", func() {
		c := config.Default()
		c.InputFile = "trace.txt"

		_, err := c.Validate()
		Expect(err).To(HaveOccurred())
	})

	It("rounds up a non-power-of-two cache line count with an advisory", func() {
		c := config.Default()
		c.InputFile = "trace.csv"
		c.CacheLines = 500

		advisory, err := c.Validate()
		Expect(err).NotTo(HaveOccurred())
		Expect(advisory).NotTo(BeEmpty())
		Expect(c.CacheLines).To(Equal(uint32(512)))
	})

	It("rounds up a non-power-of-two four-way cache line count with the four-way advisory", func() {
		c := config.Default()
		c.InputFile = "trace.csv"
		c.DirectMapped = false
		c.CacheLines = 100

		advisory, err := c.Validate()
		Expect(err).NotTo(HaveOccurred())
		Expect(advisory).To(ContainSubstring("four-way cache must be at least 4 and a power of 2"))
		Expect(c.CacheLines).To(Equal(uint32(128)))
	})

	It("clamps a too-small four-way cache line count to 4", func() {
		c := config.Default()
		c.InputFile = "trace.csv"
		c.DirectMapped = false
		c.CacheLines = 2

		advisory, err := c.Validate()
		Expect(err).NotTo(HaveOccurred())
		Expect(advisory).NotTo(BeEmpty())
		Expect(c.CacheLines).To(Equal(uint32(4)))
	})

	It("applies the L2 preset", func() {
		c := config.Default()
		c.ApplyL2()

		Expect(c.CacheLines).To(Equal(uint32(1 << 14)))
		Expect(c.CacheLatency).To(Equal(uint64(5)))
	})

	It("applies the L3 preset", func() {
		c := config.Default()
		c.ApplyL3()

		Expect(c.CacheLines).To(Equal(uint32(1 << 15)))
		Expect(c.CacheLatency).To(Equal(uint64(20)))
	})

	It("accepts a valid configuration without an advisory", func() {
		c := config.Default()
		c.InputFile = "trace.csv"

		advisory, err := c.Validate()
		Expect(err).NotTo(HaveOccurred())
		Expect(advisory).To(BeEmpty())
	})
})
