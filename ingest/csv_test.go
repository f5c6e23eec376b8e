package ingest_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/ingest"
)

var _ = Describe("ReadCSV", func() {
	It("parses writes and reads with decimal and hex tokens", func() {
		input := "W,0x00,0xDEADBEEF\nR,0\nw, 100 , 42\n"

		reqs, err := ingest.ReadCSV(strings.NewReader(input))

		Expect(err).NotTo(HaveOccurred())
		Expect(reqs).To(HaveLen(3))
		Expect(reqs[0].WE).To(BeTrue())
		Expect(reqs[0].Addr).To(Equal(uint32(0)))
		Expect(reqs[0].Data).To(Equal(uint32(0xDEADBEEF)))
		Expect(reqs[1].WE).To(BeFalse())
		Expect(reqs[2].Addr).To(Equal(uint32(100)))
		Expect(reqs[2].Data).To(Equal(uint32(42)))
	})

	It("is case-insensitive on the operation letter", func() {
		reqs, err := ingest.ReadCSV(strings.NewReader("r,0x10\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(reqs).To(HaveLen(1))
		Expect(reqs[0].WE).To(BeFalse())
	})

	It("skips empty lines", func() {
		reqs, err := ingest.ReadCSV(strings.NewReader("W,0,1\n\n   \nR,0\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(reqs).To(HaveLen(2))
	})

	It("rejects a write with no data column", func() {
		_, err := ingest.ReadCSV(strings.NewReader("W,0x00\n"))

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("line 1"))
	})

	It("rejects a read that carries a data column", func() {
		_, err := ingest.ReadCSV(strings.NewReader("R,0x00,0x01\n"))

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("line 1"))
	})

	It("rejects an unrecognized operation letter", func() {
		_, err := ingest.ReadCSV(strings.NewReader("X,0x00\n"))

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("ASCII"))
	})

	It("rejects a missing address", func() {
		_, err := ingest.ReadCSV(strings.NewReader("W\n"))

		Expect(err).To(HaveOccurred())
	})

	It("reports the correct 1-based line number for a later malformed line", func() {
		_, err := ingest.ReadCSV(strings.NewReader("R,0\nR,0\nW,0\n"))

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("line 3"))
	})
})
