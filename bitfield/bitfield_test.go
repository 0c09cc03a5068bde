package bitfield_test

import (
	"errors"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/flashfix/bitfield"
)

var _ = Describe("Bitfield", func() {
	Describe("DecomposeValue", func() {
		It("should take the low bits first", func() {
			// 37 = 0b100101 -> low 3 bits 0b101, next 5 bits 0b100
			parts, err := bitfield.DecomposeValue(37, []uint{3, 29})
			Expect(err).NotTo(HaveOccurred())
			Expect(parts).To(Equal([]uint32{5, 4}))
		})

		It("should handle a single full-width field", func() {
			parts, err := bitfield.DecomposeValue(0xFFFFFFFF, []uint{32})
			Expect(err).NotTo(HaveOccurred())
			Expect(parts).To(Equal([]uint32{0xFFFFFFFF}))
		})

		It("should split 0x101 into 8 and 24 bit fields", func() {
			parts, err := bitfield.DecomposeValue(257, []uint{8, 24})
			Expect(err).NotTo(HaveOccurred())
			Expect(parts).To(Equal([]uint32{1, 1}))
		})
	})

	Describe("Decompose", func() {
		It("should group values by field and keep input order", func() {
			values := []uint32{0x00000001, 0x01020304, 0xAABBCCDD}
			fields, err := bitfield.Decompose(values, []uint{8, 8, 16})
			Expect(err).NotTo(HaveOccurred())
			Expect(fields).To(HaveLen(3))
			Expect(fields[0]).To(Equal([]uint32{0x01, 0x04, 0xDD}))
			Expect(fields[1]).To(Equal([]uint32{0x00, 0x03, 0xCC}))
			Expect(fields[2]).To(Equal([]uint32{0x0000, 0x0102, 0xAABB}))
		})

		It("should return empty fields for no values", func() {
			fields, err := bitfield.Decompose(nil, []uint{16, 16})
			Expect(err).NotTo(HaveOccurred())
			Expect(fields).To(HaveLen(2))
			Expect(fields[0]).To(BeEmpty())
			Expect(fields[1]).To(BeEmpty())
		})

		DescribeTable("should reject widths that do not sum to 32",
			func(widths []uint) {
				_, err := bitfield.Decompose([]uint32{1, 2}, widths)
				var schemeErr *bitfield.SchemeError
				Expect(errors.As(err, &schemeErr)).To(BeTrue())
			},
			Entry("too few bits", []uint{8, 8}),
			Entry("too many bits", []uint{16, 16, 1}),
			Entry("single short field", []uint{31}),
			Entry("no fields", []uint{}),
			Entry("zero-width field", []uint{0, 32}),
		)

		It("should reassemble every value it decomposed", func() {
			r := rand.New(rand.NewSource(42))
			layouts := [][]uint{
				{32},
				{3, 29},
				{1, 1, 30},
				{8, 8, 8, 8},
				{5, 7, 11, 9},
				{31, 1},
			}
			for _, widths := range layouts {
				values := make([]uint32, 64)
				for i := range values {
					values[i] = r.Uint32()
				}
				values = append(values, 0, 0xFFFFFFFF)

				fields, err := bitfield.Decompose(values, widths)
				Expect(err).NotTo(HaveOccurred())
				for i := range fields {
					Expect(fields[i]).To(HaveLen(len(values)))
				}

				for j, v := range values {
					parts := make([]uint32, len(widths))
					for i := range widths {
						parts[i] = fields[i][j]
					}
					packed, err := bitfield.Reassemble(parts, widths)
					Expect(err).NotTo(HaveOccurred())
					Expect(packed).To(Equal(v), "widths %v value %#x", widths, v)
				}
			}
		})
	})

	Describe("ParseScheme", func() {
		It("should parse names and widths in declaration order", func() {
			scheme, ok, err := bitfield.ParseScheme("COMB_A_LEN_8_B_LEN_24")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(scheme.Names()).To(Equal([]string{"A", "B"}))
			Expect(scheme.Widths()).To(Equal([]uint{8, 24}))
			Expect(scheme.String()).To(Equal("COMB_A_LEN_8_B_LEN_24"))
		})

		It("should allow underscores inside field names", func() {
			scheme, ok, err := bitfield.ParseScheme("COMB_cycles_first_LEN_16_cycles_second_LEN_16")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(scheme.Names()).To(Equal([]string{"cycles_first", "cycles_second"}))
		})

		It("should ignore symbols outside the convention", func() {
			for _, symbol := range []string{"times", "COMB", "COMBINED_A_LEN_32", "COMB_A_LEN_x"} {
				_, ok, err := bitfield.ParseScheme(symbol)
				Expect(err).NotTo(HaveOccurred(), symbol)
				Expect(ok).To(BeFalse(), symbol)
			}
		})

		It("should report a scheme error for a bad width sum", func() {
			_, ok, err := bitfield.ParseScheme("COMB_A_LEN_8_B_LEN_8")
			Expect(ok).To(BeTrue())
			var schemeErr *bitfield.SchemeError
			Expect(errors.As(err, &schemeErr)).To(BeTrue())
			Expect(schemeErr.Symbol).To(Equal("COMB_A_LEN_8_B_LEN_8"))
			Expect(schemeErr.Sum).To(Equal(uint(16)))
		})
	})

	Describe("Reassemble", func() {
		It("should pack 5 and 4 back into 37", func() {
			v, err := bitfield.Reassemble([]uint32{5, 4}, []uint{3, 29})
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(uint32(37)))
		})

		It("should reject a mismatched field count", func() {
			_, err := bitfield.Reassemble([]uint32{1}, []uint{16, 16})
			Expect(err).To(HaveOccurred())
		})
	})
})
