package advisor

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("sanitizeColumns", func() {
	It("replaces separators and punctuation with underscores", func() {
		keys := sanitizeColumns([]string{"ID Barang/SKU"})
		Expect(keys).To(HaveLen(1))
		Expect(keys[0].Key).To(Equal("ID_Barang_SKU"))
	})

	It("keeps the original display name for re-expansion", func() {
		keys := sanitizeColumns([]string{"ID Barang/SKU"})
		Expect(keys[0].Original).To(Equal("ID Barang/SKU"))
	})

	It("leaves identifier-safe names untouched", func() {
		keys := sanitizeColumns([]string{"Nama_Produk_2"})
		Expect(keys[0].Key).To(Equal("Nama_Produk_2"))
	})

	It("trims surrounding whitespace before sanitizing", func() {
		keys := sanitizeColumns([]string{"  Harga Satuan  "})
		Expect(keys[0].Original).To(Equal("Harga Satuan"))
		Expect(keys[0].Key).To(Equal("Harga_Satuan"))
	})

	It("turns each character of an internal whitespace run into an underscore", func() {
		keys := sanitizeColumns([]string{"Nama  Produk"})
		Expect(keys[0].Key).To(Equal("Nama__Produk"))
	})
})
