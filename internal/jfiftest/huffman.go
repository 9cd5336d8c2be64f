package jfiftest

import "bytes"

// Code is a Huffman code, right-aligned in Bits.
type Code struct {
	Bits uint16
	Len  int
}

// Codes assigns canonical codes to the symbols of a DHT table.
func Codes(counts [16]byte, symbols []byte) map[byte]Code {
	codes := make(map[byte]Code, len(symbols))

	code := uint16(0)
	p := 0
	for l := 0; l < 16; l++ {
		for i := 0; i < int(counts[l]); i++ {
			if p < len(symbols) {
				codes[symbols[p]] = Code{Bits: code, Len: l + 1}
				code++
				p++
			}
		}
		code <<= 1
	}

	return codes
}

// Category returns the magnitude category of val and its size-bit representation.
func Category(val int) (size int, bits uint32) {
	if val == 0 {
		return 0, 0
	}

	abs := val
	if abs < 0 {
		abs = -abs
	}

	size = 1
	for (1 << uint(size)) <= abs {
		size++
	}

	if val > 0 {
		bits = uint32(val)
	} else {
		bits = uint32((1 << uint(size)) + val - 1)
	}

	return size, bits
}

// BitWriter packs bits MSB-first and stuffs a 0x00 after every 0xFF byte.
type BitWriter struct {
	buf   bytes.Buffer
	bits  uint32
	nBits int
}

// WriteBits appends the low n bits of bits.
func (w *BitWriter) WriteBits(bits uint32, n int) {
	if n == 0 {
		return
	}

	w.bits = (w.bits << uint(n)) | (bits & ((1 << uint(n)) - 1))
	w.nBits += n

	for w.nBits >= 8 {
		w.writeByte(byte(w.bits >> uint(w.nBits-8)))
		w.nBits -= 8
	}
}

// WriteCode appends a Huffman code.
func (w *BitWriter) WriteCode(c Code) {
	w.WriteBits(uint32(c.Bits), c.Len)
}

func (w *BitWriter) writeByte(b byte) {
	w.buf.WriteByte(b)
	if b == 0xFF {
		w.buf.WriteByte(0x00)
	}
}

// Bytes pads the last byte with 1 bits and returns the stuffed data.
func (w *BitWriter) Bytes() []byte {
	if w.nBits > 0 {
		pad := 8 - w.nBits
		w.writeByte(byte((w.bits << uint(pad)) | ((1 << uint(pad)) - 1)))
		w.nBits = 0
		w.bits = 0
	}
	return w.buf.Bytes()
}

// EncodeBlock writes one block: the DC difference followed by the 63 AC values given
// in serialized order, run-length coded with ZRL and EOB.
func (w *BitWriter) EncodeBlock(dc, ac map[byte]Code, dcDiff int, acValues []int) {
	size, bits := Category(dcDiff)
	w.WriteCode(dc[byte(size)])
	w.WriteBits(bits, size)

	zeroRun := 0
	for k := 0; k < 63 && k < len(acValues); k++ {
		val := acValues[k]
		if val == 0 {
			zeroRun++
			continue
		}

		for zeroRun >= 16 {
			w.WriteCode(ac[0xF0])
			zeroRun -= 16
		}

		size, bits := Category(val)
		w.WriteCode(ac[byte(zeroRun<<4|size)])
		w.WriteBits(bits, size)
		zeroRun = 0
	}

	if len(acValues) < 63 || zeroRun > 0 {
		w.WriteCode(ac[0x00])
	}
}
