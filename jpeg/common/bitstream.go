package common

import "fmt"

// ReadBits returns count bits of buf starting at the absolute bit position bitOffset,
// where bit 0 is the most significant bit of buf[0]. Bits are assembled MSB-first.
//
// Neither buf nor any cursor is modified; callers advance bitOffset themselves.
// buf must already be destuffed.
func ReadBits(buf []byte, bitOffset, count uint) (uint32, error) {
	if count == 0 {
		return 0, nil
	}
	if count > 32 {
		return 0, fmt.Errorf("read of %d bits exceeds accumulator width", count)
	}

	total := uint(len(buf)) * 8
	if bitOffset > total || count > total-bitOffset {
		return 0, fmt.Errorf("%w: %d bits at bit offset %d, %d bits available",
			ErrTruncatedStream, count, bitOffset, total)
	}

	var accum uint32
	for count > 0 {
		cur := buf[bitOffset/8]
		bitsLeft := 8 - bitOffset%8

		// How many bits we need and can take from this byte
		use := bitsLeft
		if count < use {
			use = count
		}

		shift := bitsLeft - use
		mask := byte(0xFF) >> (8 - use)
		accum = accum<<use | uint32((cur>>shift)&mask)

		bitOffset += use
		count -= use
	}

	return accum, nil
}
