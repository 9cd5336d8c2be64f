package common

// BlockSize is the number of coefficients in an 8x8 block.
const BlockSize = 64

// ZigZag maps a serialized (zig-zag) position to its natural row-major index.
var ZigZag = [BlockSize]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// NaturalToZigZag is the inverse of ZigZag: natural index to serialized position.
var NaturalToZigZag = invertZigZag()

func invertZigZag() [BlockSize]int {
	var inv [BlockSize]int
	for serial, natural := range ZigZag {
		inv[natural] = serial
	}
	return inv
}

// DivCeil returns ceil(a / b) for positive b.
func DivCeil(a, b int) int {
	return (a + b - 1) / b
}
