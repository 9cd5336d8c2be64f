package common

// Extend converts the size-bit magnitude category value v into a signed coefficient.
// A leading 1 bit means v is positive as-is; otherwise the value is negative and
// equals v - (2^size - 1). Size 0 encodes 0.
func Extend(v uint32, size uint) int32 {
	if size == 0 {
		return 0
	}
	sign := uint32(1) << (size - 1)
	if v&sign != 0 {
		return int32(v)
	}
	return int32(v) - int32(2*sign) + 1
}

// ReceiveExtend reads size bits at *bitOffset, advances the offset and returns the
// extended value.
func ReceiveExtend(buf []byte, bitOffset *uint, size uint) (int32, error) {
	if size == 0 {
		return 0, nil
	}
	v, err := ReadBits(buf, *bitOffset, size)
	if err != nil {
		return 0, err
	}
	*bitOffset += size
	return Extend(v, size), nil
}
