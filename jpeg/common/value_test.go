package common

import "testing"

func TestExtend(t *testing.T) {
	tests := []struct {
		v    uint32
		size uint
		want int32
	}{
		{0, 0, 0},
		{0, 1, -1},
		{1, 1, 1},
		{0b00, 2, -3},
		{0b01, 2, -2},
		{0b10, 2, 2},
		{0b11, 2, 3},
		{0b101, 3, 5},
		{0b011, 3, -4},
		{0, 11, -2047},
		{2047, 11, 2047},
		{1024, 11, 1024},
		{1023, 11, -1024},
	}

	for _, tt := range tests {
		if got := Extend(tt.v, tt.size); got != tt.want {
			t.Errorf("Extend(%b, %d) = %d, want %d", tt.v, tt.size, got, tt.want)
		}
	}
}

func TestExtendSignSymmetry(t *testing.T) {
	for size := uint(1); size <= 11; size++ {
		top := uint32(1)<<size - 1
		for v := uint32(0); v <= top; v++ {
			pos := Extend(v, size)
			neg := Extend(top-v, size)
			if pos != -neg {
				t.Fatalf("size %d: Extend(%d) = %d, Extend(%d) = %d", size, v, pos, top-v, neg)
			}

			lo, hi := int32(1)<<(size-1), int32(1)<<size-1
			abs := pos
			if abs < 0 {
				abs = -abs
			}
			if abs < lo || abs > hi {
				t.Fatalf("size %d: Extend(%d) = %d outside category", size, v, pos)
			}
		}
	}
}

func TestReceiveExtend(t *testing.T) {
	buf := []byte{0b10101100}
	offset := uint(0)

	v, err := ReceiveExtend(buf, &offset, 3)
	if err != nil || v != 5 || offset != 3 {
		t.Fatalf("ReceiveExtend = %d, %v at offset %d, want 5 at 3", v, err, offset)
	}

	v, err = ReceiveExtend(buf, &offset, 0)
	if err != nil || v != 0 || offset != 3 {
		t.Fatalf("ReceiveExtend(size 0) = %d, %v at offset %d, want 0 at 3", v, err, offset)
	}

	v, err = ReceiveExtend(buf, &offset, 2)
	if err != nil || v != -2 || offset != 5 {
		t.Fatalf("ReceiveExtend = %d, %v at offset %d, want -2 at 5", v, err, offset)
	}

	if _, err := ReceiveExtend(buf, &offset, 4); err == nil {
		t.Error("ReceiveExtend past the end succeeded")
	}
}
