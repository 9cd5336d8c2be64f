package common

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cocosip/go-jfif/internal/jfiftest"
)

// walk follows an n-bit code from the root. It reports whether the path exists and
// whether it ends on a leaf.
func (t *HuffmanTree) walk(code uint32, n int) (leaf, ok bool) {
	node := int32(0)
	for i := n - 1; i >= 0; i-- {
		next := t.nodes[node].child[(code>>uint(i))&1]
		if next == noChild {
			return false, false
		}
		node = next
	}
	return t.nodes[node].leaf, true
}

func TestBuildHuffmanTreeCanonicalCodes(t *testing.T) {
	tests := []struct {
		name    string
		counts  [16]byte
		symbols []byte
		want    []HuffmanCode
	}{
		{
			name:    "one symbol per length",
			counts:  [16]byte{1, 1, 1},
			symbols: []byte{2, 1, 0},
			want: []HuffmanCode{
				{Symbol: 2, Code: 0b0, Len: 1},
				{Symbol: 1, Code: 0b10, Len: 2},
				{Symbol: 0, Code: 0b110, Len: 3},
			},
		},
		{
			name:    "annex K DC luminance",
			counts:  jfiftest.StandardDCLuminanceBits,
			symbols: jfiftest.StandardDCLuminanceValues,
			want: []HuffmanCode{
				{Symbol: 0, Code: 0b00, Len: 2},
				{Symbol: 1, Code: 0b010, Len: 3},
				{Symbol: 2, Code: 0b011, Len: 3},
				{Symbol: 3, Code: 0b100, Len: 3},
				{Symbol: 4, Code: 0b101, Len: 3},
				{Symbol: 5, Code: 0b110, Len: 3},
				{Symbol: 6, Code: 0b1110, Len: 4},
				{Symbol: 7, Code: 0b11110, Len: 5},
				{Symbol: 8, Code: 0b111110, Len: 6},
				{Symbol: 9, Code: 0b1111110, Len: 7},
				{Symbol: 10, Code: 0b11111110, Len: 8},
				{Symbol: 11, Code: 0b111111110, Len: 9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := BuildHuffmanTree(tt.counts, tt.symbols)
			if err != nil {
				t.Fatalf("BuildHuffmanTree failed: %v", err)
			}
			if tree.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", tree.Len(), len(tt.want))
			}
			if diff := cmp.Diff(tt.want, tree.Codes()); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildHuffmanTreeMatchesReferenceCodes(t *testing.T) {
	tables := []struct {
		name    string
		counts  [16]byte
		symbols []byte
	}{
		{"DC luminance", jfiftest.StandardDCLuminanceBits, jfiftest.StandardDCLuminanceValues},
		{"AC luminance", jfiftest.StandardACLuminanceBits, jfiftest.StandardACLuminanceValues},
		{"DC chrominance", jfiftest.StandardDCChrominanceBits, jfiftest.StandardDCChrominanceValues},
		{"AC chrominance", jfiftest.StandardACChrominanceBits, jfiftest.StandardACChrominanceValues},
	}

	for _, tt := range tables {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := BuildHuffmanTree(tt.counts, tt.symbols)
			if err != nil {
				t.Fatalf("BuildHuffmanTree failed: %v", err)
			}

			reference := jfiftest.Codes(tt.counts, tt.symbols)
			codes := tree.Codes()
			if len(codes) != len(reference) {
				t.Fatalf("got %d codes, want %d", len(codes), len(reference))
			}
			for _, c := range codes {
				ref := reference[c.Symbol]
				if c.Code != ref.Bits || c.Len != ref.Len {
					t.Errorf("symbol 0x%02X: code %0*b, want %0*b", c.Symbol, c.Len, c.Code, ref.Len, ref.Bits)
				}
			}
		})
	}
}

func TestHuffmanAnnexKSpotChecks(t *testing.T) {
	tree, err := BuildHuffmanTree(jfiftest.StandardACLuminanceBits, jfiftest.StandardACLuminanceValues)
	if err != nil {
		t.Fatalf("BuildHuffmanTree failed: %v", err)
	}

	want := map[byte]HuffmanCode{
		0x01: {Symbol: 0x01, Code: 0b00, Len: 2},
		0x00: {Symbol: 0x00, Code: 0b1010, Len: 4},
		0xF0: {Symbol: 0xF0, Code: 0b11111111001, Len: 11},
		0xFA: {Symbol: 0xFA, Code: 0b1111111111111110, Len: 16},
	}
	for _, c := range tree.Codes() {
		if w, ok := want[c.Symbol]; ok && c != w {
			t.Errorf("symbol 0x%02X = %+v, want %+v", c.Symbol, c, w)
		}
	}
}

func TestHuffmanPrefixIsNotLeaf(t *testing.T) {
	tree, err := BuildHuffmanTree(jfiftest.StandardACLuminanceBits, jfiftest.StandardACLuminanceValues)
	if err != nil {
		t.Fatalf("BuildHuffmanTree failed: %v", err)
	}

	for _, c := range tree.Codes() {
		leaf, ok := tree.walk(uint32(c.Code), c.Len)
		if !ok || !leaf {
			t.Fatalf("symbol 0x%02X: code %0*b does not end on a leaf", c.Symbol, c.Len, c.Code)
		}

		for n := 1; n < c.Len; n++ {
			prefix := uint32(c.Code) >> uint(c.Len-n)
			leaf, ok := tree.walk(prefix, n)
			if !ok {
				t.Fatalf("symbol 0x%02X: prefix %0*b missing", c.Symbol, n, prefix)
			}
			if leaf {
				t.Errorf("symbol 0x%02X: proper prefix %0*b is a leaf", c.Symbol, n, prefix)
			}
		}
	}
}

func TestHuffmanInsert(t *testing.T) {
	tree := NewHuffmanTree()

	if tree.Insert(0, 1) || tree.Insert(MaxCodeLength+1, 1) {
		t.Fatal("Insert accepted an out of range code length")
	}
	if !tree.Insert(1, 0xA) || !tree.Insert(1, 0xB) {
		t.Fatal("Insert rejected both one bit codes")
	}
	if tree.Insert(1, 0xC) {
		t.Error("Insert found a third one bit code")
	}
	if tree.Insert(2, 0xD) {
		t.Error("Insert placed a code below a leaf")
	}
	if tree.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tree.Len())
	}
}

func TestBuildHuffmanTreeErrors(t *testing.T) {
	tests := []struct {
		name    string
		counts  [16]byte
		symbols []byte
		wantErr error
	}{
		{
			name:    "fewer symbols than counts",
			counts:  [16]byte{0, 3},
			symbols: []byte{1, 2},
			wantErr: ErrTruncatedStream,
		},
		{
			name:    "too many short codes",
			counts:  [16]byte{2, 1},
			symbols: []byte{1, 2, 3},
			wantErr: ErrMalformedTable,
		},
		{
			name:    "five two bit codes",
			counts:  [16]byte{0, 5},
			symbols: []byte{1, 2, 3, 4, 5},
			wantErr: ErrMalformedTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := BuildHuffmanTree(tt.counts, tt.symbols)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tree != nil {
				t.Error("tree returned alongside error")
			}
		})
	}
}

func TestHuffmanLookup(t *testing.T) {
	tree, err := BuildHuffmanTree([16]byte{1, 1, 1}, []byte{2, 1, 0})
	if err != nil {
		t.Fatalf("BuildHuffmanTree failed: %v", err)
	}

	// 0 | 10 | 110 | 10
	buf := []byte{0b01011010}
	var offset uint
	var got []byte
	for i := 0; i < 4; i++ {
		sym, err := tree.Lookup(buf, &offset)
		if err != nil {
			t.Fatalf("Lookup %d failed: %v", i, err)
		}
		got = append(got, sym)
	}
	if diff := cmp.Diff([]byte{2, 1, 0, 1}, got); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}
	if offset != 8 {
		t.Errorf("offset = %d, want 8", offset)
	}

	if _, err := tree.Lookup(buf, &offset); !errors.Is(err, ErrTruncatedStream) {
		t.Errorf("Lookup past end error = %v, want %v", err, ErrTruncatedStream)
	}

	// '111' has no code
	offset = 0
	if _, err := tree.Lookup([]byte{0xE0}, &offset); !errors.Is(err, ErrMalformedTable) {
		t.Errorf("Lookup of unassigned code error = %v, want %v", err, ErrMalformedTable)
	}
}
