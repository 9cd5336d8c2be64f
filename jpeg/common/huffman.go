package common

import "fmt"

// MaxCodeLength is the longest Huffman code a DHT segment can describe.
const MaxCodeLength = 16

// noChild marks an absent child. The root is node 0 and is never a child, so
// index 0 is free to mean "none".
const noChild = 0

type huffmanNode struct {
	child  [2]int32 // indexed by the next bit: 0 = left, 1 = right
	symbol byte
	leaf   bool
}

// HuffmanTree is a canonical Huffman code tree. Nodes live in a single arena owned
// by the tree; the tree is read-only once built.
type HuffmanTree struct {
	nodes  []huffmanNode
	leaves int
}

// HuffmanCode is the code assigned to a symbol.
type HuffmanCode struct {
	Symbol byte
	Code   uint16 // right-aligned
	Len    int    // code length in bits
}

// NewHuffmanTree returns a tree holding only its root.
func NewHuffmanTree() *HuffmanTree {
	return &HuffmanTree{nodes: make([]huffmanNode, 1, 2*MaxCodeLength)}
}

// BuildHuffmanTree builds a tree from the DHT length counts (codes of length 1..16)
// and the flat symbol list. Symbols are inserted in list order, which is what makes
// the resulting codes canonical.
func BuildHuffmanTree(counts [MaxCodeLength]byte, symbols []byte) (*HuffmanTree, error) {
	total := 0
	for _, n := range counts {
		total += int(n)
	}
	if len(symbols) < total {
		return nil, fmt.Errorf("%w: length counts declare %d symbols, %d present",
			ErrTruncatedStream, total, len(symbols))
	}

	tree := NewHuffmanTree()
	k := 0
	for i, n := range counts {
		codeLength := i + 1
		for j := 0; j < int(n); j++ {
			if !tree.Insert(codeLength, symbols[k]) {
				return nil, fmt.Errorf("%w: no free code of length %d for symbol 0x%02X",
					ErrMalformedTable, codeLength, symbols[k])
			}
			k++
		}
	}

	return tree, nil
}

// Insert places symbol at depth codeLength, taking the first free slot found by
// trying the left branch before the right one at every level. Intermediate nodes
// are created on demand. It reports false when a leaf blocks the path or no slot
// is left at that depth.
func (t *HuffmanTree) Insert(codeLength int, symbol byte) bool {
	if codeLength < 1 || codeLength > MaxCodeLength {
		return false
	}
	return t.insert(0, codeLength, 0, symbol)
}

func (t *HuffmanTree) insert(node int32, codeLength, depth int, symbol byte) bool {
	if depth != 0 && t.nodes[node].leaf {
		return false
	}
	// An existing node at the target depth is already taken.
	if depth >= codeLength {
		return false
	}

	for bit := 0; bit < 2; bit++ {
		child := t.nodes[node].child[bit]
		if child == noChild {
			t.grow(node, bit, codeLength, depth+1, symbol)
			return true
		}
		if t.insert(child, codeLength, depth+1, symbol) {
			return true
		}
	}

	return false
}

// grow hangs a fresh left-leaning path under parent ending in a leaf at codeLength.
func (t *HuffmanTree) grow(parent int32, bit, codeLength, depth int, symbol byte) {
	for {
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, huffmanNode{})
		t.nodes[parent].child[bit] = idx

		if depth == codeLength {
			t.nodes[idx].leaf = true
			t.nodes[idx].symbol = symbol
			t.leaves++
			return
		}

		parent, bit, depth = idx, 0, depth+1
	}
}

// Lookup decodes one symbol from buf starting at *bitOffset, reading a bit at a
// time and advancing *bitOffset past the code.
func (t *HuffmanTree) Lookup(buf []byte, bitOffset *uint) (byte, error) {
	node := int32(0)
	for depth := 1; ; depth++ {
		bit, err := ReadBits(buf, *bitOffset, 1)
		if err != nil {
			return 0, err
		}
		*bitOffset++

		next := t.nodes[node].child[bit]
		if next == noChild {
			return 0, fmt.Errorf("%w: no code matches at depth %d (bit offset %d)",
				ErrMalformedTable, depth, *bitOffset-1)
		}
		if t.nodes[next].leaf {
			return t.nodes[next].symbol, nil
		}
		node = next
	}
}

// Len returns the number of symbols in the tree.
func (t *HuffmanTree) Len() int {
	return t.leaves
}

// Codes lists every symbol with its code, shortest codes first and in increasing
// code order within a length.
func (t *HuffmanTree) Codes() []HuffmanCode {
	codes := make([]HuffmanCode, 0, t.leaves)
	var walk func(node int32, code uint16, depth int)
	walk = func(node int32, code uint16, depth int) {
		n := t.nodes[node]
		if n.leaf {
			codes = append(codes, HuffmanCode{Symbol: n.symbol, Code: code, Len: depth})
			return
		}
		for bit, child := range n.child {
			if child != noChild {
				walk(child, code<<1|uint16(bit), depth+1)
			}
		}
	}
	walk(0, 0, 0)

	// Depth-first order is lexicographic; canonical order sorts by length first.
	for i := 1; i < len(codes); i++ {
		for j := i; j > 0 && codes[j].Len < codes[j-1].Len; j-- {
			codes[j], codes[j-1] = codes[j-1], codes[j]
		}
	}
	return codes
}
