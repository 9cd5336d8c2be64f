package baseline

import "github.com/cocosip/go-jfif/jpeg/common"

// Huffman table classes
const (
	ClassDC = 0
	ClassAC = 1
)

// Version is the JFIF version from APP0.
type Version struct {
	Major uint8
	Minor uint8
}

// Component is one frame component as declared by SOF.
type Component struct {
	ID                     byte
	QuantTableID           byte
	SampleFactorVertical   byte
	SampleFactorHorizontal byte
}

// HuffmanTableInfo describes a table that was loaded from DHT.
type HuffmanTableInfo struct {
	Class    int // ClassDC or ClassAC
	Selector int // 0 or 1
	Symbols  int
}

// Session is the decode state of one image. It is created empty at SOI, filled in
// by the segment handlers and owned by a single decode.
type Session struct {
	Version       Version
	DensityUnits  uint8
	XDensity      uint16
	YDensity      uint16
	BitsPerSample uint8
	Width         uint16
	Height        uint16
	Components    []Component

	// Quantization tables in natural order
	LumaQuant   [common.BlockSize]uint16
	ChromaQuant [common.BlockSize]uint16

	// HuffmanTables lists the tables loaded so far; it survives release.
	HuffmanTables []HuffmanTableInfo

	// BlocksDecoded counts the blocks handed out by the scan.
	BlocksDecoded int

	huffman [2][2]*common.HuffmanTree // [class][selector]
}

// reset returns the session to its empty state.
func (s *Session) reset() {
	*s = Session{}
}

// release drops the Huffman trees.
func (s *Session) release() {
	s.huffman = [2][2]*common.HuffmanTree{}
}

// tableSelector folds a DHT/SOS table id into the two slots of a class: 0 stays
// luminance, anything else is chrominance.
func tableSelector(id byte) int {
	if id == 0 {
		return 0
	}
	return 1
}

// HuffmanTable returns the loaded tree for class and table id, or nil.
func (s *Session) HuffmanTable(class int, id byte) *common.HuffmanTree {
	if class != ClassDC && class != ClassAC {
		return nil
	}
	return s.huffman[class][tableSelector(id)]
}

func (s *Session) setHuffmanTable(class int, id byte, tree *common.HuffmanTree) {
	sel := tableSelector(id)
	s.huffman[class][sel] = tree

	info := HuffmanTableInfo{Class: class, Selector: sel, Symbols: tree.Len()}
	for i, t := range s.HuffmanTables {
		if t.Class == class && t.Selector == sel {
			s.HuffmanTables[i] = info
			return
		}
	}
	s.HuffmanTables = append(s.HuffmanTables, info)
}

// QuantTable returns the quantization table for a table id: 0 is luminance,
// anything else chrominance.
func (s *Session) QuantTable(id byte) *[common.BlockSize]uint16 {
	if id == 0 {
		return &s.LumaQuant
	}
	return &s.ChromaQuant
}

func (s *Session) componentIndex(id byte) int {
	for i, c := range s.Components {
		if c.ID == id {
			return i
		}
	}
	return -1
}
