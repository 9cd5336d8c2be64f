package common

import "fmt"

// JPEG marker codes (the byte following 0xFF)
const (
	// Start of Image
	MarkerSOI = 0xD8

	// End of Image
	MarkerEOI = 0xD9

	// Application segment 0 (JFIF)
	MarkerAPP0 = 0xE0

	// Define Quantization Table
	MarkerDQT = 0xDB

	// Start of Frame, baseline DCT
	MarkerSOF0 = 0xC0

	// Define Huffman Table
	MarkerDHT = 0xC4

	// Start of Scan
	MarkerSOS = 0xDA

	// Temporary private use in arithmetic coding, no length
	MarkerTEM = 0x01

	// Restart markers, no length
	MarkerRST0 = 0xD0
	MarkerRST7 = 0xD7

	// Comment
	MarkerCOM = 0xFE
)

// MarkerPrefix precedes every marker code in the stream.
const MarkerPrefix = 0xFF

// SegmentKind is the closed set of segments the scanner knows how to handle.
type SegmentKind int

const (
	SegmentUnsupported SegmentKind = iota
	SegmentSOI
	SegmentAPP0
	SegmentDQT
	SegmentSOF
	SegmentDHT
	SegmentSOS
	SegmentEOI
)

// KindOf maps a marker code to its segment kind.
func KindOf(marker byte) SegmentKind {
	switch marker {
	case MarkerSOI:
		return SegmentSOI
	case MarkerAPP0:
		return SegmentAPP0
	case MarkerDQT:
		return SegmentDQT
	case MarkerSOF0:
		return SegmentSOF
	case MarkerDHT:
		return SegmentDHT
	case MarkerSOS:
		return SegmentSOS
	case MarkerEOI:
		return SegmentEOI
	default:
		return SegmentUnsupported
	}
}

// String returns the segment name as used in logs and reports.
func (k SegmentKind) String() string {
	switch k {
	case SegmentSOI:
		return "Start of Image"
	case SegmentAPP0:
		return "App Segment 0"
	case SegmentDQT:
		return "Quantization Table"
	case SegmentSOF:
		return "Start of Frame"
	case SegmentDHT:
		return "Huffman Table"
	case SegmentSOS:
		return "Start of Scan"
	case SegmentEOI:
		return "End of Image"
	default:
		return "Unsupported"
	}
}

// MarkerName returns a printable name for any marker code.
func MarkerName(marker byte) string {
	if k := KindOf(marker); k != SegmentUnsupported {
		return k.String()
	}
	return fmt.Sprintf("Unsupported Segment 0xFF%02X", marker)
}

// IsRST returns true if the marker is a Restart marker
func IsRST(marker byte) bool {
	return marker >= MarkerRST0 && marker <= MarkerRST7
}

// HasLength returns true if the marker is followed by a length field
func HasLength(marker byte) bool {
	// Markers without length: SOI, EOI, RSTn and TEM
	if marker == MarkerSOI || marker == MarkerEOI || marker == MarkerTEM {
		return false
	}
	return !IsRST(marker)
}
