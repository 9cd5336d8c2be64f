package baseline

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"

	"github.com/cocosip/go-jfif/jpeg/common"
)

var jfifIdentifier = []byte("JFIF\x00")

// parseAPP0 parses the JFIF application segment. An APP0 that directly follows
// SOI starts the image from a clean session.
func (s *scanner) parseAPP0(data []byte, afterSOI bool) error {
	if afterSOI {
		s.session.reset()
	} else {
		s.warn(fmt.Errorf("%w: not directly after Start of Image, session kept", common.ErrUnexpectedAPP0))
	}

	if len(data) < len(jfifIdentifier) || !bytes.Equal(data[:len(jfifIdentifier)], jfifIdentifier) {
		s.warn(fmt.Errorf("%w: identifier %q is not JFIF, fields not parsed",
			common.ErrUnexpectedAPP0, bytes.TrimRight(data[:min(5, len(data))], "\x00")))
		return nil
	}

	// identifier(5) version(2) units(1) xdensity(2) ydensity(2)
	if len(data) < 12 {
		return fmt.Errorf("%w: JFIF APP0 payload of %d bytes", common.ErrTruncatedStream, len(data))
	}

	s.session.Version = Version{Major: data[5], Minor: data[6]}
	s.session.DensityUnits = data[7]
	s.session.XDensity = binary.BigEndian.Uint16(data[8:])
	s.session.YDensity = binary.BigEndian.Uint16(data[10:])

	glog.V(1).Infof("JFIF %d.%02d density %dx%d units %d", data[5], data[6],
		s.session.XDensity, s.session.YDensity, s.session.DensityUnits)
	return nil
}

// parseDQT parses Define Quantization Table. Values arrive in zig-zag order and are
// stored in natural order.
func (s *scanner) parseDQT(data []byte) error {
	offset := 0
	for offset < len(data) {
		pqTq := data[offset]
		pq := pqTq >> 4   // Precision (0=8-bit, 1=16-bit)
		tq := pqTq & 0x0F // Table ID
		offset++

		if tq > 3 {
			return fmt.Errorf("%w: table id %d", common.ErrInvalidDQT, tq)
		}

		width := 1
		switch pq {
		case 0:
		case 1:
			width = 2
		default:
			return fmt.Errorf("%w: precision %d", common.ErrInvalidDQT, pq)
		}

		if offset+common.BlockSize*width > len(data) {
			return fmt.Errorf("%w: %w: table %d needs %d bytes, %d left",
				common.ErrInvalidDQT, common.ErrTruncatedStream, tq, common.BlockSize*width, len(data)-offset)
		}

		table := s.session.QuantTable(tq)
		for k := 0; k < common.BlockSize; k++ {
			var v uint16
			if width == 1 {
				v = uint16(data[offset+k])
			} else {
				v = binary.BigEndian.Uint16(data[offset+2*k:])
			}
			table[common.ZigZag[k]] = v
		}
		offset += common.BlockSize * width

		glog.V(1).Infof("quantization table %d (%d-bit)", tq, 8*width)
	}

	return nil
}

// parseSOF parses a baseline Start of Frame.
func (s *scanner) parseSOF(data []byte) error {
	if len(data) < 6 {
		return fmt.Errorf("%w: header of %d bytes", common.ErrInvalidSOF, len(data))
	}

	precision := data[0]
	height := binary.BigEndian.Uint16(data[1:])
	width := binary.BigEndian.Uint16(data[3:])
	numComponents := int(data[5])

	// A frame without components is kept; the scan that follows rejects it.
	if numComponents != 1 && numComponents != 3 {
		err := fmt.Errorf("%w: %d", common.ErrUnexpectedComponentCount, numComponents)
		if s.params.StrictComponents {
			return err
		}
		s.warn(err)
	}

	if len(data) < 6+numComponents*3 {
		return fmt.Errorf("%w: %d components need %d bytes, got %d",
			common.ErrInvalidSOF, numComponents, 6+numComponents*3, len(data))
	}

	components := make([]Component, numComponents)
	for i := range components {
		offset := 6 + i*3
		comp := Component{
			ID:                     data[offset],
			SampleFactorHorizontal: data[offset+1] >> 4,
			SampleFactorVertical:   data[offset+1] & 0x0F,
			QuantTableID:           data[offset+2],
		}

		if comp.SampleFactorHorizontal < 1 || comp.SampleFactorHorizontal > 4 ||
			comp.SampleFactorVertical < 1 || comp.SampleFactorVertical > 4 {
			return fmt.Errorf("%w: component %d sampling %dx%d", common.ErrInvalidSOF,
				comp.ID, comp.SampleFactorHorizontal, comp.SampleFactorVertical)
		}

		components[i] = comp
	}

	s.session.BitsPerSample = precision
	s.session.Height = height
	s.session.Width = width
	s.session.Components = components

	glog.V(1).Infof("frame %dx%d, %d-bit, %d components", width, height, precision, numComponents)
	return nil
}

// parseDHT parses Define Huffman Table and builds one tree per table.
func (s *scanner) parseDHT(data []byte) error {
	offset := 0
	for offset < len(data) {
		tcTh := data[offset]
		tc := int(tcTh >> 4) // Table class (0=DC, 1=AC)
		th := tcTh & 0x0F    // Table ID
		offset++

		if tc != ClassDC && tc != ClassAC {
			return fmt.Errorf("%w: table class %d", common.ErrInvalidDHT, tc)
		}
		if th > 3 {
			return fmt.Errorf("%w: table id %d", common.ErrInvalidDHT, th)
		}

		var counts [common.MaxCodeLength]byte
		if offset+len(counts) > len(data) {
			return fmt.Errorf("%w: %w: code length counts", common.ErrInvalidDHT, common.ErrTruncatedStream)
		}
		copy(counts[:], data[offset:])
		offset += len(counts)

		total := 0
		for _, c := range counts {
			total += int(c)
		}

		// The tree builder sees only the bytes the segment holds
		symbols := data[offset:min(offset+total, len(data))]
		tree, err := common.BuildHuffmanTree(counts, symbols)
		if err != nil {
			return fmt.Errorf("%w: class %d table %d: %w", common.ErrInvalidDHT, tc, th, err)
		}
		offset += total

		s.session.setHuffmanTable(tc, th, tree)
		glog.V(1).Infof("huffman table class %d id %d: %d codes", tc, th, tree.Len())
	}

	return nil
}

// scanComponent is the per-scan state of one component.
type scanComponent struct {
	index int
	comp  Component
	dc    *common.HuffmanTree
	ac    *common.HuffmanTree
	quant *[common.BlockSize]uint16
	pred  Predictor
}

// scanHeader is a parsed Start of Scan header.
type scanHeader struct {
	components []*scanComponent
}

// parseSOS parses Start of Scan and resolves its table selectors.
func (s *scanner) parseSOS(data []byte) (*scanHeader, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("%w: empty header", common.ErrInvalidSOS)
	}

	ns := int(data[0]) // Number of components in scan
	if ns < 1 || ns > 4 {
		return nil, fmt.Errorf("%w: %d components in scan", common.ErrInvalidSOS, ns)
	}
	if len(data) < 1+ns*2+3 {
		return nil, fmt.Errorf("%w: header of %d bytes for %d components", common.ErrInvalidSOS, len(data), ns)
	}

	session := s.session
	if session.Width == 0 || session.Height == 0 || len(session.Components) == 0 {
		return nil, fmt.Errorf("%w: scan before a valid frame header (%dx%d, %d components)",
			common.ErrInvalidDimensions, session.Width, session.Height, len(session.Components))
	}
	if session.BitsPerSample == 0 {
		return nil, fmt.Errorf("%w: scan under a frame with sample precision 0", common.ErrInvalidSOF)
	}

	header := &scanHeader{components: make([]*scanComponent, ns)}
	for i := 0; i < ns; i++ {
		cs := data[1+i*2]     // Component selector
		tdTa := data[1+i*2+1] // DC and AC table selectors
		td := tdTa >> 4       // DC table
		ta := tdTa & 0x0F     // AC table

		index := session.componentIndex(cs)
		if index < 0 {
			return nil, fmt.Errorf("%w: unknown component %d", common.ErrInvalidSOS, cs)
		}

		sc := &scanComponent{
			index: index,
			comp:  session.Components[index],
			dc:    session.HuffmanTable(ClassDC, td),
			ac:    session.HuffmanTable(ClassAC, ta),
			pred:  Predictor{Rule: s.params.DCPredictor},
		}
		sc.quant = session.QuantTable(sc.comp.QuantTableID)

		if sc.dc == nil || sc.ac == nil {
			return nil, fmt.Errorf("%w: component %d selects undefined tables DC %d AC %d",
				common.ErrInvalidSOS, cs, td, ta)
		}
		header.components[i] = sc
	}

	// Spectral selection and successive approximation are fixed in baseline
	ss, se, ahAl := data[1+ns*2], data[1+ns*2+1], data[1+ns*2+2]
	if ss != 0 || se != 63 || ahAl != 0 {
		glog.V(1).Infof("scan Ss=%d Se=%d Ah/Al=0x%02X ignored", ss, se, ahAl)
	}

	return header, nil
}
