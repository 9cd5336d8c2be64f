package baseline

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/cocosip/go-jfif/jpeg/common"
)

// ExtractEntropySegment returns the destuffed entropy-coded data at the start of
// data and the number of input bytes it spans. The segment ends at the first 0xFF
// not followed by 0x00; that marker is not consumed. Data without a closing marker
// is taken whole.
func ExtractEntropySegment(data []byte) ([]byte, int, error) {
	out := make([]byte, 0, len(data))

	for i := 0; i < len(data); i++ {
		b := data[i]
		if b != common.MarkerPrefix {
			out = append(out, b)
			continue
		}

		if i+1 >= len(data) {
			return out, i, fmt.Errorf("%w: 0xFF at the end of scan data", common.ErrTruncatedStream)
		}
		if data[i+1] != 0x00 {
			return out, i, nil
		}

		// Stuffed zero
		out = append(out, b)
		i++
	}

	return out, len(data), nil
}

// decodeScan destuffs the entropy segment following the scan header and decodes
// its MCUs.
func (s *scanner) decodeScan(scan *scanHeader) error {
	entropy, consumed, err := ExtractEntropySegment(s.data[s.pos:])
	if err != nil {
		return err
	}
	glog.V(1).Infof("entropy segment of %d bytes (%d after destuffing)", consumed, len(entropy))
	s.pos += consumed

	session := s.session
	maxH, maxV := 1, 1
	for _, c := range session.Components {
		maxH = max(maxH, int(c.SampleFactorHorizontal))
		maxV = max(maxV, int(c.SampleFactorVertical))
	}

	width, height := int(session.Width), int(session.Height)
	var bitOffset uint

	if len(scan.components) == 1 {
		// Non-interleaved: the component's own block grid in raster order
		sc := scan.components[0]
		cols := common.DivCeil(common.DivCeil(width*int(sc.comp.SampleFactorHorizontal), maxH), 8)
		rows := common.DivCeil(common.DivCeil(height*int(sc.comp.SampleFactorVertical), maxV), 8)

		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				if err := s.decodeBlock(sc, entropy, &bitOffset, row, col); err != nil {
					return err
				}
			}
		}
		return nil
	}

	// Interleaved: each MCU holds H x V blocks of every scan component
	mcuCols := common.DivCeil(width, 8*maxH)
	mcuRows := common.DivCeil(height, 8*maxV)

	for mcuY := 0; mcuY < mcuRows; mcuY++ {
		for mcuX := 0; mcuX < mcuCols; mcuX++ {
			for _, sc := range scan.components {
				h, v := int(sc.comp.SampleFactorHorizontal), int(sc.comp.SampleFactorVertical)
				for y := 0; y < v; y++ {
					for x := 0; x < h; x++ {
						if err := s.decodeBlock(sc, entropy, &bitOffset, mcuY*v+y, mcuX*h+x); err != nil {
							return err
						}
					}
				}
			}
		}
	}

	return nil
}

func (s *scanner) decodeBlock(sc *scanComponent, entropy []byte, bitOffset *uint, row, col int) error {
	block, next, err := DecodeBlock(entropy, *bitOffset, sc.dc, sc.ac, &sc.pred)
	if err != nil {
		return fmt.Errorf("component %d block (%d,%d) at bit %d: %w", sc.comp.ID, row, col, *bitOffset, err)
	}
	*bitOffset = next
	s.session.BlocksDecoded++

	if glog.V(2) {
		glog.Infof("component %d block (%d,%d): %v", sc.comp.ID, row, col, block)
	}

	if s.handler == nil {
		return nil
	}

	decoded := &DecodedBlock{
		Image:        s.imageIndex(),
		Component:    sc.index,
		ComponentID:  sc.comp.ID,
		Row:          row,
		Col:          col,
		Coefficients: block,
		Quant:        sc.quant,
	}
	if err := s.handler(decoded); err != nil {
		return fmt.Errorf("block handler: %w", err)
	}
	return nil
}
