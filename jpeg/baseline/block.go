package baseline

import (
	"fmt"

	"github.com/cocosip/go-jfif/jpeg/common"
)

// Block holds the 64 coefficients of an 8x8 block in natural (row-major) order.
type Block [common.BlockSize]int32

// PredictorRule selects what the DC predictor holds after a block is decoded.
type PredictorRule int

const (
	// PredictorDifference keeps the decoded DC difference as the next predictor.
	PredictorDifference PredictorRule = iota
	// PredictorAbsolute keeps the block's DC value as the next predictor (ITU-T T.81 F.2.1.3.1).
	PredictorAbsolute

	predictorInvalid PredictorRule = -1
)

func (r PredictorRule) String() string {
	switch r {
	case PredictorDifference:
		return "difference"
	case PredictorAbsolute:
		return "absolute"
	default:
		return fmt.Sprintf("PredictorRule(%d)", int(r))
	}
}

// ParsePredictorRule parses "difference" or "absolute".
func ParsePredictorRule(s string) (PredictorRule, error) {
	switch s {
	case "difference":
		return PredictorDifference, nil
	case "absolute":
		return PredictorAbsolute, nil
	default:
		return predictorInvalid, fmt.Errorf("unknown DC predictor rule %q", s)
	}
}

// Predictor is the running DC predictor of one component within a scan.
type Predictor struct {
	Rule  PredictorRule
	Value int32
}

// next returns the block DC for diff and updates the predictor.
func (p *Predictor) next(diff int32) int32 {
	dc := p.Value + diff
	if p.Rule == PredictorAbsolute {
		p.Value = dc
	} else {
		p.Value = diff
	}
	return dc
}

// maxMagnitudeCategory bounds the DC size and AC size nibble we accept.
const maxMagnitudeCategory = 15

// DecodeBlock decodes one block from destuffed scan data starting at bitOffset and
// returns it in natural order together with the bit offset just past it.
//
// The AC symbol's low nibble is the magnitude size and its high nibble a run of
// zero coefficients to skip. 0x00 ends the block and 0xF0 skips 16 positions.
func DecodeBlock(data []byte, bitOffset uint, dc, ac *common.HuffmanTree, pred *Predictor) (Block, uint, error) {
	var block Block

	size, err := dc.Lookup(data, &bitOffset)
	if err != nil {
		return block, bitOffset, fmt.Errorf("DC: %w", err)
	}
	if size > maxMagnitudeCategory {
		return block, bitOffset, fmt.Errorf("%w: DC magnitude category %d", common.ErrMalformedTable, size)
	}

	diff, err := common.ReceiveExtend(data, &bitOffset, uint(size))
	if err != nil {
		return block, bitOffset, fmt.Errorf("DC: %w", err)
	}
	block[0] = pred.next(diff)

	for k := 1; k < common.BlockSize; {
		rs, err := ac.Lookup(data, &bitOffset)
		if err != nil {
			return block, bitOffset, fmt.Errorf("AC %d: %w", k, err)
		}

		run := int(rs >> 4)
		size := uint(rs & 0x0F)

		if size == 0 {
			if run == 15 {
				k += 16
				continue
			}
			// End of block
			break
		}

		k += run
		if k >= common.BlockSize {
			return block, bitOffset, fmt.Errorf("%w: AC run of %d passes the end of the block",
				common.ErrMalformedTable, run)
		}

		val, err := common.ReceiveExtend(data, &bitOffset, size)
		if err != nil {
			return block, bitOffset, fmt.Errorf("AC %d: %w", k, err)
		}

		block[common.ZigZag[k]] = val
		k++
	}

	return block, bitOffset, nil
}
