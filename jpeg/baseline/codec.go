package baseline

import (
	"github.com/cocosip/go-jfif/codec"
)

// Codec implements the codec.Codec interface for JPEG Baseline
type Codec struct{}

var _ codec.Codec = (*Codec)(nil)

// NewCodec creates a new JPEG Baseline codec
func NewCodec() *Codec {
	return &Codec{}
}

// Decode decodes every image of a JPEG Baseline stream. The summary describes the
// last complete image; Detail holds the full report. On error the result covers
// what was decoded before the failure.
func (c *Codec) Decode(data []byte, params codec.Parameters) (*codec.DecodeResult, error) {
	result, err := NewDecoder(parametersFrom(params)).Decode(data)
	if result == nil {
		return nil, err
	}

	summary := &codec.DecodeResult{
		Images:   len(result.Images),
		Warnings: result.Warnings,
		Detail:   result,
	}
	for _, img := range result.Images {
		summary.Blocks += img.BlocksDecoded
	}
	if last := result.Last(); last != nil {
		summary.Width = int(last.Width)
		summary.Height = int(last.Height)
		summary.Components = len(last.Components)
		summary.BitDepth = int(last.BitsPerSample)
	}

	return summary, err
}

// GetDefaultParameters returns the default decode parameters
func (c *Codec) GetDefaultParameters() codec.Parameters {
	return NewDecodeParameters()
}

// UID returns the DICOM Transfer Syntax UID for JPEG Baseline
func (c *Codec) UID() string {
	return "1.2.840.10008.1.2.4.50"
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return "jpeg-baseline"
}

// Register registers this codec with the global registry
func init() {
	codec.Register(NewCodec())
}
