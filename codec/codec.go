package codec

import "fmt"

// Codec is the interface implemented by every stream decoder in this module
type Codec interface {
	// Decode parses compressed data. A nil params selects the codec defaults.
	Decode(data []byte, params Parameters) (*DecodeResult, error)

	// GetDefaultParameters returns a fresh parameter set holding the defaults
	GetDefaultParameters() Parameters

	// UID returns the unique identifier (the DICOM Transfer Syntax UID)
	UID() string

	// Name returns a human-readable name
	Name() string
}

// Parameters holds codec-specific options addressable by name
type Parameters interface {
	// GetParameter returns the named value, or nil if unknown
	GetParameter(name string) interface{}

	// SetParameter sets the named value
	SetParameter(name string, value interface{})

	// Validate checks the parameter values
	Validate() error
}

// DecodeResult summarizes a decode
type DecodeResult struct {
	Width      int // Width of the last decoded image
	Height     int // Height of the last decoded image
	Components int // Number of components of the last decoded image
	BitDepth   int // Bits per sample
	Images     int // Number of complete images in the stream
	Blocks     int // Number of 8x8 coefficient blocks decoded

	// Warnings collects non-fatal conditions met while decoding
	Warnings []error

	// Detail renders the codec-specific header report
	Detail fmt.Stringer
}
