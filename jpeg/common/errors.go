package common

import "errors"

// Decode failure kinds. Fatal kinds abort the current image; ErrUnsupportedMarker and
// ErrUnexpectedComponentCount are reported as warnings and decoding continues.
var (
	ErrIoFailure                = errors.New("cannot read JPEG input")
	ErrTruncatedStream          = errors.New("truncated JPEG stream")
	ErrMalformedTable           = errors.New("malformed Huffman table")
	ErrInvalidStart             = errors.New("stream does not start with SOI marker")
	ErrUnsupportedMarker        = errors.New("unsupported JPEG marker")
	ErrUnexpectedComponentCount = errors.New("unexpected number of components")
)

// Segment errors
var (
	ErrInvalidMarker     = errors.New("invalid JPEG marker")
	ErrInvalidSOF        = errors.New("invalid Start of Frame")
	ErrInvalidDHT        = errors.New("invalid Huffman table")
	ErrInvalidDQT        = errors.New("invalid Quantization table")
	ErrInvalidSOS        = errors.New("invalid Start of Scan")
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrUnexpectedAPP0    = errors.New("unexpected APP0 segment")
)
