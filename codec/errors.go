package codec

import "errors"

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter is returned when a decoding parameter is invalid
	ErrInvalidParameter = errors.New("invalid parameter")
)
