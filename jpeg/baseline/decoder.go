// Package baseline decodes baseline JFIF streams into header metadata and
// per-block DCT coefficients.
package baseline

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"

	"github.com/cocosip/go-jfif/jpeg/common"
)

// DecodedBlock is one coefficient block handed to a BlockHandler.
type DecodedBlock struct {
	Image        int  // index of the image within the stream
	Component    int  // index into Session.Components
	ComponentID  byte // component identifier from SOF
	Row, Col     int  // block position within the component
	Coefficients Block
	Quant        *[common.BlockSize]uint16 // quantization table of the component
}

// BlockHandler receives every decoded block. The block is only valid for the
// duration of the call. Returning an error aborts the image.
type BlockHandler func(b *DecodedBlock) error

// SkippedSegment records an unsupported segment the scanner stepped over.
type SkippedSegment struct {
	Marker byte
	Offset int // offset of the 0xFF of the marker
	Length int // value of the length field, 0 for markers without one
}

// Result is the outcome of decoding a stream.
type Result struct {
	// Images holds one session per completed SOI..EOI image.
	Images []*Session

	Skipped  []SkippedSegment
	Warnings []error
}

// Last returns the last completed image, or nil.
func (r *Result) Last() *Session {
	if len(r.Images) == 0 {
		return nil
	}
	return r.Images[len(r.Images)-1]
}

// Decoder decodes JFIF streams. It holds configuration only, so one Decoder may
// serve concurrent decodes.
type Decoder struct {
	params  *DecodeParameters
	handler BlockHandler
}

// NewDecoder creates a decoder; nil params selects the defaults.
func NewDecoder(params *DecodeParameters) *Decoder {
	if params == nil {
		params = NewDecodeParameters()
	}
	return &Decoder{params: params}
}

// OnBlock installs the handler that receives decoded blocks.
func (d *Decoder) OnBlock(h BlockHandler) *Decoder {
	d.handler = h
	return d
}

// Decode decodes a JFIF stream with default parameters.
func Decode(data []byte) (*Result, error) {
	return NewDecoder(nil).Decode(data)
}

// Decode decodes every image in data.
func (d *Decoder) Decode(data []byte) (*Result, error) {
	return d.DecodeContext(context.Background(), data)
}

// DecodeContext decodes every image in data, checking ctx between segments.
// On error the images completed so far are returned along with it.
func (d *Decoder) DecodeContext(ctx context.Context, data []byte) (*Result, error) {
	if err := d.params.Validate(); err != nil {
		return nil, err
	}

	s := &scanner{
		data:    data,
		params:  d.params,
		handler: d.handler,
		result:  &Result{},
	}
	err := s.run(ctx)
	return s.result, err
}

// scanner walks the marker stream of one decode.
type scanner struct {
	data    []byte
	pos     int
	params  *DecodeParameters
	handler BlockHandler
	result  *Result

	session  *Session // nil between images
	afterSOI bool     // the previous segment was SOI
}

func (s *scanner) run(ctx context.Context) error {
	if len(s.data) < 2 || s.data[0] != common.MarkerPrefix || s.data[1] != common.MarkerSOI {
		return fmt.Errorf("%w: stream starts with % X", common.ErrInvalidStart, s.data[:min(2, len(s.data))])
	}

	for s.pos < len(s.data) {
		if err := ctx.Err(); err != nil {
			s.abort()
			return err
		}

		if s.session == nil && !s.seekSOI() {
			break
		}

		marker, at, err := s.nextMarker()
		if err != nil {
			s.abort()
			return err
		}

		if err := s.dispatch(marker, at); err != nil {
			s.abort()
			return fmt.Errorf("%s at offset %d: %w", common.MarkerName(marker), at, err)
		}
	}

	if s.session != nil {
		s.abort()
		return fmt.Errorf("%w: missing End of Image", common.ErrTruncatedStream)
	}
	return nil
}

// seekSOI moves to the next SOI marker. It reports false when none is left.
func (s *scanner) seekSOI() bool {
	for i := s.pos; i+1 < len(s.data); i++ {
		if s.data[i] == common.MarkerPrefix && s.data[i+1] == common.MarkerSOI {
			if i > s.pos {
				glog.V(1).Infof("skipped %d bytes before Start of Image at offset %d", i-s.pos, i)
			}
			s.pos = i
			return true
		}
	}
	if s.pos < len(s.data) {
		glog.V(1).Infof("ignoring %d trailing bytes at offset %d", len(s.data)-s.pos, s.pos)
	}
	s.pos = len(s.data)
	return false
}

// nextMarker reads the marker at the current position, skipping fill bytes.
func (s *scanner) nextMarker() (marker byte, at int, err error) {
	at = s.pos
	if s.data[s.pos] != common.MarkerPrefix {
		return 0, at, fmt.Errorf("%w: byte 0x%02X at offset %d", common.ErrInvalidMarker, s.data[s.pos], at)
	}
	for s.pos < len(s.data) && s.data[s.pos] == common.MarkerPrefix {
		s.pos++
	}
	if s.pos >= len(s.data) {
		return 0, at, fmt.Errorf("%w: marker at offset %d", common.ErrTruncatedStream, at)
	}

	marker = s.data[s.pos]
	if marker == 0x00 {
		return 0, at, fmt.Errorf("%w: stuffed zero at offset %d", common.ErrInvalidMarker, s.pos)
	}
	s.pos++
	return marker, s.pos - 2, nil
}

// segment reads the length field at the current position and returns the payload
// that follows it.
func (s *scanner) segment() ([]byte, error) {
	if s.pos+2 > len(s.data) {
		return nil, fmt.Errorf("%w: segment length field", common.ErrTruncatedStream)
	}

	length := int(binary.BigEndian.Uint16(s.data[s.pos:]))
	if length < 2 {
		return nil, fmt.Errorf("%w: segment length %d", common.ErrTruncatedStream, length)
	}

	end := s.pos + length
	if end > len(s.data) {
		return nil, fmt.Errorf("%w: segment of %d bytes, %d left", common.ErrTruncatedStream, length, len(s.data)-s.pos)
	}

	payload := s.data[s.pos+2 : end]
	s.pos = end
	return payload, nil
}

func (s *scanner) dispatch(marker byte, at int) error {
	kind := common.KindOf(marker)
	glog.V(1).Infof("processing %s at offset %d", common.MarkerName(marker), at)

	afterSOI := s.afterSOI
	s.afterSOI = false

	switch kind {
	case common.SegmentSOI:
		s.startImage()
		return nil

	case common.SegmentAPP0:
		payload, err := s.segment()
		if err != nil {
			return err
		}
		return s.parseAPP0(payload, afterSOI)

	case common.SegmentDQT:
		payload, err := s.segment()
		if err != nil {
			return err
		}
		return s.parseDQT(payload)

	case common.SegmentSOF:
		payload, err := s.segment()
		if err != nil {
			return err
		}
		return s.parseSOF(payload)

	case common.SegmentDHT:
		payload, err := s.segment()
		if err != nil {
			return err
		}
		return s.parseDHT(payload)

	case common.SegmentSOS:
		payload, err := s.segment()
		if err != nil {
			return err
		}
		scan, err := s.parseSOS(payload)
		if err != nil {
			return err
		}
		return s.decodeScan(scan)

	case common.SegmentEOI:
		s.finishImage()
		return nil

	case common.SegmentUnsupported:
		return s.skip(marker, at)

	default:
		panic(fmt.Sprintf("unhandled segment kind %d", kind))
	}
}

func (s *scanner) startImage() {
	if s.session != nil {
		s.warn(fmt.Errorf("%w: Start of Image before End of Image, previous image dropped",
			common.ErrTruncatedStream))
	}
	s.session = &Session{}
	s.afterSOI = true
}

func (s *scanner) finishImage() {
	s.session.release()
	s.result.Images = append(s.result.Images, s.session)
	glog.V(1).Infof("image %d complete: %dx%d, %d blocks",
		len(s.result.Images)-1, s.session.Width, s.session.Height, s.session.BlocksDecoded)
	s.session = nil
}

// abort drops the image in progress.
func (s *scanner) abort() {
	if s.session != nil {
		s.session.release()
		s.session = nil
	}
}

func (s *scanner) skip(marker byte, at int) error {
	skipped := SkippedSegment{Marker: marker, Offset: at}
	if common.HasLength(marker) {
		payload, err := s.segment()
		if err != nil {
			return err
		}
		skipped.Length = len(payload) + 2
	}

	s.result.Skipped = append(s.result.Skipped, skipped)
	s.warn(fmt.Errorf("%w: 0xFF%02X at offset %d skipped (%d bytes)",
		common.ErrUnsupportedMarker, marker, at, skipped.Length))
	return nil
}

func (s *scanner) warn(err error) {
	glog.Warning(err)
	s.result.Warnings = append(s.result.Warnings, err)
}

func (s *scanner) imageIndex() int {
	return len(s.result.Images)
}
