// Package jfiftest builds synthetic JFIF streams for tests: marker segments, Huffman
// coded scan data with byte stuffing, and the Annex K example tables.
package jfiftest

import (
	"bytes"
	"encoding/binary"
)

// Marker codes written by the builder
const (
	SOI  = 0xD8
	EOI  = 0xD9
	APP0 = 0xE0
	DQT  = 0xDB
	SOF0 = 0xC0
	DHT  = 0xC4
	SOS  = 0xDA
	COM  = 0xFE
)

// Builder accumulates a JPEG byte stream segment by segment.
type Builder struct {
	buf bytes.Buffer
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Bytes returns the stream built so far.
func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}

// Marker writes a bare marker (0xFF followed by code).
func (b *Builder) Marker(code byte) *Builder {
	b.buf.WriteByte(0xFF)
	b.buf.WriteByte(code)
	return b
}

// Segment writes a marker followed by its length field and payload.
// The length field includes itself (2 bytes).
func (b *Builder) Segment(code byte, payload []byte) *Builder {
	b.Marker(code)
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(payload)+2))
	b.buf.Write(l[:])
	b.buf.Write(payload)
	return b
}

// Raw appends bytes verbatim.
func (b *Builder) Raw(data ...byte) *Builder {
	b.buf.Write(data)
	return b
}

// SOI writes the start of image marker.
func (b *Builder) SOI() *Builder {
	return b.Marker(SOI)
}

// EOI writes the end of image marker.
func (b *Builder) EOI() *Builder {
	return b.Marker(EOI)
}

// APP0 writes a JFIF APP0 segment without thumbnail.
func (b *Builder) APP0(major, minor, units byte, xDensity, yDensity uint16) *Builder {
	payload := []byte{'J', 'F', 'I', 'F', 0, major, minor, units, 0, 0, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(payload[8:], xDensity)
	binary.BigEndian.PutUint16(payload[10:], yDensity)
	return b.Segment(APP0, payload)
}

// DQT writes one quantization table. values are in serialized (zig-zag) order;
// precision 0 writes one byte per entry, anything else two.
func (b *Builder) DQT(id, precision byte, values [64]uint16) *Builder {
	payload := []byte{precision<<4 | id}
	for _, v := range values {
		if precision == 0 {
			payload = append(payload, byte(v))
		} else {
			payload = append(payload, byte(v>>8), byte(v))
		}
	}
	return b.Segment(DQT, payload)
}

// FrameComponent describes one SOF component.
type FrameComponent struct {
	ID         byte
	H, V       byte
	QuantTable byte
}

// SOF0 writes a baseline start of frame segment.
func (b *Builder) SOF0(precision byte, width, height uint16, comps ...FrameComponent) *Builder {
	payload := []byte{precision, byte(height >> 8), byte(height), byte(width >> 8), byte(width), byte(len(comps))}
	for _, c := range comps {
		payload = append(payload, c.ID, c.H<<4|c.V, c.QuantTable)
	}
	return b.Segment(SOF0, payload)
}

// DHT writes one Huffman table; class 0 is DC, 1 is AC.
func (b *Builder) DHT(class, id byte, counts [16]byte, symbols []byte) *Builder {
	payload := []byte{class<<4 | id}
	payload = append(payload, counts[:]...)
	payload = append(payload, symbols...)
	return b.Segment(DHT, payload)
}

// ScanComponent selects the DC and AC tables for one component of a scan.
type ScanComponent struct {
	ID      byte
	DCTable byte
	ACTable byte
}

// SOS writes a baseline scan header followed by already stuffed entropy data.
func (b *Builder) SOS(entropy []byte, comps ...ScanComponent) *Builder {
	payload := []byte{byte(len(comps))}
	for _, c := range comps {
		payload = append(payload, c.ID, c.DCTable<<4|c.ACTable)
	}
	// Spectral selection 0..63, no successive approximation
	payload = append(payload, 0, 63, 0)
	b.Segment(SOS, payload)
	b.buf.Write(entropy)
	return b
}
