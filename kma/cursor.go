package kma

import (
	"encoding/binary"
	"math"

	"github.com/fathomsonar/dgram/errs"
)

// cursor is a bounds-checked sequential little-endian reader over a byte
// slice. KMA's declared-length sub-headers are naturally walked this way:
// every block advance is driven by a length the wire itself states, never
// by a compile-time sizeof, so a cursor that can report how much it has
// consumed is a better fit here than emx's fixed-offset field reads.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor { return &cursor{b: b} }

func (c *cursor) remaining() int { return len(c.b) - c.pos }

func (c *cursor) need(n int) bool { return c.remaining() >= n }

func (c *cursor) u8() uint8 {
	if !c.need(1) {
		return 0
	}
	v := c.b[c.pos]
	c.pos++
	return v
}

func (c *cursor) i8() int8 { return int8(c.u8()) }

func (c *cursor) u16() uint16 {
	if !c.need(2) {
		c.pos = len(c.b)
		return 0
	}
	v := binary.LittleEndian.Uint16(c.b[c.pos:])
	c.pos += 2
	return v
}

func (c *cursor) u32() uint32 {
	if !c.need(4) {
		c.pos = len(c.b)
		return 0
	}
	v := binary.LittleEndian.Uint32(c.b[c.pos:])
	c.pos += 4
	return v
}

func (c *cursor) i32() int32 { return int32(c.u32()) }

func (c *cursor) f32() float32 {
	return math.Float32frombits(c.u32())
}

func (c *cursor) f64() float64 {
	if !c.need(8) {
		c.pos = len(c.b)
		return 0
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(c.b[c.pos:]))
	c.pos += 8
	return v
}

func (c *cursor) bytes(n int) []byte {
	if n < 0 || !c.need(n) {
		c.pos = len(c.b)
		return nil
	}
	v := c.b[c.pos : c.pos+n]
	c.pos += n
	return v
}

func (c *cursor) skip(n int) {
	c.pos += n
	if c.pos > len(c.b) {
		c.pos = len(c.b)
	}
}

// readSubBlock reads a self-describing KMA sub-header: a little-endian
// uint16 "numBytesXxx" length (counting itself) at body[pos:], then
// returns the full declared block and the position immediately after it.
// Declared lengths shorter than the 2-byte length field itself, or that
// would run past the end of body, are reported as ErrRegionOverflow so a
// malformed declared length can never be used to read out of bounds.
func readSubBlock(body []byte, pos int) (block []byte, next int, err error) {
	if pos+2 > len(body) {
		return nil, pos, errs.ErrRegionOverflow
	}
	l := int(binary.LittleEndian.Uint16(body[pos : pos+2]))
	if l < 2 || pos+l > len(body) {
		return nil, pos, errs.ErrRegionOverflow
	}
	return body[pos : pos+l], pos + l, nil
}

func need(body []byte, n int) error {
	if len(body) < n {
		return errs.ErrRegionOverflow
	}
	return nil
}
