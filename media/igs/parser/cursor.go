package parser

import (
	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/internal/bitio"
)

// cursor is a bounds-checked forward-only reader over an already fully
// buffered segment payload, used by the button-segment parser where many
// optional and variable-length fields make an io.Reader-based style
// (segment/palette's approach) more awkward than direct slicing.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor {
	return &cursor{b: b}
}

func (c *cursor) remaining() int {
	return len(c.b) - c.pos
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, errs.New(errs.UnexpectedEof, "button: expected %d more bytes, have %d", n, c.remaining())
	}
	b := c.b[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return bitio.GetU16BE(b), nil
}

func (c *cursor) u24() (uint32, error) {
	b, err := c.take(3)
	if err != nil {
		return 0, err
	}
	return bitio.GetU24BE(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return bitio.GetU32BE(b), nil
}

func (c *cursor) u40() (uint64, error) {
	b, err := c.take(5)
	if err != nil {
		return 0, err
	}
	return bitio.GetU40BE(b), nil
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return bitio.GetU64BE(b), nil
}

// tryU40 reads a 5-byte value tolerantly: if fewer than 5 bytes remain, it
// reports ok=false instead of failing, so callers can treat a missing
// trailing optional field as
// absent rather than an error.
func (c *cursor) tryU40() (v uint64, ok bool) {
	if c.remaining() < 5 {
		return 0, false
	}
	v, _ = c.u40()
	return v, true
}

// tryU24 is tryU40's 3-byte counterpart, used for user_timeout_duration.
func (c *cursor) tryU24() (v uint32, ok bool) {
	if c.remaining() < 3 {
		return 0, false
	}
	v, _ = c.u24()
	return v, true
}
