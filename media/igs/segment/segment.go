// Package segment splits an IGS byte stream into raw (pts, dts, type,
// payload) segments, in the same shape as a typical PGS SegmentReader
// (magic-prefixed header read with a fixed layout, size-bounded payload
// slice per segment), adapted from PGS's "PG" 2-byte-timestamp header to
// IGS's "IG" magic with explicit 4-byte pts and dts fields.
package segment

import (
	"io"

	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/internal/bitio"
)

// Segment type tags.
const (
	TypePalette = 0x14
	TypePicture = 0x15
	TypeButton  = 0x18
	TypeDisplay = 0x80
)

const magic = "IG"

// Segment is one raw IGS segment: a timestamp pair, a type tag, and its
// undecoded payload.
type Segment struct {
	PTS     uint32
	DTS     uint32
	Type    uint8
	Payload []byte
}

// Reader frames a byte stream into a sequence of Segments.
type Reader struct {
	br *bitio.Reader
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bitio.NewReader(r)}
}

// Next reads the next segment. A clean EOF at the start of a header returns
// (nil, nil), terminating iteration; any other short read fails with
// errs.UnexpectedEof. A magic mismatch fails with errs.InvalidSegmentHeader.
func (r *Reader) Next() (*Segment, error) {
	hdr, err := r.br.TryReadN(10)
	if err != nil {
		return nil, err
	}
	if hdr == nil {
		return nil, nil
	}
	if string(hdr[0:2]) != magic {
		return nil, errs.New(errs.InvalidSegmentHeader, "segment: bad magic %q, want %q", hdr[0:2], magic)
	}
	pts := bitio.GetU32BE(hdr[2:6])
	dts := bitio.GetU32BE(hdr[6:10])

	// The 10-byte prefix above ("IG"+pts+dts) is what the TS demultiplexer
	// synthesizes at a segment boundary; type and length always follow it.
	rest, err := r.br.ReadN(3)
	if err != nil {
		return nil, err
	}
	length := bitio.GetU16BE(rest[1:3])
	payload, err := r.br.ReadN(int(length))
	if err != nil {
		return nil, err
	}

	return &Segment{
		PTS:     pts,
		DTS:     dts,
		Type:    rest[0],
		Payload: payload,
	}, nil
}

// ReadAll reads every segment from r until clean EOF.
func ReadAll(r io.Reader) ([]Segment, error) {
	sr := NewReader(r)
	var segs []Segment
	for {
		s, err := sr.Next()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return segs, nil
		}
		segs = append(segs, *s)
	}
}
