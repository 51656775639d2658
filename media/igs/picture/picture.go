// Package picture reassembles picture segments that may span multiple
// continuations into finalized, RLE-decoded Picture objects.
package picture

import (
	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/media/igs/parser"
	"github.com/bugVanisher/igsmenu/media/igs/rle"
)

// Decoded is a fully reassembled and RLE-decoded picture object.
type Decoded struct {
	ID      uint16
	Version uint8
	Width   uint16
	Height  uint16
	Data    []byte // len == Width*Height, one palette index per pixel
}

// Reassembler accumulates one open picture's RLE segments at a time.
type Reassembler struct {
	open    bool
	id      uint16
	version uint8
	width   uint16
	height  uint16
	wantLen uint32
	buf     []byte
}

// Feed consumes one picture segment. It returns a non-nil Decoded picture
// once the accumulated RLE length reaches the opening segment's declared
// length; otherwise it returns (nil, nil) and keeps buffering.
func (r *Reassembler) Feed(ps parser.PictureSegment) (*Decoded, error) {
	if ps.First {
		if r.open {
			return nil, errs.New(errs.InvariantViolation,
				"picture: new picture segment id=%d opened while picture id=%d still pending", ps.ID, r.id)
		}
		r.open = true
		r.id = ps.ID
		r.version = ps.Version
		r.width = ps.Width
		r.height = ps.Height
		r.wantLen = ps.RLEBitmapLen
		r.buf = append([]byte{}, ps.RLEData...)
	} else {
		if !r.open {
			return nil, errs.New(errs.InvariantViolation, "picture: continuation segment with no picture open")
		}
		r.buf = append(r.buf, ps.RLEData...)
	}

	if uint32(len(r.buf)) > r.wantLen {
		return nil, errs.New(errs.PictureTooLong,
			"picture: accumulated %d bytes exceeds declared %d for id=%d", len(r.buf), r.wantLen, r.id)
	}
	if uint32(len(r.buf)) == r.wantLen {
		return r.finish()
	}
	return nil, nil
}

// Flush finalizes whatever picture is currently pending — called when the
// next non-picture segment arrives, or the underlying stream ends. Returns
// (nil, nil) if nothing is pending.
func (r *Reassembler) Flush() (*Decoded, error) {
	if !r.open {
		return nil, nil
	}
	return r.finish()
}

func (r *Reassembler) finish() (*Decoded, error) {
	data, err := rle.Decode(r.buf, int(r.width), int(r.height))
	if err != nil {
		return nil, err
	}
	pic := &Decoded{ID: r.id, Version: r.version, Width: r.width, Height: r.height, Data: data}
	r.open = false
	r.buf = nil
	return pic, nil
}
