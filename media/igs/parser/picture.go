package parser

import (
	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/internal/bitio"
)

// PictureSegment is the decoded header (and raw RLE tail) of one picture
// segment, before reassembly across continuations.
type PictureSegment struct {
	ID      uint16
	Version uint8
	// First reports whether this segment opens a new picture (seq_desc &
	// 0x80). If false, this is a continuation carrying only RLE bytes for
	// the most recently opened picture.
	First bool

	// Width, Height, and RLEBitmapLen are only valid when First is true.
	Width        uint16
	Height       uint16
	RLEBitmapLen uint32 // pure RLE byte length, with the 4-byte width+height already subtracted

	RLEData []byte
}

// ParsePicture decodes a picture segment payload: id:u16, version:u8,
// seq_desc:u8, and — for a first/standalone segment (seq_desc&0x80 set) —
// rle_bitmap_len:u24, width:u16, height:u16. The remainder of the payload is
// RLE data.
func ParsePicture(payload []byte) (*PictureSegment, error) {
	if len(payload) < 4 {
		return nil, errs.New(errs.UnexpectedEof, "picture: segment shorter than fixed header")
	}
	id := bitio.GetU16BE(payload[0:2])
	version := payload[2]
	seqDesc := payload[3]
	offset := 4

	p := &PictureSegment{ID: id, Version: version, First: seqDesc&0x80 != 0}

	if p.First {
		if len(payload) < offset+7 {
			return nil, errs.New(errs.UnexpectedEof, "picture: segment shorter than first-segment header")
		}
		rleLen := bitio.GetU24BE(payload[offset : offset+3])
		p.Width = bitio.GetU16BE(payload[offset+3 : offset+5])
		p.Height = bitio.GetU16BE(payload[offset+5 : offset+7])
		p.RLEBitmapLen = rleLen - 4
		offset += 7
	}

	p.RLEData = payload[offset:]
	return p, nil
}
