// Package rle decodes IGS's run-length-encoded indexed-color bitmaps into
// raw palette-index arrays. The opcode grammar (a single escape byte 0x00
// signalling a run, versus any other byte being a literal pixel) is the
// same family as the PGS/BDSUP run-length scheme, but IGS's flag-byte bit
// layout (run-length-extension bit, explicit-color bit) differs enough to
// warrant its own decoder rather than adapting a PGS one.
package rle

import (
	"bytes"
	"io"

	"github.com/bugVanisher/igsmenu/common/errs"
)

// Decode expands src into exactly width*height palette-index bytes.
func Decode(src []byte, width, height int) ([]byte, error) {
	r := bytes.NewReader(src)
	out := make([]byte, 0, width*height)

	for {
		color, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if color != 0x00 {
			out = append(out, color)
			continue
		}

		flags, err := r.ReadByte()
		if err != nil {
			return nil, errs.New(errs.UnexpectedEof, "rle: truncated escape sequence")
		}

		runLow := int(flags & 0x3F)
		run := runLow
		if flags&0x40 != 0 {
			b, err := r.ReadByte()
			if err != nil {
				return nil, errs.New(errs.UnexpectedEof, "rle: truncated extended run length")
			}
			run = runLow<<8 | int(b)
		}

		runColor := byte(0x00)
		if flags&0x80 != 0 {
			c, err := r.ReadByte()
			if err != nil {
				return nil, errs.New(errs.UnexpectedEof, "rle: truncated run color")
			}
			runColor = c
		}

		if run == 0 {
			if len(out)%width != 0 {
				return nil, errs.New(errs.IncorrectPixelCount, "rle: end-of-line marker at pixel %d, not a multiple of width %d", len(out), width)
			}
			continue
		}

		if len(out)+run > width*height {
			return nil, errs.New(errs.PictureTooLong, "rle: decoded length would exceed %d pixels", width*height)
		}
		for i := 0; i < run; i++ {
			out = append(out, runColor)
		}
	}

	switch {
	case len(out) < width*height:
		return nil, errs.New(errs.UnexpectedEof, "rle: decoded %d of %d pixels", len(out), width*height)
	case len(out) > width*height:
		return nil, errs.New(errs.PictureTooLong, "rle: decoded %d pixels, want %d", len(out), width*height)
	}
	return out, nil
}
