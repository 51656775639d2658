package model

import (
	"io"

	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/media/igs/parser"
	"github.com/bugVanisher/igsmenu/media/igs/picture"
	"github.com/bugVanisher/igsmenu/media/igs/segment"
)

// Parse reads a raw IGS segment stream and builds the fully
// resolved Menu. Segment dispatch and picture reassembly
// happen in one forward pass; resolve (in resolve.go) runs once all
// segments have been consumed.
func Parse(r io.Reader) (*Menu, error) {
	sr := segment.NewReader(r)

	var rawPalettes []*parser.Palette
	var decoded []picture.Decoded
	var buttonSeg *parser.ButtonSegment
	var reassembler picture.Reassembler

	flush := func() error {
		pic, err := reassembler.Flush()
		if err != nil {
			return err
		}
		if pic != nil {
			decoded = append(decoded, *pic)
		}
		return nil
	}

	for {
		seg, err := sr.Next()
		if err != nil {
			return nil, err
		}
		if seg == nil {
			break
		}

		if seg.Type != segment.TypePicture {
			if err := flush(); err != nil {
				return nil, err
			}
		}

		switch seg.Type {
		case segment.TypePalette:
			pal, err := parser.ParsePalette(seg.Payload)
			if err != nil {
				return nil, errs.Wrapf(err, "model: palette segment")
			}
			rawPalettes = append(rawPalettes, pal)

		case segment.TypePicture:
			ps, err := parser.ParsePicture(seg.Payload)
			if err != nil {
				return nil, errs.Wrapf(err, "model: picture segment")
			}
			pic, err := reassembler.Feed(*ps)
			if err != nil {
				return nil, err
			}
			if pic != nil {
				decoded = append(decoded, *pic)
			}

		case segment.TypeButton:
			if buttonSeg != nil {
				return nil, errs.New(errs.InvariantViolation, "model: more than one BUTTON segment")
			}
			bs, err := parser.ParseButton(seg.Payload)
			if err != nil {
				return nil, errs.Wrapf(err, "model: button segment")
			}
			buttonSeg = bs

		case segment.TypeDisplay:
			// No payload to parse.

		default:
			// Unknown segment types are forward-compatibility noise, not a
			// pipeline error; nothing downstream references them.
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	if buttonSeg == nil {
		return nil, errs.New(errs.InvariantViolation, "model: no BUTTON segment found")
	}

	return resolve(rawPalettes, decoded, buttonSeg)
}
