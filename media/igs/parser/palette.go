// Package parser decodes IGS segment payloads (palette, picture, button)
// into record trees, following the same shape as a typical PGS
// per-segment decoder (readPalette/readObject): fixed-size-entry loops
// bounded by the segment's declared size, with a duplicate-id set check
// for palette entries. Field order and widths are IGS's own, not PGS's.
package parser

import (
	"bytes"

	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/internal/bitio"
)

// PaletteEntry is one on-disk palette color record, in IGS's disk order
// (color_id, y, cr, cb, alpha) — note cr before cb.
type PaletteEntry struct {
	ColorID uint8
	Y       uint8
	Cr      uint8
	Cb      uint8
	Alpha   uint8
}

// Palette is the decoded, still-unnormalized content of one palette
// segment.
type Palette struct {
	Entries []PaletteEntry
}

// ParsePalette decodes a palette segment payload: 2 bytes skipped, then
// 5-byte (color_id, y, cr, cb, alpha) entries until the payload is
// exhausted. A repeated color_id within one segment fails
// errs.InvariantViolation.
func ParsePalette(payload []byte) (*Palette, error) {
	br := bitio.NewReader(bytes.NewReader(payload))
	if _, err := br.ReadN(2); err != nil {
		return nil, err
	}

	seen := map[uint8]bool{}
	var entries []PaletteEntry
	for {
		b, err := br.TryReadN(5)
		if err != nil {
			return nil, err
		}
		if b == nil {
			break
		}
		e := PaletteEntry{
			ColorID: b[0],
			Y:       b[1],
			Cr:      b[2],
			Cb:      b[3],
			Alpha:   b[4],
		}
		if seen[e.ColorID] {
			return nil, errs.New(errs.InvariantViolation, "palette: duplicate color_id %d", e.ColorID)
		}
		seen[e.ColorID] = true
		entries = append(entries, e)
	}
	return &Palette{Entries: entries}, nil
}
