package parser

import (
	"github.com/bugVanisher/igsmenu/common/errs"
)

// Window is one effect window rectangle.
type Window struct {
	ID     uint8
	X, Y   uint16
	Width  uint16
	Height uint16
}

// EffectObject places one picture object within a window during an effect
// (carried through, never rendered).
type EffectObject struct {
	ID       uint16
	WindowID uint16
	X, Y     uint16
}

// Effect is one timed frame of an in/out effect sequence.
type Effect struct {
	Duration uint32
	Palette  uint8
	Objects  []EffectObject
}

// EffectBlock is a page's in_effects or out_effects list: a window table
// plus the effects that reference it.
type EffectBlock struct {
	Windows []Window
	Effects []Effect
}

// RawButton is one button record with all ids unresolved (phase 1 of the
// two-phase resolution that turns raw ids into indirect references).
type RawButton struct {
	ID      uint16
	Version uint16
	Flags   uint8
	X, Y    uint16

	NavUp, NavDown, NavLeft, NavRight uint16

	PicStartNormal, PicStopNormal uint16
	FlagsNormal                   uint16
	PicStartSelected, PicStopSelected uint16
	FlagsSelected                     uint16
	PicStartActivated, PicStopActivated uint16

	Commands [][3]uint32
}

// RawBOG is one button-of-group record with all ids unresolved.
type RawBOG struct {
	DefButton uint16
	Buttons   []RawButton
}

// RawPage is one page record with all ids unresolved.
type RawPage struct {
	ID uint8
	UO uint64

	InEffects  EffectBlock
	OutEffects EffectBlock

	FrameRateDivider uint8
	DefButton        uint16
	DefActivated     uint16
	Palette          uint8

	BOGs []RawBOG
}

// ButtonSegment is the fully decoded content of the (singular)
// BUTTON segment.
type ButtonSegment struct {
	Width, Height     uint16
	FramerateID       uint8
	CompositionNumber uint16
	CompositionState  uint8
	SeqDescriptor     uint8

	// CompositionTimeoutPTS, SelectionTimeoutPTS, and UserTimeoutDuration
	// are read tolerantly: a short trailing read leaves them nil rather
	// than failing.
	CompositionTimeoutPTS *uint64
	SelectionTimeoutPTS   *uint64
	UserTimeoutDuration   *uint32

	Pages []RawPage
}

// ParseButton decodes a button segment payload using the model_flags
// layout — the libbluray-compatible field order. A second, flags/in_time/out_time
// variant exists in the wild but is not implemented: no known encoder
// produces it, and without a sample there is nothing to decode against.
func ParseButton(payload []byte) (*ButtonSegment, error) {
	c := newCursor(payload)

	b := &ButtonSegment{}
	var err error
	if b.Width, err = c.u16(); err != nil {
		return nil, err
	}
	if b.Height, err = c.u16(); err != nil {
		return nil, err
	}
	if b.FramerateID, err = c.u8(); err != nil {
		return nil, err
	}
	if b.CompositionNumber, err = c.u16(); err != nil {
		return nil, err
	}
	if b.CompositionState, err = c.u8(); err != nil {
		return nil, err
	}
	if b.SeqDescriptor, err = c.u8(); err != nil {
		return nil, err
	}
	if _, err = c.u24(); err != nil { // data_len, not needed beyond the header
		return nil, err
	}
	modelFlags, err := c.u8()
	if err != nil {
		return nil, err
	}

	if modelFlags&0x80 == 0 {
		if v, ok := c.tryU40(); ok {
			b.CompositionTimeoutPTS = &v
		}
		if v, ok := c.tryU40(); ok {
			b.SelectionTimeoutPTS = &v
		}
	}
	if v, ok := c.tryU24(); ok {
		b.UserTimeoutDuration = &v
	}

	pageCount, err := c.u8()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(pageCount); i++ {
		page, err := parsePage(c)
		if err != nil {
			return nil, errs.Wrapf(err, "button: page %d/%d", i+1, pageCount)
		}
		b.Pages = append(b.Pages, *page)
	}
	return b, nil
}

func parsePage(c *cursor) (*RawPage, error) {
	p := &RawPage{}
	var err error
	if p.ID, err = c.u8(); err != nil {
		return nil, err
	}
	if _, err = c.u8(); err != nil { // reserved
		return nil, err
	}
	if p.UO, err = c.u64(); err != nil {
		return nil, err
	}
	if p.InEffects, err = parseEffectBlock(c); err != nil {
		return nil, errs.Wrapf(err, "in_effects")
	}
	if p.OutEffects, err = parseEffectBlock(c); err != nil {
		return nil, errs.Wrapf(err, "out_effects")
	}
	if p.FrameRateDivider, err = c.u8(); err != nil {
		return nil, err
	}
	if p.DefButton, err = c.u16(); err != nil {
		return nil, err
	}
	if p.DefActivated, err = c.u16(); err != nil {
		return nil, err
	}
	if p.Palette, err = c.u8(); err != nil {
		return nil, err
	}
	bogCount, err := c.u8()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(bogCount); i++ {
		bog, err := parseBOG(c)
		if err != nil {
			return nil, errs.Wrapf(err, "bog %d/%d", i+1, bogCount)
		}
		p.BOGs = append(p.BOGs, *bog)
	}
	return p, nil
}

func parseEffectBlock(c *cursor) (EffectBlock, error) {
	var eb EffectBlock
	windowCount, err := c.u8()
	if err != nil {
		return eb, err
	}
	seenWindowIDs := map[uint8]bool{}
	for i := 0; i < int(windowCount); i++ {
		var w Window
		if w.ID, err = c.u8(); err != nil {
			return eb, err
		}
		if w.X, err = c.u16(); err != nil {
			return eb, err
		}
		if w.Y, err = c.u16(); err != nil {
			return eb, err
		}
		if w.Width, err = c.u16(); err != nil {
			return eb, err
		}
		if w.Height, err = c.u16(); err != nil {
			return eb, err
		}
		if seenWindowIDs[w.ID] {
			return eb, errs.New(errs.InvariantViolation, "effect block: duplicate window id %d", w.ID)
		}
		seenWindowIDs[w.ID] = true
		eb.Windows = append(eb.Windows, w)
	}

	effectCount, err := c.u8()
	if err != nil {
		return eb, err
	}
	for i := 0; i < int(effectCount); i++ {
		var e Effect
		if e.Duration, err = c.u24(); err != nil {
			return eb, err
		}
		if e.Palette, err = c.u8(); err != nil {
			return eb, err
		}
		objCount, err := c.u8()
		if err != nil {
			return eb, err
		}
		for j := 0; j < int(objCount); j++ {
			var o EffectObject
			if o.ID, err = c.u16(); err != nil {
				return eb, err
			}
			if o.WindowID, err = c.u16(); err != nil {
				return eb, err
			}
			if o.X, err = c.u16(); err != nil {
				return eb, err
			}
			if o.Y, err = c.u16(); err != nil {
				return eb, err
			}
			e.Objects = append(e.Objects, o)
		}
		eb.Effects = append(eb.Effects, e)
	}
	return eb, nil
}

func parseBOG(c *cursor) (*RawBOG, error) {
	bog := &RawBOG{}
	var err error
	if bog.DefButton, err = c.u16(); err != nil {
		return nil, err
	}
	buttonCount, err := c.u8()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(buttonCount); i++ {
		btn, err := parseRawButton(c)
		if err != nil {
			return nil, errs.Wrapf(err, "button %d/%d", i+1, buttonCount)
		}
		bog.Buttons = append(bog.Buttons, *btn)
	}
	return bog, nil
}

func parseRawButton(c *cursor) (*RawButton, error) {
	b := &RawButton{}
	var err error
	if b.ID, err = c.u16(); err != nil {
		return nil, err
	}
	if b.Version, err = c.u16(); err != nil {
		return nil, err
	}
	if b.Flags, err = c.u8(); err != nil {
		return nil, err
	}
	if b.X, err = c.u16(); err != nil {
		return nil, err
	}
	if b.Y, err = c.u16(); err != nil {
		return nil, err
	}
	if b.NavUp, err = c.u16(); err != nil {
		return nil, err
	}
	if b.NavDown, err = c.u16(); err != nil {
		return nil, err
	}
	if b.NavLeft, err = c.u16(); err != nil {
		return nil, err
	}
	if b.NavRight, err = c.u16(); err != nil {
		return nil, err
	}
	if b.PicStartNormal, err = c.u16(); err != nil {
		return nil, err
	}
	if b.PicStopNormal, err = c.u16(); err != nil {
		return nil, err
	}
	if b.FlagsNormal, err = c.u16(); err != nil {
		return nil, err
	}
	if b.PicStartSelected, err = c.u16(); err != nil {
		return nil, err
	}
	if b.PicStopSelected, err = c.u16(); err != nil {
		return nil, err
	}
	if b.FlagsSelected, err = c.u16(); err != nil {
		return nil, err
	}
	if b.PicStartActivated, err = c.u16(); err != nil {
		return nil, err
	}
	if b.PicStopActivated, err = c.u16(); err != nil {
		return nil, err
	}
	cmdCount, err := c.u16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(cmdCount); i++ {
		var cmd [3]uint32
		if cmd[0], err = c.u32(); err != nil {
			return nil, err
		}
		if cmd[1], err = c.u32(); err != nil {
			return nil, err
		}
		if cmd[2], err = c.u32(); err != nil {
			return nil, err
		}
		b.Commands = append(b.Commands, cmd)
	}
	return b, nil
}
