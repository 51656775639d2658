// Package model builds the fully cross-referenced, read-only menu object
// from parsed IGS segments: palettes, pictures, pages,
// button-of-groups, buttons, and their navigation graph. Two-phase
// construction — raw u16 ids during parsing, replaced by indirect
// *Button/*Picture/*Palette references during resolve — lets the cyclic
// navigation graph (left/right button pairs) be built without unsafe
// back-pointers.
package model

import (
	"github.com/bugVanisher/igsmenu/media/igs/parser"
)

// NullID is the universal "none" sentinel for u16 button/picture id fields.
// It never survives past resolution: every resolved reference is either a
// concrete pointer or nil.
const NullID = 0xFFFF

// Color is one normalized palette entry, in canonical (y, cb, cr, alpha)
// order — the on-disk order is (color_id, y, cr, cb, alpha); disk order is
// confined to the parser package.
type Color struct {
	Y, Cb, Cr, Alpha uint8
}

// defaultColor is the fill value for any palette index with no segment
// entry: fully transparent near-black.
var defaultColor = Color{Y: 16, Cb: 128, Cr: 128, Alpha: 0}

// Palette maps every 8-bit color index (0..255, all present after
// normalization) to a Color.
type Palette struct {
	Colors [256]Color
}

// Picture is a decoded indexed-color bitmap, one palette index per pixel,
// scanline-ordered.
type Picture struct {
	ID            uint16
	Width, Height int
	Data          []byte // len == Width*Height
}

// StatePair is one outer button-state's {start,stop} picture references.
type StatePair struct {
	Start *Picture
	Stop  *Picture
}

// ButtonStates is a button's full two-level state table.
// Activated.Stop is always nil — IGS defines no activated-stop state.
type ButtonStates struct {
	Normal    StatePair
	Selected  StatePair
	Activated StatePair
}

// Navigation is a button's four directional neighbors, any of which may be
// nil.
type Navigation struct {
	Up, Down, Left, Right *Button
}

// Button is one interactive button, fully resolved.
type Button struct {
	ID      uint16
	X, Y    int
	Flags   uint8
	Version uint16

	Navigation Navigation
	States     ButtonStates

	// Commands are carried through but never executed.
	Commands [][3]uint32
}

// BOG is a Button-Of-Group: a radio-button-like cluster within a page.
type BOG struct {
	DefButton *Button
	Buttons   []*Button
}

// ButtonByID returns the button with the given id within this BOG, or nil.
func (b *BOG) ButtonByID(id uint16) *Button {
	for _, btn := range b.Buttons {
		if btn.ID == id {
			return btn
		}
	}
	return nil
}

// EffectObject places one picture object within a window during an effect.
// Carried through unchanged from the parser.
type EffectObject = parser.EffectObject

// Effect is one timed frame of an in/out effect sequence, with its palette
// reference resolved.
type Effect struct {
	Palette  *Palette
	Duration uint32
	Objects  []EffectObject
}

// EffectBlock is a page's in_effects or out_effects list.
type EffectBlock struct {
	Windows []parser.Window
	Effects []Effect
}

// Page is one interactive menu screen.
type Page struct {
	ID uint8

	Palette      *Palette
	DefButton    *Button
	DefActivated *Button

	InEffects  EffectBlock
	OutEffects EffectBlock

	BOGs []*BOG
}

// ButtonByID scans every BOG of the page for a button with the given id —
// button ids are page-unique, not BOG-unique.
func (p *Page) ButtonByID(id uint16) *Button {
	for _, bog := range p.BOGs {
		if btn := bog.ButtonByID(id); btn != nil {
			return btn
		}
	}
	return nil
}

// Menu is the top-level, immutable-after-construction menu model.
type Menu struct {
	Width, Height int

	Palettes []*Palette
	Pictures map[uint16]*Picture
	Pages    []*Page

	// SourcePath is the input file name, set by the CLI after parsing for
	// output-filename templating only — not part of the wire format.
	SourcePath string
}
