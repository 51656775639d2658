package render

import (
	rimage "github.com/rmamba/image"

	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/media/igs/model"
)

// Frame is one rasterized (page, state1, state2) composite, ready for a Sink.
type Frame struct {
	Page       *model.Page
	State1     string
	State2     string
	Image      *rimage.RGBA64
}

// selectPicture applies the button-state fallback chain from:
// (s1, s2) → (s1, "start") → ("normal", s2) → ("normal", "start"). The first
// non-nil picture in that order wins; a button with no picture at all in any
// of those four slots contributes nothing to the frame.
func selectPicture(btn *model.Button, s1, s2 string) *model.Picture {
	get := func(state1, state2 string) *model.Picture {
		var pair model.StatePair
		switch state1 {
		case "normal":
			pair = btn.States.Normal
		case "selected":
			pair = btn.States.Selected
		case "activated":
			pair = btn.States.Activated
		default:
			return nil
		}
		if state2 == "start" {
			return pair.Start
		}
		return pair.Stop
	}

	if p := get(s1, s2); p != nil {
		return p
	}
	if p := get(s1, "start"); p != nil {
		return p
	}
	if p := get("normal", s2); p != nil {
		return p
	}
	return get("normal", "start")
}

// Render rasterizes one page in one (state1, state2) combination. The canvas
// is allocated zero-valued (fully transparent) and never explicitly painted
// with palette entry 0. Under TV range the default palette entry computes
// to (0,0,0,0), so a zero-filled canvas and an explicit background fill
// agree for any page that leaves entry 0 at its default; under full range
// the default entry keeps alpha 0 but its R, G and B are 4112 (0x1010), so
// the two differ only in the color channels of fully transparent pixels.
// Buttons are blitted in BOG/declaration order, later buttons
// opaquely overwriting earlier ones where pictures overlap.
func Render(menu *model.Menu, page *model.Page, s1, s2 string, matrix Matrix, rng Range) (*Frame, error) {
	if page.Palette == nil {
		return nil, errs.New(errs.InvariantViolation, "render: page %d has no palette", page.ID)
	}
	lut := buildLUT(page.Palette, matrix, rng)

	img := rimage.NewRGBA64(rimage.Rect(0, 0, menu.Width, menu.Height))

	for _, bog := range page.BOGs {
		for _, btn := range bog.Buttons {
			pic := selectPicture(btn, s1, s2)
			if pic == nil {
				continue
			}
			if btn.X < 0 || btn.Y < 0 ||
				btn.X+pic.Width > menu.Width || btn.Y+pic.Height > menu.Height {
				return nil, errs.New(errs.InvariantViolation,
					"render: button %d picture %dx%d at (%d,%d) exceeds %dx%d canvas",
					btn.ID, pic.Width, pic.Height, btn.X, btn.Y, menu.Width, menu.Height)
			}
			blit(img, btn.X, btn.Y, pic, lut)
		}
	}

	return &Frame{Page: page, State1: s1, State2: s2, Image: img}, nil
}

func blit(img *rimage.RGBA64, x0, y0 int, pic *model.Picture, lut lookupTable) {
	for y := 0; y < pic.Height; y++ {
		row := y * pic.Width
		for x := 0; x < pic.Width; x++ {
			idx := pic.Data[row+x]
			img.SetRGBA64(x0+x, y0+y, lut[idx])
		}
	}
}
