package model

import (
	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/media/igs/parser"
	"github.com/bugVanisher/igsmenu/media/igs/picture"
)

// resolve builds the cross-referenced Menu from the parsed segment
// collections in one pass: palettes and pictures first, then the single
// button segment's pages/BOGs/buttons with every id rewired into an
// indirect reference.
func resolve(rawPalettes []*parser.Palette, decoded []picture.Decoded, bs *parser.ButtonSegment) (*Menu, error) {
	palettes := make([]*Palette, len(rawPalettes))
	for i, rp := range rawPalettes {
		palettes[i] = normalizePalette(rp)
	}

	pictures := make(map[uint16]*Picture, len(decoded))
	for _, d := range decoded {
		if len(d.Data) != int(d.Width)*int(d.Height) {
			return nil, errs.New(errs.InvariantViolation,
				"model: picture %d decoded length %d != %d*%d", d.ID, len(d.Data), d.Width, d.Height)
		}
		pictures[d.ID] = &Picture{ID: d.ID, Width: int(d.Width), Height: int(d.Height), Data: d.Data}
	}

	menu := &Menu{
		Width:    int(bs.Width),
		Height:   int(bs.Height),
		Palettes: palettes,
		Pictures: pictures,
	}

	resolvePalette := func(idx uint8) (*Palette, error) {
		if int(idx) >= len(palettes) {
			return nil, errs.New(errs.InvariantViolation, "model: palette index %d out of range (have %d)", idx, len(palettes))
		}
		return palettes[idx], nil
	}

	resolvePicture := func(id uint16) (*Picture, error) {
		if id == NullID {
			return nil, nil
		}
		pic, ok := pictures[id]
		if !ok {
			return nil, errs.New(errs.PictureNotFound, "model: picture id %d not found", id)
		}
		return pic, nil
	}

	for _, rp := range bs.Pages {
		page := &Page{ID: rp.ID}

		pal, err := resolvePalette(rp.Palette)
		if err != nil {
			return nil, err
		}
		page.Palette = pal

		// Phase 1: materialize every button of every BOG with raw ids
		// still intact, so navigation/back-references below can find any
		// button on the page regardless of declaration order.
		for _, rbog := range rp.BOGs {
			bog := &BOG{}
			for _, rb := range rbog.Buttons {
				bog.Buttons = append(bog.Buttons, &Button{
					ID:       rb.ID,
					X:        int(rb.X),
					Y:        int(rb.Y),
					Flags:    rb.Flags,
					Version:  rb.Version,
					Commands: rb.Commands,
				})
			}
			page.BOGs = append(page.BOGs, bog)
		}

		// Phase 2: rewrite every id into an indirect reference.
		for bi, rbog := range rp.BOGs {
			bog := page.BOGs[bi]
			for bj, rb := range rbog.Buttons {
				btn := bog.Buttons[bj]

				nav, err := resolveNavigation(page, rb)
				if err != nil {
					return nil, err
				}
				btn.Navigation = nav

				states, err := resolveStates(resolvePicture, rb)
				if err != nil {
					return nil, err
				}
				btn.States = states
			}

			if rbog.DefButton != NullID {
				def := bog.ButtonByID(rbog.DefButton)
				if def == nil {
					return nil, errs.New(errs.ButtonNotFound, "model: bog def_button %d not found", rbog.DefButton)
				}
				bog.DefButton = def
			}
		}

		if rp.DefButton != NullID {
			def := page.ButtonByID(rp.DefButton)
			if def == nil {
				return nil, errs.New(errs.ButtonNotFound, "model: page %d def_button %d not found", rp.ID, rp.DefButton)
			}
			page.DefButton = def
		}
		if rp.DefActivated != NullID {
			def := page.ButtonByID(rp.DefActivated)
			if def == nil {
				return nil, errs.New(errs.ButtonNotFound, "model: page %d def_activated %d not found", rp.ID, rp.DefActivated)
			}
			page.DefActivated = def
		}

		if page.InEffects, err = resolveEffectBlock(resolvePalette, rp.InEffects); err != nil {
			return nil, err
		}
		if page.OutEffects, err = resolveEffectBlock(resolvePalette, rp.OutEffects); err != nil {
			return nil, err
		}

		menu.Pages = append(menu.Pages, page)
	}

	return menu, nil
}

func resolveNavigation(page *Page, rb parser.RawButton) (Navigation, error) {
	lookup := func(id uint16) (*Button, error) {
		if id == NullID {
			return nil, nil
		}
		b := page.ButtonByID(id)
		if b == nil {
			return nil, errs.New(errs.ButtonNotFound, "model: navigation target %d not found on page %d", id, page.ID)
		}
		return b, nil
	}

	var nav Navigation
	var err error
	if nav.Up, err = lookup(rb.NavUp); err != nil {
		return nav, err
	}
	if nav.Down, err = lookup(rb.NavDown); err != nil {
		return nav, err
	}
	if nav.Left, err = lookup(rb.NavLeft); err != nil {
		return nav, err
	}
	if nav.Right, err = lookup(rb.NavRight); err != nil {
		return nav, err
	}
	return nav, nil
}

func resolveStates(resolvePicture func(uint16) (*Picture, error), rb parser.RawButton) (ButtonStates, error) {
	var s ButtonStates
	var err error
	if s.Normal.Start, err = resolvePicture(rb.PicStartNormal); err != nil {
		return s, err
	}
	if s.Normal.Stop, err = resolvePicture(rb.PicStopNormal); err != nil {
		return s, err
	}
	if s.Selected.Start, err = resolvePicture(rb.PicStartSelected); err != nil {
		return s, err
	}
	if s.Selected.Stop, err = resolvePicture(rb.PicStopSelected); err != nil {
		return s, err
	}
	if s.Activated.Start, err = resolvePicture(rb.PicStartActivated); err != nil {
		return s, err
	}
	// Activated.Stop is always nil — IGS defines no activated-stop picture.
	return s, nil
}

func resolveEffectBlock(resolvePalette func(uint8) (*Palette, error), reb parser.EffectBlock) (EffectBlock, error) {
	eb := EffectBlock{Windows: reb.Windows}
	for _, re := range reb.Effects {
		pal, err := resolvePalette(re.Palette)
		if err != nil {
			return eb, err
		}
		eb.Effects = append(eb.Effects, Effect{Palette: pal, Duration: re.Duration, Objects: re.Objects})
	}
	return eb, nil
}

func normalizePalette(rp *parser.Palette) *Palette {
	var p Palette
	for i := range p.Colors {
		p.Colors[i] = defaultColor
	}
	for _, e := range rp.Entries {
		p.Colors[e.ColorID] = Color{Y: e.Y, Cb: e.Cb, Cr: e.Cr, Alpha: e.Alpha}
	}
	return &p
}
