// Package render converts the resolved menu model into per-(page, state1,
// state2) 16-bit RGBA images and hands them to an external PNG sink. Colors
// are expressed using github.com/rmamba/image and
// github.com/rmamba/image/color — a drop-in mirror of the standard
// image/color/image/png API — rather than the standard library, since the
// PNG encoder is treated as an external collaborator with a fixed contract.
package render

import (
	"math"

	rcolor "github.com/rmamba/image/color"

	"github.com/bugVanisher/igsmenu/media/igs/model"
)

// Matrix selects the YCbCr→RGB coefficient set.
type Matrix string

const (
	Matrix601 Matrix = "601"
	Matrix709 Matrix = "709"
)

// AutoMatrix picks "709" for a menu at least 600px tall, "601" otherwise.
func AutoMatrix(height int) Matrix {
	if height >= 600 {
		return Matrix709
	}
	return Matrix601
}

// Range selects TV-range or full-range luma/chroma scaling.
type Range int

const (
	TVRange Range = iota
	FullRange
)

type coeffs struct{ kr, kg, kb float64 }

func matrixCoeffs(m Matrix) coeffs {
	if m == Matrix709 {
		return coeffs{kr: 0.2126, kg: 0.7152, kb: 0.0722}
	}
	return coeffs{kr: 0.299, kg: 0.587, kb: 0.114}
}

type rangeScale struct {
	offsetY, scaleY, scaleUV float64
}

func rangeScaling(rng Range) rangeScale {
	if rng == FullRange {
		return rangeScale{offsetY: 0, scaleY: 1, scaleUV: 2}
	}
	return rangeScale{offsetY: 16, scaleY: 255.0 / 219.0, scaleUV: 255.0 / 112.0}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// expand16 replicates an 8-bit channel value into both bytes of a 16-bit
// channel (0xAB → 0xABAB): round(v*256+v) == v*257 for integer v, never a
// naive v<<8.
func expand16(v uint8) uint16 {
	return uint16(v) * 257
}

// ycbcrToRGB48 converts one palette color to 16-bit-expanded (r, g, b)
// channels via the selected matrix/range formulas.
func ycbcrToRGB48(y, cb, cr uint8, m Matrix, rng Range) (r, g, b uint16) {
	c := matrixCoeffs(m)
	s := rangeScaling(rng)

	sy := s.scaleY * (float64(y) - s.offsetY)
	scb := s.scaleUV * (float64(cb) - 128)
	scr := s.scaleUV * (float64(cr) - 128)

	fr := sy + scr*(1-c.kr)
	fg := sy - scb*(1-c.kb)*c.kb/c.kg - scr*(1-c.kr)*c.kr/c.kg
	fb := sy + scb*(1-c.kb)

	return expand16(clamp8(fr)), expand16(clamp8(fg)), expand16(clamp8(fb))
}

// lookupTable maps every palette index (0..255) to its expanded RGBA64
// color, derived once per (page, matrix, range) render.
type lookupTable [256]rcolor.RGBA64

func buildLUT(pal *model.Palette, m Matrix, rng Range) lookupTable {
	var lut lookupTable
	for i, c := range pal.Colors {
		r, g, b := ycbcrToRGB48(c.Y, c.Cb, c.Cr, m, rng)
		lut[i] = rcolor.RGBA64{R: r, G: g, B: b, A: expand16(c.Alpha)}
	}
	return lut
}
