package render

import (
	"io"

	rimage "github.com/rmamba/image"
	rpng "github.com/rmamba/image/png"
)

// Sink is the one-method PNG output boundary, deliberately narrow so the CLI
// layer can inject the real encoder in production and a generated mock in
// tests.
type Sink interface {
	Encode(w io.Writer, img *rimage.RGBA64) error
}

// PNGSink writes frames with github.com/rmamba/image/png, a drop-in mirror of
// the standard library's image/png encoder.
type PNGSink struct{}

func (PNGSink) Encode(w io.Writer, img *rimage.RGBA64) error {
	return rpng.Encode(w, img)
}
