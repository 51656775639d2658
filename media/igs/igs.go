// Package igs is the top-level entry point for the decode pipeline: detect
// plain-IGS vs. Blu-ray transport-stream framing, demux if needed, then
// parse and resolve the menu model.
package igs

import (
	"bufio"
	"bytes"
	"io"

	"github.com/bugVanisher/igsmenu/media/igs/model"
	"github.com/bugVanisher/igsmenu/media/mpegts"
)

// Load reads either a plain IGS segment stream or a Blu-ray MPEG-TS file
// from r and returns the fully resolved Menu.
func Load(r io.Reader) (*model.Menu, error) {
	br := bufio.NewReaderSize(r, 8*1024)
	head, _ := br.Peek(2)

	if mpegts.LooksLikeIGS(head) {
		return model.Parse(br)
	}

	igsBytes, err := mpegts.Extract(br)
	if err != nil {
		return nil, err
	}
	return model.Parse(bytes.NewReader(igsBytes))
}
