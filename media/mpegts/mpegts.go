// Package mpegts extracts IGS elementary-stream payload bytes from a
// Blu-ray MPEG-2 transport stream: PAT → PMT → IGS PES payload, using a
// single packet loop that resolves the PAT, then the PMT, then collects the
// stream_type==0x91 payload into a flat growing byte buffer, with PSI field
// layouts matching common mts.Packet readers.
package mpegts

import (
	"bufio"
	"bytes"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/internal/bitio"
)

const (
	// PacketSize is the size of a bare MPEG-TS packet, sync byte included.
	PacketSize = 188
	// MaxPacketSize bounds the resync search window: 4 Blu-ray header bytes
	// + 188 packet bytes + slack for misalignment.
	MaxPacketSize = 204
	syncByte      = 0x47

	patPID = 0x0000

	// ProbePackets bounds how many TS packets we scan before giving up on
	// finding an IGS-typed elementary stream.
	ProbePackets = 2048

	// igsStreamType is the PMT stream_type that marks an IGS elementary
	// stream.
	igsStreamType = 0x91
)

// LooksLikeIGS reports whether b begins with the plain-IGS magic, meaning
// the input should bypass the TS demultiplexer entirely.
func LooksLikeIGS(b []byte) bool {
	return len(b) >= 2 && b[0] == 'I' && b[1] == 'G'
}

// Extract reads a Blu-ray transport stream from r and returns the
// concatenated IGS elementary-stream payload bytes, ready to hand to the
// raw segment framer.
func Extract(r io.Reader) ([]byte, error) {
	br := bufio.NewReaderSize(r, 8*1024)
	var out bytes.Buffer

	var patBuf []byte
	patPMTPids := map[uint16]uint16{} // program number -> PMT pid
	patParsed := false

	var pmtBuf []byte
	pmtPid := uint16(0)
	pmtParsed := false

	igsPid := uint16(0)
	igsFound := false

	packets := 0
	for {
		if !igsFound && packets >= ProbePackets {
			return nil, errs.New(errs.NoIgsStream, "mpegts: no IGS elementary stream found within %d packets", ProbePackets)
		}

		pkt, err := nextPacket(br)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		packets++

		h, payload, err := parseHeader(pkt)
		if err != nil {
			return nil, err
		}
		if !h.hasPayload || len(payload) == 0 {
			continue
		}

		switch {
		case h.pid == patPID && !patParsed:
			section, ok, err := accumulatePSI(&patBuf, h.payloadUnitStart, payload)
			if err != nil {
				return nil, err
			}
			if ok {
				if err := parsePAT(section, patPMTPids); err != nil {
					return nil, err
				}
				patParsed = true
				if pmtPid == 0 {
					pmtPid = firstPMTPid(patPMTPids)
				}
			}

		case patParsed && pmtPid != 0 && h.pid == pmtPid && !pmtParsed:
			section, ok, err := accumulatePSI(&pmtBuf, h.payloadUnitStart, payload)
			if err != nil {
				return nil, err
			}
			if ok {
				pid, found, err := parsePMT(section)
				if err != nil {
					return nil, err
				}
				pmtParsed = true
				if found {
					igsPid = pid
					igsFound = true
				}
			}

		case igsFound && h.pid == igsPid:
			if err := extractIGSPayload(&out, h.payloadUnitStart, payload); err != nil {
				return nil, err
			}
		}
	}

	if !igsFound {
		return nil, errs.New(errs.NoIgsStream, "mpegts: no IGS elementary stream found before end of file")
	}
	return out.Bytes(), nil
}

func firstPMTPid(m map[uint16]uint16) uint16 {
	for prog, pid := range m {
		if prog != 0 {
			return pid
		}
	}
	return 0
}

// nextPacket scans for the sync byte (skipping up to MaxPacketSize bytes)
// and returns the 188-byte packet starting at it. io.EOF with no bytes
// skipped means the stream ended cleanly between packets.
func nextPacket(r *bufio.Reader) ([]byte, error) {
	skipped := 0
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				if skipped == 0 {
					return nil, io.EOF
				}
				return nil, errs.New(errs.UnexpectedEof, "mpegts: eof while resyncing (skipped %d bytes)", skipped)
			}
			return nil, err
		}
		if b == syncByte {
			break
		}
		skipped++
		if skipped > MaxPacketSize {
			return nil, errs.New(errs.InvariantViolation, "mpegts: sync byte 0x47 not found within %d bytes", MaxPacketSize)
		}
	}
	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("mpegts: resynced to sync byte")
	}
	rest, err := bitio.ReadFull(r, PacketSize-1, true)
	if err != nil {
		return nil, err
	}
	pkt := make([]byte, PacketSize)
	pkt[0] = syncByte
	copy(pkt[1:], rest)
	return pkt, nil
}

type tsHeader struct {
	transportError     bool
	payloadUnitStart   bool
	transportPriority  bool
	pid                uint16
	scramblingControl  uint8
	hasAdaptationField bool
	hasPayload         bool
	continuityCounter  uint8
}

// parseHeader decodes the 4-byte TS header following the sync byte and
// returns the payload slice (after skipping any adaptation field).
func parseHeader(pkt []byte) (tsHeader, []byte, error) {
	if len(pkt) < 4 {
		return tsHeader{}, nil, errs.New(errs.UnexpectedEof, "mpegts: short packet")
	}
	b1, b2, b3 := pkt[1], pkt[2], pkt[3]
	h := tsHeader{
		transportError:     b1&0x80 != 0,
		payloadUnitStart:   b1&0x40 != 0,
		transportPriority:  b1&0x20 != 0,
		pid:                uint16(b1&0x1F)<<8 | uint16(b2),
		scramblingControl:  b3 >> 6,
		hasAdaptationField: b3&0x20 != 0,
		hasPayload:         b3&0x10 != 0,
		continuityCounter:  b3 & 0x0F,
	}
	offset := 4
	if h.hasAdaptationField {
		if len(pkt) < 5 {
			return h, nil, errs.New(errs.UnexpectedEof, "mpegts: truncated adaptation field")
		}
		afLen := int(pkt[4])
		offset = 5 + afLen
	}
	if offset > len(pkt) {
		return h, nil, nil
	}
	return h, pkt[offset:], nil
}

// accumulatePSI appends payload to *buf (resetting it, and skipping the
// pointer-field bytes, whenever payloadUnitStart is set) and reports whether
// a complete PSI section is now available, returning it.
func accumulatePSI(buf *[]byte, payloadUnitStart bool, payload []byte) ([]byte, bool, error) {
	if payloadUnitStart {
		if len(payload) < 1 {
			return nil, false, errs.New(errs.UnexpectedEof, "mpegts: empty PSI payload")
		}
		ptr := int(payload[0])
		if 1+ptr > len(payload) {
			return nil, false, errs.New(errs.UnexpectedEof, "mpegts: PSI pointer field overruns payload")
		}
		*buf = append([]byte{}, payload[1+ptr:]...)
	} else {
		if *buf == nil {
			// Continuation before we've ever seen a unit start; discard.
			return nil, false, nil
		}
		*buf = append(*buf, payload...)
	}
	if len(*buf) < 3 {
		return nil, false, nil
	}
	sectionLength := int(bitio.GetU16BE((*buf)[1:3]) & 0x0FFF)
	total := 3 + sectionLength
	if len(*buf) < total {
		return nil, false, nil
	}
	return (*buf)[:total], true, nil
}

// parsePAT decodes a PAT section as returned by accumulatePSI (its 3-byte
// table_id + section_length header is skipped here) into program->PMT-pid
// entries.
func parsePAT(section []byte, out map[uint16]uint16) error {
	if len(section) < 3+5+4 {
		return errs.New(errs.UnexpectedEof, "mpegts: PAT section too short")
	}
	body := section[3:]
	entries := body[5 : len(body)-4]
	for i := 0; i+4 <= len(entries); i += 4 {
		progNum := bitio.GetU16BE(entries[i : i+2])
		pid := bitio.GetU16BE(entries[i+2:i+4]) & 0x1FFF
		if progNum != 0 {
			out[progNum] = pid
		}
	}
	return nil
}

// parsePMT decodes a PMT section body and returns the elementary PID of the
// first stream with stream_type == 0x91 (IGS), if any.
func parsePMT(section []byte) (uint16, bool, error) {
	if len(section) < 3+9+4 {
		return 0, false, errs.New(errs.UnexpectedEof, "mpegts: PMT section too short")
	}
	body := section[3:]
	programInfoLength := int(bitio.GetU16BE(body[7:9]) & 0x0FFF)
	pos := 9 + programInfoLength
	if pos > len(body)-4 {
		return 0, false, errs.New(errs.UnexpectedEof, "mpegts: PMT program_info_length overruns section")
	}
	loop := body[pos : len(body)-4]
	i := 0
	for i+5 <= len(loop) {
		streamType := loop[i]
		elementaryPID := bitio.GetU16BE(loop[i+1:i+3]) & 0x1FFF
		esInfoLength := int(bitio.GetU16BE(loop[i+3:i+5]) & 0x0FFF)
		i += 5 + esInfoLength
		if streamType == igsStreamType {
			return elementaryPID, true, nil
		}
	}
	return 0, false, nil
}

// extractIGSPayload writes the synthetic IGS segment-header prefix (on a PES
// start) and the PES payload bytes (skipping the PES header) into out.
func extractIGSPayload(out *bytes.Buffer, payloadUnitStart bool, payload []byte) error {
	if !payloadUnitStart {
		out.Write(payload)
		return nil
	}

	out.WriteString("IG")
	out.Write(make([]byte, 8))

	if len(payload) < 9 {
		return errs.New(errs.UnexpectedEof, "mpegts: truncated PES header")
	}
	if payload[0] != 0x00 || payload[1] != 0x00 || payload[2] != 0x01 {
		return errs.New(errs.InvariantViolation, "mpegts: missing PES start code")
	}
	skip := int(payload[8]) + 9
	if skip > len(payload) {
		return errs.New(errs.UnexpectedEof, "mpegts: PES header length overruns payload")
	}
	out.Write(payload[skip:])
	return nil
}
