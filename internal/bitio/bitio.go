// Package bitio provides the EOF-aware fixed-width reads and big-endian
// decoding primitives every IGS/TS parser in this module is built on: a
// small layer, importing only io and common/errs, so the rest of the pipeline never has to
// think about io.Reader short-read semantics.
package bitio

import (
	"io"

	"github.com/bugVanisher/igsmenu/common/errs"
)

// ReadFull reads exactly n bytes from r.
//
// If the stream yields zero bytes at all on this call (a clean EOF before
// any byte is produced), ReadFull returns an empty, non-nil slice when
// failOnNoData is false, or errs.UnexpectedEof when it is true. Once at
// least one byte has been read, a subsequent short read always fails with
// errs.UnexpectedEof regardless of failOnNoData. Reading n == 0 always
// succeeds with an empty slice.
func ReadFull(r io.Reader, n int, failOnNoData bool) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	total := 0
	for total < n {
		nr, err := r.Read(buf[total:])
		total += nr
		if err != nil && total < n {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				if total == 0 {
					if failOnNoData {
						return nil, errs.New(errs.UnexpectedEof, "bitio: unexpected eof reading %d bytes", n)
					}
					return []byte{}, nil
				}
				return nil, errs.New(errs.UnexpectedEof, "bitio: short read %d/%d bytes", total, n)
			}
			return nil, err
		}
	}
	return buf[:total], nil
}

// Reader wraps an io.Reader with the big-endian fixed-width helpers used to
// decode IGS and TS/PSI/PES headers. All multi-byte integers in both formats
// are big-endian.
type Reader struct {
	r io.Reader
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadN reads exactly n bytes, always failing on short or empty reads.
func (br *Reader) ReadN(n int) ([]byte, error) {
	return ReadFull(br.r, n, true)
}

// TryReadN reads exactly n bytes, returning (nil, nil) on a clean EOF before
// any byte of this call is produced. Used at segment/packet boundaries where
// EOF cleanly terminates iteration rather than signalling an error.
func (br *Reader) TryReadN(n int) ([]byte, error) {
	b, err := ReadFull(br.r, n, false)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	return b, nil
}

// U8 reads one byte.
func (br *Reader) U8() (uint8, error) {
	b, err := br.ReadN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16BE reads a big-endian uint16.
func (br *Reader) U16BE() (uint16, error) {
	b, err := br.ReadN(2)
	if err != nil {
		return 0, err
	}
	return GetU16BE(b), nil
}

// U24BE reads a big-endian 24-bit unsigned integer into a uint32.
func (br *Reader) U24BE() (uint32, error) {
	b, err := br.ReadN(3)
	if err != nil {
		return 0, err
	}
	return GetU24BE(b), nil
}

// U32BE reads a big-endian uint32.
func (br *Reader) U32BE() (uint32, error) {
	b, err := br.ReadN(4)
	if err != nil {
		return 0, err
	}
	return GetU32BE(b), nil
}

// U40BE reads a big-endian 40-bit unsigned integer into a uint64, the width
// IGS uses for composition/selection timeout PTS fields.
func (br *Reader) U40BE() (uint64, error) {
	b, err := br.ReadN(5)
	if err != nil {
		return 0, err
	}
	return GetU40BE(b), nil
}

// U64BE reads a big-endian uint64.
func (br *Reader) U64BE() (uint64, error) {
	b, err := br.ReadN(8)
	if err != nil {
		return 0, err
	}
	return GetU64BE(b), nil
}

// GetU16BE decodes a big-endian uint16 from the first 2 bytes of b.
func GetU16BE(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

// GetU24BE decodes a big-endian 24-bit unsigned integer from the first 3
// bytes of b.
func GetU24BE(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// GetU32BE decodes a big-endian uint32 from the first 4 bytes of b.
func GetU32BE(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// GetU40BE decodes a big-endian 40-bit unsigned integer from the first 5
// bytes of b.
func GetU40BE(b []byte) uint64 {
	return uint64(b[0])<<32 | uint64(GetU32BE(b[1:5]))
}

// GetU64BE decodes a big-endian uint64 from the first 8 bytes of b.
func GetU64BE(b []byte) uint64 {
	return uint64(GetU32BE(b[0:4]))<<32 | uint64(GetU32BE(b[4:8]))
}

// PutU16BE encodes v big-endian into the first 2 bytes of b.
func PutU16BE(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

// PutU32BE encodes v big-endian into the first 4 bytes of b.
func PutU32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
