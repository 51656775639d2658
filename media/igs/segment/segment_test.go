package segment

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugVanisher/igsmenu/common/errs"
)

func encodeSegment(typ uint8, pts, dts uint32, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("IG")
	buf.Write([]byte{byte(pts >> 24), byte(pts >> 16), byte(pts >> 8), byte(pts)})
	buf.Write([]byte{byte(dts >> 24), byte(dts >> 16), byte(dts >> 8), byte(dts)})
	buf.WriteByte(typ)
	length := len(payload)
	buf.Write([]byte{byte(length >> 8), byte(length)})
	buf.Write(payload)
	return buf.Bytes()
}

func TestReader_SingleSegment(t *testing.T) {
	raw := encodeSegment(TypePalette, 100, 90, []byte{0xAA, 0xBB})
	r := NewReader(bytes.NewReader(raw))

	seg, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, seg)
	require.Equal(t, uint8(TypePalette), seg.Type)
	require.Equal(t, uint32(100), seg.PTS)
	require.Equal(t, uint32(90), seg.DTS)
	require.Equal(t, []byte{0xAA, 0xBB}, seg.Payload)

	seg, err = r.Next()
	require.NoError(t, err)
	require.Nil(t, seg)
}

func TestReadAll_MultipleSegments(t *testing.T) {
	var raw []byte
	raw = append(raw, encodeSegment(TypePalette, 1, 1, []byte{0x01})...)
	raw = append(raw, encodeSegment(TypePicture, 2, 2, []byte{0x02, 0x03})...)
	raw = append(raw, encodeSegment(TypeDisplay, 3, 3, nil)...)

	segs, err := ReadAll(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, segs, 3)
	require.Equal(t, uint8(TypePalette), segs[0].Type)
	require.Equal(t, uint8(TypePicture), segs[1].Type)
	require.Equal(t, uint8(TypeDisplay), segs[2].Type)
	require.Empty(t, segs[2].Payload)
}

func TestReader_BadMagicFails(t *testing.T) {
	raw := []byte("XG\x00\x00\x00\x00\x00\x00\x00\x00")
	r := NewReader(bytes.NewReader(raw))
	_, err := r.Next()
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.InvalidSegmentHeader))
}

func TestReader_CleanEOFAtStart(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	seg, err := r.Next()
	require.NoError(t, err)
	require.Nil(t, seg)
}

func TestReader_ShortPayloadFails(t *testing.T) {
	full := encodeSegment(TypePalette, 1, 1, []byte{0xAA, 0xBB, 0xCC})
	truncated := full[:len(full)-1]
	r := NewReader(bytes.NewReader(truncated))
	_, err := r.Next()
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.UnexpectedEof))
}
