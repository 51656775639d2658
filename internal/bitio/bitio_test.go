package bitio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugVanisher/igsmenu/common/errs"
)

func TestReadFull_CleanEOFBeforeAnyByte(t *testing.T) {
	b, err := ReadFull(bytes.NewReader(nil), 4, false)
	require.NoError(t, err)
	require.Empty(t, b)
}

func TestReadFull_FailOnNoData(t *testing.T) {
	_, err := ReadFull(bytes.NewReader(nil), 4, true)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.UnexpectedEof))
}

func TestReadFull_ShortReadAlwaysFails(t *testing.T) {
	_, err := ReadFull(bytes.NewReader([]byte{1, 2}), 4, false)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.UnexpectedEof))
}

func TestReadFull_ZeroLengthAlwaysSucceeds(t *testing.T) {
	b, err := ReadFull(bytes.NewReader(nil), 0, true)
	require.NoError(t, err)
	require.Equal(t, []byte{}, b)
}

func TestReaderTryReadN(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xAB, 0xCD}))
	b, err := r.TryReadN(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAB, 0xCD}, b)

	b, err = r.TryReadN(2)
	require.NoError(t, err)
	require.Nil(t, b)
}

func TestBigEndianHelpers(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}))

	v16, err := r.U16BE()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0102), v16)

	v24, err := r.U24BE()
	require.NoError(t, err)
	require.Equal(t, uint32(0x030405), v24)

	v24b := GetU24BE([]byte{0x06, 0x07, 0x08})
	require.Equal(t, uint32(0x060708), v24b)
}

func TestU40BERoundTrip(t *testing.T) {
	b := []byte{0x01, 0x00, 0x00, 0x00, 0x02}
	require.Equal(t, uint64(0x0100000002), GetU40BE(b))
}

func TestPutU16BE(t *testing.T) {
	b := make([]byte, 2)
	PutU16BE(b, 0xBEEF)
	require.Equal(t, []byte{0xBE, 0xEF}, b)
}
