package picture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/media/igs/parser"
)

func TestReassembler_SingleSegment(t *testing.T) {
	var r Reassembler
	ps := parser.PictureSegment{
		ID: 1, Version: 0, First: true,
		Width: 2, Height: 1, RLEBitmapLen: 2,
		RLEData: []byte{0x05, 0x06},
	}
	dec, err := r.Feed(ps)
	require.NoError(t, err)
	require.NotNil(t, dec)
	require.Equal(t, []byte{5, 6}, dec.Data)
}

func TestReassembler_MultiSegment(t *testing.T) {
	var r Reassembler
	first := parser.PictureSegment{
		ID: 2, First: true, Width: 2, Height: 1, RLEBitmapLen: 2,
		RLEData: []byte{0x05},
	}
	dec, err := r.Feed(first)
	require.NoError(t, err)
	require.Nil(t, dec)

	cont := parser.PictureSegment{ID: 2, First: false, RLEData: []byte{0x06}}
	dec, err = r.Feed(cont)
	require.NoError(t, err)
	require.NotNil(t, dec)
	require.Equal(t, []byte{5, 6}, dec.Data)
}

func TestReassembler_NewFirstWhileOpenFails(t *testing.T) {
	var r Reassembler
	first := parser.PictureSegment{ID: 1, First: true, Width: 4, Height: 1, RLEBitmapLen: 4, RLEData: []byte{1}}
	_, err := r.Feed(first)
	require.NoError(t, err)

	other := parser.PictureSegment{ID: 2, First: true, Width: 1, Height: 1, RLEBitmapLen: 1, RLEData: []byte{2}}
	_, err = r.Feed(other)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.InvariantViolation))
}

func TestReassembler_ContinuationWithNothingOpenFails(t *testing.T) {
	var r Reassembler
	cont := parser.PictureSegment{First: false, RLEData: []byte{1}}
	_, err := r.Feed(cont)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.InvariantViolation))
}

func TestReassembler_TooLongFails(t *testing.T) {
	var r Reassembler
	first := parser.PictureSegment{ID: 1, First: true, Width: 1, Height: 1, RLEBitmapLen: 1, RLEData: []byte{1, 2}}
	_, err := r.Feed(first)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.PictureTooLong))
}

func TestReassembler_FlushWithNothingPending(t *testing.T) {
	var r Reassembler
	dec, err := r.Flush()
	require.NoError(t, err)
	require.Nil(t, dec)
}
