package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugVanisher/igsmenu/common/errs"
)

func TestParsePalette_MinimalRoundTrip(t *testing.T) {
	payload := []byte{
		0x00, 0x00, // skipped version/unused bytes
		0x00, 235, 128, 128, 255, // id=0, y=235, cr=128, cb=128, alpha=255
		0x01, 16, 128, 128, 0, // id=1, y=16, cr=128, cb=128, alpha=0
	}
	pal, err := ParsePalette(payload)
	require.NoError(t, err)
	require.Len(t, pal.Entries, 2)
	require.Equal(t, PaletteEntry{ColorID: 0, Y: 235, Cr: 128, Cb: 128, Alpha: 255}, pal.Entries[0])
	require.Equal(t, PaletteEntry{ColorID: 1, Y: 16, Cr: 128, Cb: 128, Alpha: 0}, pal.Entries[1])
}

func TestParsePalette_DuplicateColorIDFails(t *testing.T) {
	payload := []byte{
		0x00, 0x00,
		0x00, 1, 2, 3, 4,
		0x00, 5, 6, 7, 8,
	}
	_, err := ParsePalette(payload)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.InvariantViolation))
}

func TestParsePalette_Empty(t *testing.T) {
	pal, err := ParsePalette([]byte{0x00, 0x00})
	require.NoError(t, err)
	require.Empty(t, pal.Entries)
}
