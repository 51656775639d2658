package igs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugVanisher/igsmenu/media/igs/segment"
)

func encodeSeg(typ uint8, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("IG")
	buf.Write([]byte{0, 0, 0, 0})
	buf.Write([]byte{0, 0, 0, 0})
	buf.WriteByte(typ)
	length := len(payload)
	buf.Write([]byte{byte(length >> 8), byte(length)})
	buf.Write(payload)
	return buf.Bytes()
}

func minimalButtonPayload() []byte {
	return []byte{
		0x00, 0x01, 0x00, 0x01, // width, height
		0x00,       // framerate_id
		0x00, 0x00, // composition_number
		0x00,             // composition_state
		0x80,             // seq_descriptor
		0x00, 0x00, 0x00, // data_len
		0x80,             // model_flags: skip timeouts
		0x00, 0x00, 0x00, // user_timeout_duration
		0x00, // page_count = 0
	}
}

func TestLoad_PlainIGSStream(t *testing.T) {
	raw := encodeSeg(segment.TypeButton, minimalButtonPayload())
	menu, err := Load(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 1, menu.Width)
	require.Equal(t, 1, menu.Height)
	require.Empty(t, menu.Pages)
}

func TestLoad_ShortInputIsNotMistakenForPlainIGS(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte{0x47}))
	require.Error(t, err)
}
