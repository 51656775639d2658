package model

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugVanisher/igsmenu/media/igs/segment"
)

func encodeSeg(typ uint8, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("IG")
	buf.Write([]byte{0, 0, 0, 0}) // pts
	buf.Write([]byte{0, 0, 0, 0}) // dts
	buf.WriteByte(typ)
	length := len(payload)
	buf.Write([]byte{byte(length >> 8), byte(length)})
	buf.Write(payload)
	return buf.Bytes()
}

func palettePayload() []byte {
	return []byte{
		0x00, 0x00, // version/unused
		0x00, 235, 128, 128, 255, // id=0
	}
}

func picturePayload() []byte {
	return []byte{
		0x00, 0x01, // id = 1
		0x00,       // version
		0x80,       // seq_desc: first
		0x00, 0x00, 0x05, // rle_bitmap_len wire value = 1 (rle bytes) + 4
		0x00, 0x01, // width = 1
		0x00, 0x01, // height = 1
		0x01, // RLE: single literal pixel, index 1
	}
}

// buttonPayload builds a button segment with one page, one BOG, and two
// buttons whose left/right navigation forms a two-node cycle.
func buttonPayload() []byte {
	return []byte{
		0x00, 0x02, 0x00, 0x02, // width, height
		0x10,       // framerate_id
		0x00, 0x01, // composition_number
		0x00, // composition_state
		0x80, // seq_descriptor
		0x00, 0x00, 0x00, // data_len
		0x80,             // model_flags: skip composition/selection timeouts
		0x00, 0x00, 0x00, // user_timeout_duration
		0x01, // page_count = 1

		0x01, // page id
		0x00, // reserved
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // UO
		0x00, 0x00, // in_effects
		0x00, 0x00, // out_effects
		0x01,       // frame_rate_divider
		0x00, 0x01, // def_button = 1
		0xFF, 0xFF, // def_activated = none
		0x00, // palette_id
		0x01, // bog_count = 1

		0x00, 0x01, // bog def_button = 1
		0x02, // button_count = 2

		// button 1
		0x00, 0x01, // id
		0x00, 0x00, // version
		0x00,       // flags
		0x00, 0x00, // x
		0x00, 0x00, // y
		0xFF, 0xFF, // nav up
		0xFF, 0xFF, // nav down
		0x00, 0x02, // nav left -> button 2
		0xFF, 0xFF, // nav right
		0x00, 0x01, // pic_start_normal -> picture 1
		0xFF, 0xFF, // pic_stop_normal
		0x00, 0x00, // flags_normal
		0xFF, 0xFF, // pic_start_selected
		0xFF, 0xFF, // pic_stop_selected
		0x00, 0x00, // flags_selected
		0xFF, 0xFF, // pic_start_activated
		0xFF, 0xFF, // pic_stop_activated
		0x00, 0x00, // command_count

		// button 2
		0x00, 0x02, // id
		0x00, 0x00, // version
		0x00,       // flags
		0x00, 0x00, // x
		0x00, 0x00, // y
		0xFF, 0xFF, // nav up
		0xFF, 0xFF, // nav down
		0xFF, 0xFF, // nav left
		0x00, 0x01, // nav right -> button 1 (closes the cycle)
		0x00, 0x01, // pic_start_normal -> picture 1
		0xFF, 0xFF, // pic_stop_normal
		0x00, 0x00, // flags_normal
		0xFF, 0xFF, // pic_start_selected
		0xFF, 0xFF, // pic_stop_selected
		0x00, 0x00, // flags_selected
		0xFF, 0xFF, // pic_start_activated
		0xFF, 0xFF, // pic_stop_activated
		0x00, 0x00, // command_count
	}
}

func fullStream() []byte {
	var raw []byte
	raw = append(raw, encodeSeg(segment.TypePalette, palettePayload())...)
	raw = append(raw, encodeSeg(segment.TypePicture, picturePayload())...)
	raw = append(raw, encodeSeg(segment.TypeButton, buttonPayload())...)
	raw = append(raw, encodeSeg(segment.TypeDisplay, nil)...)
	return raw
}

func TestParse_NavigationCycleResolves(t *testing.T) {
	menu, err := Parse(bytes.NewReader(fullStream()))
	require.NoError(t, err)

	require.Len(t, menu.Pages, 1)
	page := menu.Pages[0]
	require.NotNil(t, page.DefButton)
	require.Equal(t, uint16(1), page.DefButton.ID)

	btn1 := page.ButtonByID(1)
	btn2 := page.ButtonByID(2)
	require.NotNil(t, btn1)
	require.NotNil(t, btn2)

	// The navigation graph is cyclic: button 1's left neighbor is button 2,
	// and button 2's right neighbor points back to button 1.
	require.True(t, btn1.Navigation.Left == btn2)
	require.True(t, btn2.Navigation.Right == btn1)
	require.Nil(t, btn1.Navigation.Up)

	require.NotNil(t, btn1.States.Normal.Start)
	require.Equal(t, uint16(1), btn1.States.Normal.Start.ID)
	require.Equal(t, 1, btn1.States.Normal.Start.Width)
	require.Equal(t, []byte{1}, btn1.States.Normal.Start.Data)
}

func TestParse_NoButtonSegmentFails(t *testing.T) {
	raw := encodeSeg(segment.TypePalette, palettePayload())
	_, err := Parse(bytes.NewReader(raw))
	require.Error(t, err)
}

func TestParse_DuplicateButtonSegmentFails(t *testing.T) {
	var raw []byte
	raw = append(raw, encodeSeg(segment.TypeButton, buttonPayload())...)
	raw = append(raw, encodeSeg(segment.TypeButton, buttonPayload())...)
	_, err := Parse(bytes.NewReader(raw))
	require.Error(t, err)
}
