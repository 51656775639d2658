package render

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	rimage "github.com/rmamba/image"
)

func TestMockSink_RecordsEncodeCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	img := rimage.NewRGBA64(rimage.Rect(0, 0, 1, 1))
	mock := NewMockSink(ctrl)
	mock.EXPECT().Encode(gomock.Any(), img).Return(nil)

	var buf bytes.Buffer
	require.NoError(t, mock.Encode(&buf, img))
}

func TestMockSink_PropagatesEncodeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	img := rimage.NewRGBA64(rimage.Rect(0, 0, 1, 1))
	boom := errors.New("boom")
	mock := NewMockSink(ctrl)
	mock.EXPECT().Encode(gomock.Any(), gomock.Any()).Return(boom)

	err := mock.Encode(io.Discard, img)
	require.Equal(t, boom, err)
}

func TestPNGSink_EncodesWithoutError(t *testing.T) {
	img := rimage.NewRGBA64(rimage.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, PNGSink{}.Encode(&buf, img))
	require.NotEmpty(t, buf.Bytes())
}
