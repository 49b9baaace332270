package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAvatar_ResizesToSquareWebP(t *testing.T) {
	out, err := Avatar(bytes.NewReader(pngOf(t, 400, 200)), 64)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
}

func TestAvatar_RejectsGarbage(t *testing.T) {
	_, err := Avatar(strings.NewReader("definitely not an image"), 64)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestAvatar_RejectsOversizedUpload(t *testing.T) {
	_, err := Avatar(bytes.NewReader(make([]byte, MaxUploadBytes+10)), 64)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestCenterSquare(t *testing.T) {
	assert.Equal(t, image.Rect(100, 0, 300, 200), centerSquare(image.Rect(0, 0, 400, 200)))
	assert.Equal(t, image.Rect(0, 50, 100, 150), centerSquare(image.Rect(0, 0, 100, 200)))
}
