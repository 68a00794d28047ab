package avatar_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"accountd/internal/app/avatar"
)

func testImage(t *testing.T, width, height int) image.Image {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizePNG(t *testing.T) {
	data := encodePNG(t, testImage(t, 400, 300))

	out, err := avatar.Normalize(data)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, avatar.Size, cfg.Width)
	require.Equal(t, avatar.Size, cfg.Height)
}

func TestNormalizeJPEGBecomesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(t, 120, 500), nil))

	out, err := avatar.Normalize(buf.Bytes())
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, avatar.Size, cfg.Width)
	require.Equal(t, avatar.Size, cfg.Height)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := avatar.Normalize([]byte("definitely not an image"))
	require.ErrorIs(t, err, avatar.ErrNotAnImage)
}

func TestAllowedExtension(t *testing.T) {
	require.True(t, avatar.AllowedExtension("me.png"))
	require.True(t, avatar.AllowedExtension("me.jpg"))
	require.True(t, avatar.AllowedExtension("ME.JPEG"))
	require.False(t, avatar.AllowedExtension("me.gif"))
	require.False(t, avatar.AllowedExtension("me.txt"))
	require.False(t, avatar.AllowedExtension("me"))
}
