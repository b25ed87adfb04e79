package qrimg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}, c)

	for _, bad := range []string{"", "#FFF", "FF8000", "#GGGGGG", "#FF80001"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestBuildDimensions(t *testing.T) {
	img, err := Build("https://example.com/certificate/student-qr-info/1/", DefaultStyle())
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, Size, bounds.Dx())
	assert.Equal(t, Size, bounds.Dy())
}

func TestBuildIsDeterministic(t *testing.T) {
	const content = "https://example.com/certificate/student-qr-info/42/"

	first, err := Build(content, DefaultStyle())
	require.NoError(t, err)
	second, err := Build(content, DefaultStyle())
	require.NoError(t, err)

	firstPNG, err := EncodePNG(first)
	require.NoError(t, err)
	secondPNG, err := EncodePNG(second)
	require.NoError(t, err)

	assert.Equal(t, firstPNG, secondPNG)
}

func TestBuildCompositesLogoAtCenter(t *testing.T) {
	logoPath := writeLogo(t, color.RGBA{R: 0xFF, A: 0xFF})

	style := DefaultStyle()
	style.LogoPath = logoPath

	img, err := Build("https://example.com/certificate/student-qr-info/3/", style)
	require.NoError(t, err)

	r, g, b, _ := img.At(Size/2, Size/2).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
}

func TestBuildFailsOnUnreadableLogo(t *testing.T) {
	style := DefaultStyle()
	style.LogoPath = filepath.Join(t.TempDir(), "missing.png")

	_, err := Build("https://example.com/certificate/student-qr-info/3/", style)
	assert.Error(t, err)
}

func TestEncodePNGRoundTrip(t *testing.T) {
	img, err := Build("https://example.com/certificate/student-qr-info/9/", DefaultStyle())
	require.NoError(t, err)

	data, err := EncodePNG(img)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Size, decoded.Bounds().Dx())
}

func writeLogo(t *testing.T, fill color.RGBA) string {
	t.Helper()

	logo := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			logo.SetRGBA(x, y, fill)
		}
	}

	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, logo))
	return path
}
