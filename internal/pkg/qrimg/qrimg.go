// Package qrimg renders scannable verification code images: a QR code at
// low error correction with a quiet zone, styled colors and an optional
// centered logo overlay.
package qrimg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// Size is the edge length in pixels of generated code images.
const Size = 512

// Style carries the visual parameters applied to a generated code image.
type Style struct {
	Foreground color.Color
	Background color.Color
	// LogoPath is the filesystem path of a logo composited at the center of
	// the image. Empty means no logo.
	LogoPath string
}

// DefaultStyle returns black-on-white with no logo.
func DefaultStyle() Style {
	return Style{
		Foreground: color.Black,
		Background: color.White,
	}
}

// ParseHexColor parses a "#RRGGBB" color string.
func ParseHexColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// Build encodes content into a styled code image. The logo, when configured,
// is resized to a quarter of the image's linear dimension with Lanczos
// resampling and composited at the center. An unreadable logo file fails the
// whole build; nothing is returned in that case.
func Build(content string, style Style) (image.Image, error) {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content: %w", err)
	}
	if style.Foreground != nil {
		qr.ForegroundColor = style.Foreground
	}
	if style.Background != nil {
		qr.BackgroundColor = style.Background
	}

	img := qr.Image(Size)
	if style.LogoPath == "" {
		return img, nil
	}

	logo, err := imaging.Open(style.LogoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open logo %s: %w", style.LogoPath, err)
	}

	bounds := img.Bounds()
	logo = imaging.Resize(logo, bounds.Dx()/4, bounds.Dy()/4, imaging.Lanczos)
	return imaging.OverlayCenter(img, logo, 1.0), nil
}

// EncodePNG serializes an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
