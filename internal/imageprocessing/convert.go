package imageprocessing

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Decode reads an image from r into a PixelGrid.
//
// In strict mode only 8-bit RGBA PNG is accepted and anything else yields a
// FormatUnsupportedError. Otherwise any registered format is converted to
// 8-bit non-premultiplied RGBA. source names the input in errors.
func Decode(r io.Reader, source string, strict bool) (*PixelGrid, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", &InputError{Source: source, Err: err}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &InputError{Source: source, Err: err}
	}
	if strict && (format != "png" || cfg.ColorModel != color.NRGBAModel) {
		return nil, format, &FormatUnsupportedError{Format: format, Model: colorModelName(cfg.ColorModel)}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, &InputError{Source: source, Err: err}
	}

	return GridFromImage(ToNRGBA(img)), format, nil
}

// ToNRGBA converts any image to an origin-anchored *image.NRGBA. Images that
// already are one are returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}

	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
	return dst
}

func colorModelName(m color.Model) string {
	switch m {
	case color.NRGBAModel:
		return "8-bit RGBA"
	case color.RGBAModel:
		return "8-bit RGB"
	case color.NRGBA64Model:
		return "16-bit RGBA"
	case color.RGBA64Model:
		return "16-bit RGB"
	case color.GrayModel:
		return "8-bit gray"
	case color.Gray16Model:
		return "16-bit gray"
	case color.YCbCrModel:
		return "YCbCr"
	case color.CMYKModel:
		return "CMYK"
	}
	if p, ok := m.(color.Palette); ok {
		return fmt.Sprintf("paletted (%d colors)", len(p))
	}
	return fmt.Sprintf("%T", m)
}
