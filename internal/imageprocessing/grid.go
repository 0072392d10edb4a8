package imageprocessing

import (
	"fmt"
	"image"
	"image/color"
)

const bytesPerPixel = 4

// PixelGrid is a row-major buffer of 8-bit non-premultiplied RGBA pixels.
// The transform borrows it and mutates Pix in place.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelGrid allocates a zeroed grid. It panics on negative dimensions.
func NewPixelGrid(width, height int) *PixelGrid {
	if width < 0 || height < 0 {
		panic("imageprocessing: negative grid dimensions")
	}
	return &PixelGrid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*bytesPerPixel),
	}
}

// GridFromImage wraps img's pixels. The grid shares memory with img when its
// rows are tightly packed and copies them otherwise.
func GridFromImage(img *image.NRGBA) *PixelGrid {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	rowLen := w * bytesPerPixel
	if img.Stride == rowLen && len(img.Pix) >= rowLen*h {
		return &PixelGrid{Width: w, Height: h, Pix: img.Pix[:rowLen*h]}
	}

	g := NewPixelGrid(w, h)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		copy(g.Pix[y*rowLen:], src)
	}
	return g
}

// Image returns an *image.NRGBA view over the grid's pixels.
func (g *PixelGrid) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    g.Pix,
		Stride: g.Width * bytesPerPixel,
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}
}

// Validate checks that the dimensions and buffer length agree.
func (g *PixelGrid) Validate() error {
	if g == nil {
		return fmt.Errorf("pixel grid is nil")
	}
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("invalid grid dimensions %dx%d", g.Width, g.Height)
	}
	if want := g.Width * g.Height * bytesPerPixel; len(g.Pix) != want {
		return fmt.Errorf("pixel buffer holds %d bytes, want %d for %dx%d", len(g.Pix), want, g.Width, g.Height)
	}
	return nil
}

// offset returns the index of the red channel of (x, y).
func (g *PixelGrid) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0, false
	}
	return (y*g.Width + x) * bytesPerPixel, true
}

// At returns the pixel at (x, y), or false when out of bounds.
func (g *PixelGrid) At(x, y int) (color.NRGBA, bool) {
	i, ok := g.offset(x, y)
	if !ok {
		return color.NRGBA{}, false
	}
	p := g.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}, true
}

// Set writes the pixel at (x, y). It reports false when out of bounds.
func (g *PixelGrid) Set(x, y int, c color.NRGBA) bool {
	i, ok := g.offset(x, y)
	if !ok {
		return false
	}
	p := g.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	return true
}

// Interior reports whether (x, y) is visited by the diffusion scan: every
// column but the first and last, every row but the last.
func (g *PixelGrid) Interior(x, y int) bool {
	return x >= 1 && x <= g.Width-2 && y >= 0 && y <= g.Height-2
}

// Clone returns a deep copy.
func (g *PixelGrid) Clone() *PixelGrid {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &PixelGrid{Width: g.Width, Height: g.Height, Pix: pix}
}
