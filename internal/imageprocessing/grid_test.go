package imageprocessing

import (
	"image"
	"image/color"
	"testing"
)

func uniformGrid(w, h int, c color.NRGBA) *PixelGrid {
	g := NewPixelGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, c)
		}
	}
	return g
}

func TestPixelGridAccessors(t *testing.T) {
	g := NewPixelGrid(3, 2)
	c := color.NRGBA{R: 1, G: 2, B: 3, A: 4}

	if !g.Set(2, 1, c) {
		t.Fatal("Set(2, 1) reported out of bounds")
	}
	got, ok := g.At(2, 1)
	if !ok || got != c {
		t.Errorf("At(2, 1) = %v, %v; want %v, true", got, ok, c)
	}
	if i, _ := g.offset(2, 1); i != (1*3+2)*4 {
		t.Errorf("offset(2, 1) = %d, want %d", i, (1*3+2)*4)
	}

	outside := []image.Point{{-1, 0}, {0, -1}, {3, 0}, {0, 2}}
	for _, p := range outside {
		if _, ok := g.At(p.X, p.Y); ok {
			t.Errorf("At(%d, %d) reported in bounds", p.X, p.Y)
		}
		if g.Set(p.X, p.Y, c) {
			t.Errorf("Set(%d, %d) reported in bounds", p.X, p.Y)
		}
	}
}

func TestNewPixelGridPanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewPixelGrid(-1, 1) did not panic")
		}
	}()
	NewPixelGrid(-1, 1)
}

func TestPixelGridValidate(t *testing.T) {
	tests := []struct {
		name    string
		grid    *PixelGrid
		wantErr bool
	}{
		{"nil", nil, true},
		{"ok", NewPixelGrid(2, 2), false},
		{"empty", NewPixelGrid(0, 0), false},
		{"short buffer", &PixelGrid{Width: 2, Height: 2, Pix: make([]uint8, 15)}, true},
		{"long buffer", &PixelGrid{Width: 2, Height: 2, Pix: make([]uint8, 17)}, true},
		{"negative", &PixelGrid{Width: -2, Height: -2, Pix: make([]uint8, 16)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.grid.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGridFromImageSharesTightRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	g := GridFromImage(img)
	g.Set(1, 1, color.NRGBA{R: 9, A: 255})
	if img.NRGBAAt(1, 1).R != 9 {
		t.Error("grid does not share memory with a tightly packed image")
	}
	if g.Image().NRGBAAt(1, 1).R != 9 {
		t.Error("Image() does not view the grid's pixels")
	}
}

func TestGridFromImageCopiesSubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(2, 2, color.NRGBA{R: 7, G: 8, B: 9, A: 10})
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)

	g := GridFromImage(sub)
	if g.Width != 2 || g.Height != 2 {
		t.Fatalf("grid is %dx%d, want 2x2", g.Width, g.Height)
	}
	if got, _ := g.At(1, 1); got != (color.NRGBA{R: 7, G: 8, B: 9, A: 10}) {
		t.Errorf("At(1, 1) = %v, want sub-image pixel", got)
	}
	g.Set(1, 1, color.NRGBA{})
	if img.NRGBAAt(2, 2).R != 7 {
		t.Error("copied grid still aliases the parent image")
	}
}

func TestInterior(t *testing.T) {
	g := NewPixelGrid(4, 3)
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, false},
		{1, 0, true},
		{2, 1, true},
		{3, 1, false},
		{1, 2, false},
		{-1, 1, false},
	}
	for _, tt := range tests {
		if got := g.Interior(tt.x, tt.y); got != tt.want {
			t.Errorf("Interior(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestClone(t *testing.T) {
	g := uniformGrid(2, 2, color.NRGBA{R: 5, A: 255})
	c := g.Clone()
	c.Set(0, 0, color.NRGBA{})
	if got, _ := g.At(0, 0); got.R != 5 {
		t.Error("Clone shares pixel memory with the original")
	}
}
