package imageprocessing

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestEncodePNGDecodesBack(t *testing.T) {
	src := translucentNRGBA(5, 3)
	grid := GridFromImage(src)

	for _, level := range []int{-1, 0, 9} {
		var buf bytes.Buffer
		if err := EncodePNG(&buf, grid, level); err != nil {
			t.Fatalf("EncodePNG(level=%d) error = %v", level, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), pngSignature) {
			t.Fatal("output does not start with the PNG signature")
		}

		cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("DecodeConfig() error = %v", err)
		}
		if cfg.Width != 5 || cfg.Height != 3 {
			t.Errorf("decoded size %dx%d, want 5x3", cfg.Width, cfg.Height)
		}

		img, err := png.Decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("png.Decode() error = %v", err)
		}
		nrgba, ok := img.(*image.NRGBA)
		if !ok {
			t.Fatalf("decoded %T, want *image.NRGBA", img)
		}
		if !bytes.Equal(nrgba.Pix, src.Pix) {
			t.Errorf("level %d: pixels changed through encode/decode", level)
		}
	}
}

func TestEncodePNGRejectsBadGrids(t *testing.T) {
	tests := []struct {
		name string
		grid *PixelGrid
	}{
		{"size mismatch", &PixelGrid{Width: 2, Height: 2, Pix: make([]uint8, 12)}},
		{"empty", NewPixelGrid(0, 3)},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodePNG(&buf, tt.grid, 9); err == nil {
				t.Error("EncodePNG() succeeded, want error")
			}
			if buf.Len() != 0 {
				t.Errorf("EncodePNG() wrote %d bytes on failure", buf.Len())
			}
		})
	}
}

func TestEncodePNGRejectsBadLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, NewPixelGrid(1, 1), 42); err == nil {
		t.Error("EncodePNG() accepted compression level 42")
	}
}
