package imageprocessing

import "testing"

func TestGetScaledDimensions(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"within limits", 100, 50, 200, 200, 100, 50},
		{"no limits", 100, 50, 0, 0, 100, 50},
		{"width bound", 400, 200, 100, 0, 100, 50},
		{"height bound", 400, 200, 0, 50, 100, 50},
		{"tighter axis wins", 400, 200, 200, 50, 100, 50},
		{"never below one", 1000, 1, 10, 0, 10, 1},
		{"empty", 0, 0, 10, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := GetScaledDimensions(tt.srcW, tt.srcH, tt.maxW, tt.maxH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("GetScaledDimensions() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeToFit(t *testing.T) {
	g := uniformGrid(8, 4, warm)

	if got := ResizeToFit(g, 16, 16); got != g {
		t.Error("ResizeToFit() copied a grid that already fits")
	}

	small := ResizeToFit(g, 4, 0)
	if small.Width != 4 || small.Height != 2 {
		t.Fatalf("ResizeToFit() = %dx%d, want 4x2", small.Width, small.Height)
	}
	if err := small.Validate(); err != nil {
		t.Fatal(err)
	}
	// a uniform opaque image stays uniform under bilinear scaling, give or
	// take fixed-point rounding
	near := func(a, b uint8) bool { return a-b <= 1 || b-a <= 1 }
	for y := 0; y < small.Height; y++ {
		for x := 0; x < small.Width; x++ {
			got, _ := small.At(x, y)
			if !near(got.R, warm.R) || !near(got.G, warm.G) || !near(got.B, warm.B) || !near(got.A, warm.A) {
				t.Errorf("pixel (%d, %d) = %v, want about %v", x, y, got, warm)
			}
		}
	}
}
