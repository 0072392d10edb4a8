package imageprocessing

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// GetScaledDimensions returns the largest size that fits within
// maxWidth x maxHeight while preserving aspect ratio. A zero limit leaves
// that axis unconstrained. Images already within the limits keep their size.
func GetScaledDimensions(srcWidth, srcHeight, maxWidth, maxHeight int) (int, int) {
	if srcWidth == 0 || srcHeight == 0 {
		return srcWidth, srcHeight
	}

	scale := 1.0
	if maxWidth > 0 && srcWidth > maxWidth {
		scale = float64(maxWidth) / float64(srcWidth)
	}
	if maxHeight > 0 && srcHeight > maxHeight {
		if s := float64(maxHeight) / float64(srcHeight); s < scale {
			scale = s
		}
	}
	if scale == 1.0 {
		return srcWidth, srcHeight
	}

	newWidth := max(int(float64(srcWidth)*scale), 1)
	newHeight := max(int(float64(srcHeight)*scale), 1)
	return newWidth, newHeight
}

// ResizeToFit scales grid down to fit within maxWidth x maxHeight using
// bilinear interpolation. It returns grid itself when no scaling is needed.
func ResizeToFit(grid *PixelGrid, maxWidth, maxHeight int) *PixelGrid {
	w, h := GetScaledDimensions(grid.Width, grid.Height, maxWidth, maxHeight)
	if w == grid.Width && h == grid.Height {
		return grid
	}

	resized := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(resized, resized.Bounds(), grid.Image(), grid.Image().Bounds(), xdraw.Src, nil)
	return GridFromImage(resized)
}
