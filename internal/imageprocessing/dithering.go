package imageprocessing

import (
	"fmt"
	"math"
	"strings"

	"github.com/makeworld-the-better-one/dither/v2"
)

// SaturationPolicy decides what happens when diffused error pushes a
// channel outside [0,255].
type SaturationPolicy int

const (
	// SaturationClamp clamps the corrected channel to [0,255].
	SaturationClamp SaturationPolicy = iota + 1
	// SaturationRescale narrows the sum to 16 bits and, when it exceeds 255,
	// replaces it with round(sum/255). Negative sums wrap first, so this is
	// not monotonic.
	SaturationRescale
)

func (p SaturationPolicy) String() string {
	switch p {
	case SaturationClamp:
		return "clamp"
	case SaturationRescale:
		return "rescale"
	default:
		return fmt.Sprintf("SaturationPolicy(%d)", int(p))
	}
}

// ParseSaturationPolicy parses "clamp" or "rescale".
func ParseSaturationPolicy(s string) (SaturationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clamp":
		return SaturationClamp, nil
	case "rescale":
		return SaturationRescale, nil
	}
	return 0, fmt.Errorf("unknown saturation policy %q", s)
}

// BoundaryPolicy decides whether pixels outside the scanned interior receive
// diffused error. They are never quantized either way.
type BoundaryPolicy int

const (
	// BoundaryPreserve drops error aimed at the first or last column or the
	// last row, leaving those pixels untouched.
	BoundaryPreserve BoundaryPolicy = iota + 1
	// BoundaryPropagate writes error into border pixels as well.
	BoundaryPropagate
)

func (p BoundaryPolicy) String() string {
	switch p {
	case BoundaryPreserve:
		return "preserve"
	case BoundaryPropagate:
		return "propagate"
	default:
		return fmt.Sprintf("BoundaryPolicy(%d)", int(p))
	}
}

// ParseBoundaryPolicy parses "preserve" or "propagate".
func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preserve":
		return BoundaryPreserve, nil
	case "propagate":
		return BoundaryPropagate, nil
	}
	return 0, fmt.Errorf("unknown boundary policy %q", s)
}

// DiffusionOptions selects the edge-case policies of Diffuse. Both fields
// must be set explicitly; the zero value is rejected.
type DiffusionOptions struct {
	Saturation SaturationPolicy
	Boundary   BoundaryPolicy
}

// DefaultDiffusionOptions clamps and leaves the border untouched.
func DefaultDiffusionOptions() DiffusionOptions {
	return DiffusionOptions{
		Saturation: SaturationClamp,
		Boundary:   BoundaryPreserve,
	}
}

func (o DiffusionOptions) validate() error {
	switch o.Saturation {
	case SaturationClamp, SaturationRescale:
	default:
		return fmt.Errorf("saturation policy not set: %v", o.Saturation)
	}
	switch o.Boundary {
	case BoundaryPreserve, BoundaryPropagate:
	default:
		return fmt.Errorf("boundary policy not set: %v", o.Boundary)
	}
	return nil
}

// kernelScale is the divisor every tap weight is expressed over.
const kernelScale = 16

// tap is one neighbor receiving weight/kernelScale of the residual error.
type tap struct {
	dx, dy int
	weight int
}

// floydSteinberg is right 7, below-left 3, below 5, below-right 1.
var floydSteinberg = kernelFromMatrix(dither.FloydSteinberg, kernelScale)

// kernelFromMatrix turns a diffusion matrix into integer taps in row-major
// order. The current pixel sits just left of the first non-zero entry of
// the first row.
func kernelFromMatrix(m dither.ErrorDiffusionMatrix, scale int) []tap {
	current := 0
	for i, v := range m[0] {
		if v != 0 {
			current = i - 1
			break
		}
	}

	var taps []tap
	for dy, row := range m {
		for col, v := range row {
			if v == 0 {
				continue
			}
			taps = append(taps, tap{
				dx:     col - current,
				dy:     dy,
				weight: int(math.Round(float64(v) * float64(scale))),
			})
		}
	}
	return taps
}

// Diffuse quantizes the RGB channels of every interior pixel of grid and
// spreads each pixel's residual error onto its unvisited neighbors.
//
// The scan covers rows 0..Height-2 and columns 1..Width-2 in raster order;
// alpha is never touched. The factor is validated before any pixel changes.
func Diffuse(grid *PixelGrid, factor int, opts DiffusionOptions) error {
	f, err := NewFactor(factor)
	if err != nil {
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}
	if err := grid.Validate(); err != nil {
		return err
	}

	d := diffuser{grid: grid, factor: f, opts: opts, kernel: floydSteinberg}
	for y := 0; y < grid.Height-1; y++ {
		for x := 1; x < grid.Width-1; x++ {
			d.visit(x, y)
		}
	}
	return nil
}

type diffuser struct {
	grid   *PixelGrid
	factor Factor
	opts   DiffusionOptions
	kernel []tap
}

// visit quantizes (x, y) and pushes its residual to the kernel taps.
func (d *diffuser) visit(x, y int) {
	i, ok := d.grid.offset(x, y)
	if !ok {
		return
	}

	var residual [3]int
	for c := range residual {
		original := d.grid.Pix[i+c]
		quantized := Quantize(d.factor, original)
		residual[c] = int(original) - int(quantized)
		d.grid.Pix[i+c] = quantized
	}

	for _, t := range d.kernel {
		nx, ny := x+t.dx, y+t.dy
		if d.opts.Boundary == BoundaryPreserve && !d.grid.Interior(nx, ny) {
			continue
		}
		j, ok := d.grid.offset(nx, ny)
		if !ok {
			continue
		}
		for c := range residual {
			d.grid.Pix[j+c] = applyError(d.grid.Pix[j+c], residual[c], t.weight, d.opts.Saturation)
		}
	}
}

// applyError adds residual*weight/kernelScale (truncated toward zero) to
// channel and resolves overflow according to policy.
func applyError(channel uint8, residual, weight int, policy SaturationPolicy) uint8 {
	sum := int(channel) + residual*weight/kernelScale

	if policy == SaturationRescale {
		wide := uint16(sum)
		if wide > math.MaxUint8 {
			wide = uint16(math.Round(float64(wide) / 255))
		}
		return uint8(wide)
	}

	switch {
	case sum < 0:
		return 0
	case sum > math.MaxUint8:
		return math.MaxUint8
	}
	return uint8(sum)
}
