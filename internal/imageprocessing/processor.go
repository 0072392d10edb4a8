package imageprocessing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rmitchellscott/dithercrush/internal/config"
	"github.com/rmitchellscott/dithercrush/internal/logging"
	"github.com/rmitchellscott/dithercrush/internal/storage"
)

// ProcessingOptions allows customization of the image processing pipeline
type ProcessingOptions struct {
	Factor       int
	Diffusion    DiffusionOptions
	StrictFormat bool
	MaxWidth     int
	MaxHeight    int
	Compression  int
	Timeout      time.Duration
}

// DefaultProcessingOptions returns the pipeline defaults for factor.
func DefaultProcessingOptions(factor int) ProcessingOptions {
	return ProcessingOptions{
		Factor:      factor,
		Diffusion:   DefaultDiffusionOptions(),
		Compression: 9,
		Timeout:     30 * time.Second,
	}
}

// OptionsFromConfig maps a loaded configuration onto pipeline options.
func OptionsFromConfig(cfg config.Config, factor int) (ProcessingOptions, error) {
	saturation, err := ParseSaturationPolicy(cfg.Saturation)
	if err != nil {
		return ProcessingOptions{}, err
	}
	boundary, err := ParseBoundaryPolicy(cfg.Boundary)
	if err != nil {
		return ProcessingOptions{}, err
	}
	return ProcessingOptions{
		Factor:       factor,
		Diffusion:    DiffusionOptions{Saturation: saturation, Boundary: boundary},
		StrictFormat: cfg.StrictFormat,
		MaxWidth:     cfg.MaxWidth,
		MaxHeight:    cfg.MaxHeight,
		Compression:  cfg.Compression,
		Timeout:      cfg.FetchTimeout,
	}, nil
}

// Process reads input, dithers it and writes the result to output as PNG.
// input may be a key in store or an http(s) URL. Nothing is written unless
// every step succeeds.
func Process(ctx context.Context, input, output string, store storage.Backend, options ProcessingOptions) error {
	if _, err := NewFactor(options.Factor); err != nil {
		return err
	}
	if err := options.Diffusion.validate(); err != nil {
		return err
	}

	start := time.Now()
	grid, format, err := load(ctx, input, store, options)
	if err != nil {
		return err
	}
	logging.InfoWithComponent(logging.ComponentDecode, "Decoded image",
		"source", input, "format", format, "width", grid.Width, "height", grid.Height)

	if options.MaxWidth > 0 || options.MaxHeight > 0 {
		resized := ResizeToFit(grid, options.MaxWidth, options.MaxHeight)
		if resized != grid {
			logging.InfoWithComponent(logging.ComponentResize, "Resized image",
				"from_width", grid.Width, "from_height", grid.Height,
				"width", resized.Width, "height", resized.Height)
			grid = resized
		}
	}

	if err := Diffuse(grid, options.Factor, options.Diffusion); err != nil {
		return err
	}
	logging.DebugWithComponent(logging.ComponentDiffuse, "Diffused image",
		"factor", options.Factor,
		"saturation", options.Diffusion.Saturation,
		"boundary", options.Diffusion.Boundary)

	var buf bytes.Buffer
	if err := EncodePNG(&buf, grid, options.Compression); err != nil {
		return &OutputError{Path: output, Err: err}
	}
	size := buf.Len()
	if err := store.Put(ctx, output, &buf); err != nil {
		return &OutputError{Path: output, Err: err}
	}

	logging.InfoWithComponent(logging.ComponentPipeline, "Wrote dithered image",
		"output", output, "bytes", size, "duration", time.Since(start))
	return nil
}

func load(ctx context.Context, input string, store storage.Backend, options ProcessingOptions) (*PixelGrid, string, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	if isURL(input) {
		rc, err = LoadImageFromURL(ctx, input, options.Timeout)
	} else {
		rc, err = store.Get(ctx, input)
	}
	if err != nil {
		return nil, "", &InputError{Source: input, Err: err}
	}
	defer rc.Close()

	return Decode(rc, input, options.StrictFormat)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// LoadImageFromURL downloads an image. The caller closes the returned body.
func LoadImageFromURL(ctx context.Context, url string, timeout time.Duration) (io.ReadCloser, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}
