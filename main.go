package main

import (
	// standard library
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	// third-party
	"github.com/joho/godotenv"

	// internal
	"github.com/rmitchellscott/dithercrush/internal/config"
	"github.com/rmitchellscott/dithercrush/internal/imageprocessing"
	"github.com/rmitchellscott/dithercrush/internal/logging"
	"github.com/rmitchellscott/dithercrush/internal/storage"
	"github.com/rmitchellscott/dithercrush/internal/version"
)

const usage = "usage: dithercrush <input> <output> <factor>\n\n" +
	"  input   image path or http(s) URL\n" +
	"  output  PNG path to write\n" +
	"  factor  quantization steps per channel, 1-255"

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println(version.String())
		os.Exit(0)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("configuration error:", err)
		os.Exit(1)
	}
	logging.Configure(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if len(os.Args) < 4 {
		fmt.Println(usage)
		os.Exit(1)
	}
	input, output := os.Args[1], os.Args[2]

	factor, err := strconv.Atoi(os.Args[3])
	if err != nil {
		fmt.Printf("factor must be an integer, got %q\n", os.Args[3])
		os.Exit(1)
	}

	options, err := imageprocessing.OptionsFromConfig(cfg, factor)
	if err != nil {
		fmt.Println("configuration error:", err)
		os.Exit(1)
	}

	logging.DebugWithComponent(logging.ComponentStartup, "Starting dithercrush",
		"version", version.String(), "saturation", cfg.Saturation, "boundary", cfg.Boundary)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := imageprocessing.Process(ctx, input, output, storage.NewFilesystemBackend(""), options); err != nil {
		var factorErr *imageprocessing.InvalidFactorError
		if errors.As(err, &factorErr) {
			fmt.Println(err)
		} else {
			logging.ErrorWithComponent(logging.ComponentPipeline, "Dithering failed", "error", err)
		}
		stop()
		os.Exit(1)
	}
}
