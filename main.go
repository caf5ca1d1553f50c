package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/calebmartin/go-pathtracer/pkg/core"
	"github.com/calebmartin/go-pathtracer/pkg/renderer"
	"github.com/calebmartin/go-pathtracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene: 'default', 'cover', or a path to a .yaml scene file")
	width := flag.Int("width", 400, "Image width in pixels")
	aspectRatio := flag.Float64("aspect", 16.0/9.0, "Image aspect ratio (width/height)")
	samples := flag.Int("spp", 100, "Samples per pixel")
	maxDepth := flag.Int("depth", 50, "Maximum ray bounce depth")
	seed := flag.Int64("seed", 42, "Master random seed")
	workers := flag.Int("workers", 0, "Number of render workers (0 = CPU count)")
	output := flag.String("out", "output.png", "Output file (.png or .ppm)")
	flag.Parse()

	if err := run(*sceneType, *width, *aspectRatio, *samples, *maxDepth, *seed, *workers, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneType string, width int, aspectRatio float64, samples, maxDepth int, seed int64, workers int, output string) error {
	selectedScene, err := createScene(sceneType, seed)
	if err != nil {
		return err
	}
	if err := selectedScene.Preprocess(); err != nil {
		return err
	}

	config := renderer.RenderConfig{
		Width:           width,
		AspectRatio:     aspectRatio,
		SamplesPerPixel: samples,
		MaxDepth:        maxDepth,
		NumWorkers:      workers,
		Seed:            seed,
	}

	logger := renderer.NewDefaultLogger()
	raytracer, err := renderer.NewRaytracer(selectedScene, config, logger)
	if err != nil {
		return err
	}

	// Poll the completed-pixel counter for progress output
	done := make(chan struct{})
	go reportProgress(raytracer, logger, done)

	startTime := time.Now()
	fb, stats, err := raytracer.Render(context.Background())
	close(done)
	if err != nil {
		return err
	}
	renderTime := time.Since(startTime)

	logger.Printf("Render completed in %v (%.1f samples/pixel, %d workers)\n",
		renderTime, stats.AverageSamples, stats.NumWorkers)

	if err := writeOutput(fb, output); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", output)
	return nil
}

func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	switch sceneType {
	case "default":
		return scene.NewDefaultScene(), nil
	case "cover":
		return scene.NewCoverScene(seed), nil
	default:
		if strings.HasSuffix(sceneType, ".yaml") || strings.HasSuffix(sceneType, ".yml") {
			return scene.LoadFile(sceneType)
		}
		return nil, fmt.Errorf("unknown scene type %q", sceneType)
	}
}

func reportProgress(rt *renderer.Raytracer, logger core.Logger, done <-chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	total := rt.TotalPixels()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			completed := rt.PixelsCompleted()
			logger.Printf("Progress: %d/%d pixels (%.0f%%)\n",
				completed, total, 100*float64(completed)/float64(total))
		}
	}
}

func writeOutput(fb *renderer.FrameBuffer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(path, ".ppm") {
		return fb.WritePPM(file)
	}

	if err := png.Encode(file, fb.ToRGBA()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
