package renderer

import (
	"context"
	"runtime"
	"sync"
)

// tileResult carries per-tile sample counts back from the workers
type tileResult struct {
	tileID  int
	samples int
}

// Render renders the full frame, distributing tiles across a fixed-size
// worker pool. The scene is immutable and shared without locking; each tile
// writes a disjoint pixel range of the frame buffer. Cancellation is
// cooperative: workers poll the context between tiles.
func (rt *Raytracer) Render(ctx context.Context) (*FrameBuffer, RenderStats, error) {
	numWorkers := rt.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	rt.pixelsDone.Store(0)
	fb := NewFrameBuffer(rt.width, rt.height)
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize, rt.config.Seed)

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, %d tiles on %d workers\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, len(tiles), numWorkers)

	taskQueue := make(chan *Tile, len(tiles))
	resultQueue := make(chan tileResult, len(tiles))

	for _, tile := range tiles {
		taskQueue <- tile
	}
	close(taskQueue)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tile := range taskQueue {
				select {
				case <-ctx.Done():
					return
				default:
				}
				samples := rt.renderTile(tile, fb)
				resultQueue <- tileResult{tileID: tile.ID, samples: samples}
			}
		}()
	}

	wg.Wait()
	close(resultQueue)

	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		TotalPixels: rt.width * rt.height,
		NumTiles:    len(tiles),
		NumWorkers:  numWorkers,
	}
	for result := range resultQueue {
		stats.TotalSamples += result.samples
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)

	return fb, stats, nil
}
