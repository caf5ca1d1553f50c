package renderer

// RenderStats contains statistics about a completed render
type RenderStats struct {
	TotalPixels    int     // Number of pixels rendered
	TotalSamples   int     // Number of primary samples taken
	AverageSamples float64 // Samples per pixel
	NumTiles       int     // Number of tiles the image was split into
	NumWorkers     int     // Number of workers used
}
