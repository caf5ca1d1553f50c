package renderer

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/calebmartin/go-pathtracer/pkg/core"
)

// Epsilon for the minimum hit distance, suppresses self-intersection
// ("shadow acne") from floating point roundoff at the hit surface
const tMinEpsilon = 0.001

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width           int     // Image width in pixels
	AspectRatio     float64 // Width / height; derives the image height
	SamplesPerPixel int     // Number of jittered rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	TileSize        int     // Edge length of render tiles (0 = default 64)
	NumWorkers      int     // Number of parallel workers (0 = CPU count)
	Seed            int64   // Master seed for per-tile generators
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        64,
		Seed:            42,
	}
}

// Validate rejects configurations that would fail mid-render
func (c RenderConfig) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("render config: width must be positive, got %d", c.Width)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("render config: aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("render config: samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("render config: max depth must be positive, got %d", c.MaxDepth)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("render config: tile size must be non-negative, got %d", c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("render config: worker count must be non-negative, got %d", c.NumWorkers)
	}
	return nil
}

// ImageHeight derives the image height from width and aspect ratio
func (c RenderConfig) ImageHeight() int {
	height := int(float64(c.Width) / c.AspectRatio)
	if height < 1 {
		height = 1
	}
	return height
}

// Background maps a missed ray to a color
type Background func(core.Ray) core.Vec3

// SkyGradient returns a background that blends bottomColor to topColor by
// the vertical component of the ray direction
func SkyGradient(topColor, bottomColor core.Vec3) Background {
	return func(r core.Ray) core.Vec3 {
		unitDirection := r.Direction.Normalize()
		t := 0.5 * (unitDirection.Y + 1.0)
		return core.Lerp(bottomColor, topColor, t)
	}
}

// DefaultBackground is the usual white-to-blue sky
func DefaultBackground() Background {
	return SkyGradient(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1, 1, 1))
}

// Scene is what the raytracer needs from a scene, defined here to avoid a
// circular import with the scene package
type Scene interface {
	GetCameraConfig() CameraConfig
	GetWorld() core.Shape
	GetBackground() Background
}

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Raytracer renders a scene into a frame buffer
type Raytracer struct {
	world      core.Shape
	camera     *Camera
	background Background
	config     RenderConfig
	width      int
	height     int
	logger     core.Logger
	pixelsDone atomic.Int64
}

// NewRaytracer creates a raytracer for the given scene and configuration.
// Both the render config and the camera config are validated here.
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.TileSize == 0 {
		config.TileSize = 64
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	camera, err := NewCamera(scene.GetCameraConfig(), config.AspectRatio)
	if err != nil {
		return nil, err
	}

	background := scene.GetBackground()
	if background == nil {
		background = DefaultBackground()
	}

	return &Raytracer{
		world:      scene.GetWorld(),
		camera:     camera,
		background: background,
		config:     config,
		width:      config.Width,
		height:     config.ImageHeight(),
		logger:     logger,
	}, nil
}

// PixelsCompleted returns the number of pixels rendered so far. Safe to poll
// from another goroutine while a render is in progress.
func (rt *Raytracer) PixelsCompleted() int64 {
	return rt.pixelsDone.Load()
}

// TotalPixels returns the number of pixels in the output image
func (rt *Raytracer) TotalPixels() int {
	return rt.width * rt.height
}

// rayColor recursively traces a ray through the world, up to depth bounces
func (rt *Raytracer) rayColor(r core.Ray, depth int, random *rand.Rand) core.Vec3 {
	// Recursion budget exhausted, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := rt.world.Hit(r, tMinEpsilon, math.Inf(1))
	if !isHit {
		return rt.background(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, random)
	if !didScatter {
		return core.Vec3{} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(
		rt.rayColor(scatter.Scattered, depth-1, random))
}

// samplePixel averages the jittered samples for pixel (i, j) and applies
// gamma-2 correction. Pixel row 0 is the top of the image, so the vertical
// screen coordinate is flipped here.
func (rt *Raytracer) samplePixel(i, j int, random *rand.Rand) core.Vec3 {
	colorAccum := core.Vec3{}

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		s := (float64(i) + random.Float64()) / float64(rt.width)
		t := (float64(rt.height-1-j) + random.Float64()) / float64(rt.height)

		ray := rt.camera.GetRay(s, t, random)
		sampleColor := rt.rayColor(ray, rt.config.MaxDepth, random)

		// Degenerate geometry can produce NaN; treat the sample as absorbed
		if sampleColor.HasNaN() {
			sampleColor = core.Vec3{}
		}
		colorAccum = colorAccum.Add(sampleColor)
	}

	colorVec := colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
	return colorVec.GammaCorrect(2.0).Clamp(0.0, 1.0)
}

// renderTile renders all pixels within the tile bounds into the frame buffer
// and returns the number of samples taken
func (rt *Raytracer) renderTile(tile *Tile, fb *FrameBuffer) int {
	samples := 0
	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			fb.SetPixel(i, j, rt.samplePixel(i, j, tile.Random))
			samples += rt.config.SamplesPerPixel
			rt.pixelsDone.Add(1)
		}
	}
	return samples
}
