package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/calebmartin/go-pathtracer/pkg/core"
)

// FrameBuffer holds the rendered image as gamma-corrected [0,1] RGB triples.
// Pixels are stored row-major with the origin at the top-left corner, the
// convention assumed by image.RGBA and the PPM writer.
type FrameBuffer struct {
	width  int
	height int
	pixels []core.Vec3
}

// NewFrameBuffer creates an empty frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the image width in pixels
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the image height in pixels
func (fb *FrameBuffer) Height() int { return fb.height }

// SetPixel writes a color at (x, y). Each pixel is written exactly once by
// the tile that owns it.
func (fb *FrameBuffer) SetPixel(x, y int, c core.Vec3) {
	fb.pixels[y*fb.width+x] = c
}

// At returns the color at (x, y)
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	return fb.pixels[y*fb.width+x]
}

// ToRGBA converts the buffer to an 8-bit RGBA image
func (fb *FrameBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255.999 * c.X),
				G: uint8(255.999 * c.Y),
				B: uint8(255.999 * c.Z),
				A: 255,
			})
		}
	}
	return img
}

// WritePPM encodes the buffer as a plain-text PPM (P3) image
func (fb *FrameBuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.width, fb.height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}

	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := fb.At(x, y)
			_, err := fmt.Fprintf(bw, "%d %d %d\n",
				int(255.999*c.X), int(255.999*c.Y), int(255.999*c.Z))
			if err != nil {
				return fmt.Errorf("write ppm pixel: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush ppm: %w", err)
	}
	return nil
}
