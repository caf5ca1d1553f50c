package renderer

import (
	"strings"
	"testing"

	"github.com/calebmartin/go-pathtracer/pkg/core"
)

func TestFrameBuffer_SetAndGet(t *testing.T) {
	fb := NewFrameBuffer(4, 3)

	if fb.Width() != 4 || fb.Height() != 3 {
		t.Fatalf("Expected 4x3 buffer, got %dx%d", fb.Width(), fb.Height())
	}

	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	fb.SetPixel(2, 1, red)
	fb.SetPixel(0, 0, green)

	if fb.At(2, 1) != red {
		t.Errorf("Expected red at (2,1), got %v", fb.At(2, 1))
	}
	if fb.At(0, 0) != green {
		t.Errorf("Expected green at (0,0), got %v", fb.At(0, 0))
	}
	if fb.At(1, 2) != (core.Vec3{}) {
		t.Errorf("Untouched pixel must be black, got %v", fb.At(1, 2))
	}
}

func TestFrameBuffer_ToRGBA(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.SetPixel(0, 0, core.NewVec3(1, 1, 1))
	fb.SetPixel(1, 0, core.NewVec3(0.5, 0, 0))
	fb.SetPixel(0, 1, core.NewVec3(0, 0, 0))

	img := fb.ToRGBA()

	if got := img.Bounds(); got.Dx() != 2 || got.Dy() != 2 {
		t.Fatalf("Expected 2x2 image, got %v", got)
	}

	white := img.RGBAAt(0, 0)
	if white.R != 255 || white.G != 255 || white.B != 255 || white.A != 255 {
		t.Errorf("Expected opaque white, got %+v", white)
	}

	half := img.RGBAAt(1, 0)
	if half.R != 127 || half.G != 0 || half.B != 0 {
		t.Errorf("Expected (127,0,0), got %+v", half)
	}

	black := img.RGBAAt(0, 1)
	if black.R != 0 || black.A != 255 {
		t.Errorf("Expected opaque black, got %+v", black)
	}
}

func TestFrameBuffer_WritePPM(t *testing.T) {
	fb := NewFrameBuffer(2, 1)
	fb.SetPixel(0, 0, core.NewVec3(1, 0, 0))
	fb.SetPixel(1, 0, core.NewVec3(0, 0.5, 1))

	var sb strings.Builder
	if err := fb.WritePPM(&sb); err != nil {
		t.Fatal(err)
	}

	want := "P3\n2 1\n255\n255 0 0\n0 127 255\n"
	if sb.String() != want {
		t.Errorf("PPM output mismatch:\ngot  %q\nwant %q", sb.String(), want)
	}
}
