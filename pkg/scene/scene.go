package scene

import (
	"fmt"

	"github.com/calebmartin/go-pathtracer/pkg/core"
	"github.com/calebmartin/go-pathtracer/pkg/geometry"
	"github.com/calebmartin/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering: the surfaces, the
// camera configuration and the background. Once Preprocess has run the scene
// is immutable and safe to share across render workers without locking.
type Scene struct {
	Shapes       []core.Shape
	CameraConfig renderer.CameraConfig
	Background   renderer.Background

	skyTop    *core.Vec3
	skyBottom *core.Vec3
	bvh       *core.BVH
}

// NewScene creates an empty scene with the given camera configuration
func NewScene(cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Shapes:       make([]core.Shape, 0),
		CameraConfig: cameraConfig,
		Background:   renderer.DefaultBackground(),
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...core.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// SetSkyGradient sets the background to a vertical color gradient and records
// the colors so Save can write them back out
func (s *Scene) SetSkyGradient(top, bottom core.Vec3) {
	s.skyTop = &top
	s.skyBottom = &bottom
	s.Background = renderer.SkyGradient(top, bottom)
}

// Preprocess builds the bounding volume hierarchy. Must be called after the
// last shape is added and before rendering.
func (s *Scene) Preprocess() error {
	if len(s.Shapes) == 0 {
		return fmt.Errorf("scene: no shapes to render")
	}
	s.bvh = core.NewBVH(s.Shapes)
	return nil
}

// GetCameraConfig implements renderer.Scene
func (s *Scene) GetCameraConfig() renderer.CameraConfig {
	return s.CameraConfig
}

// GetWorld implements renderer.Scene. Falls back to a brute-force shape list
// when Preprocess has not been called.
func (s *Scene) GetWorld() core.Shape {
	if s.bvh != nil {
		return s.bvh
	}
	return geometry.NewShapeList(s.Shapes...)
}

// GetBackground implements renderer.Scene
func (s *Scene) GetBackground() renderer.Background {
	return s.Background
}
