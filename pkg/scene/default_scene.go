package scene

import (
	"github.com/calebmartin/go-pathtracer/pkg/core"
	"github.com/calebmartin/go-pathtracer/pkg/geometry"
	"github.com/calebmartin/go-pathtracer/pkg/material"
	"github.com/calebmartin/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a small three-sphere scene: a diffuse center
// sphere, a hollow glass sphere on the left, a fuzzy metal sphere on the
// right, all resting on a large ground sphere.
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom: core.NewVec3(-2, 2, 1),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     20.0,
	}

	s := NewScene(cameraConfig)

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		// Negative radius shell makes the glass sphere hollow
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)

	return s
}
