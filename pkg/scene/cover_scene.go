package scene

import (
	"math/rand"

	"github.com/calebmartin/go-pathtracer/pkg/core"
	"github.com/calebmartin/go-pathtracer/pkg/geometry"
	"github.com/calebmartin/go-pathtracer/pkg/material"
	"github.com/calebmartin/go-pathtracer/pkg/renderer"
)

// NewCoverScene creates the classic big sphere field: a grid of ~480 small
// randomized spheres around three large feature spheres on a gray ground
// sphere. The seed fixes the sphere placement so renders are reproducible.
func NewCoverScene(seed int64) *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	s := NewScene(cameraConfig)
	random := rand.New(rand.NewSource(seed))

	groundMaterial := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			sphereCenter := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)

			// Keep the small spheres clear of the big metal sphere
			if sphereCenter.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			var sphereMaterial core.Material
			switch {
			case chooseMat < 0.8:
				albedo := randomColor(random).MultiplyVec(randomColor(random))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5+0.5*random.Float64(),
					0.5+0.5*random.Float64(),
					0.5+0.5*random.Float64(),
				)
				fuzz := 0.5 * random.Float64()
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				sphereMaterial = material.NewDielectric(1.5)
			}

			s.Add(geometry.NewSphere(sphereCenter, 0.2, sphereMaterial))
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}

func randomColor(random *rand.Rand) core.Vec3 {
	return core.NewVec3(random.Float64(), random.Float64(), random.Float64())
}
