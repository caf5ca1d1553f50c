package renderer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/calebmartin/go-pathtracer/pkg/core"
)

// CameraConfig describes the viewpoint for a render
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // World up direction
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter; 0 disables depth of field
	FocusDistance float64   // Distance to the focus plane; <= 0 focuses on LookAt
}

// DefaultCameraConfig returns a camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90.0,
	}
}

// Camera maps normalized image-plane coordinates to primary rays
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
}

// NewCamera creates a camera from the config and image aspect ratio.
// Invalid configurations are rejected here, never mid-render.
func NewCamera(config CameraConfig, aspectRatio float64) (*Camera, error) {
	if aspectRatio <= 0 {
		return nil, fmt.Errorf("camera: aspect ratio must be positive, got %g", aspectRatio)
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("camera: vertical fov must be in (0, 180), got %g", config.VFov)
	}
	if config.Aperture < 0 {
		return nil, fmt.Errorf("camera: aperture must be non-negative, got %g", config.Aperture)
	}

	viewDirection := config.LookFrom.Subtract(config.LookAt)
	if viewDirection.NearZero() {
		return nil, fmt.Errorf("camera: look-from and look-at coincide at %v", config.LookFrom)
	}

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = viewDirection.Length()
	}

	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := aspectRatio * viewportHeight

	w := viewDirection.Normalize()
	uCross := config.Up.Cross(w)
	if uCross.NearZero() {
		return nil, fmt.Errorf("camera: up vector %v is zero or parallel to the view direction", config.Up)
	}
	u := uCross.Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a ray for normalized screen coordinates (s, t) in [0, 1],
// where t increases upward. When the aperture is open, the ray origin is
// jittered within the lens disk for depth of field.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	offset := core.NewVec3(0, 0, 0)
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}
