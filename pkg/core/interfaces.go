package core

import "math/rand"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit surface normal, always facing against the incoming ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether the ray hit the front (outer) face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// The stored normal always opposes the incoming ray direction.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the nearest intersection with t in (tMin, tMax), if any
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() AABB
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The outgoing scattered ray
	Attenuation Vec3 // Color attenuation applied to light carried by the scattered ray
}

// Material interface for surfaces that can scatter rays.
// Scatter returns false when the ray is absorbed.
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}
