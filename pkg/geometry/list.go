package geometry

import (
	"github.com/calebmartin/go-pathtracer/pkg/core"
)

// ShapeList is an ordered collection of shapes whose intersection is the
// nearest hit among its children. Ties at exactly equal t resolve to the
// first shape encountered.
type ShapeList struct {
	Shapes []core.Shape
}

// NewShapeList creates a list from the given shapes
func NewShapeList(shapes ...core.Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape core.Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Hit tests the ray against every child, tracking the closest valid hit by
// progressively shrinking tMax to the best hit found so far
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of all child bounding boxes
func (l *ShapeList) BoundingBox() core.AABB {
	if len(l.Shapes) == 0 {
		return core.AABB{}
	}

	box := l.Shapes[0].BoundingBox()
	for _, shape := range l.Shapes[1:] {
		box = box.Union(shape.BoundingBox())
	}
	return box
}
