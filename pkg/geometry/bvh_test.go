package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/calebmartin/go-pathtracer/pkg/core"
	"github.com/calebmartin/go-pathtracer/pkg/material"
)

// The BVH is an acceleration structure only: for any ray it must produce
// exactly the hit that brute-force iteration over the shapes produces.
func TestBVH_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(99))
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	shapes := make([]core.Shape, 0, 200)
	for i := 0; i < 200; i++ {
		center := core.NewVec3(
			20*random.Float64()-10,
			20*random.Float64()-10,
			20*random.Float64()-10,
		)
		radius := 0.1 + random.Float64()
		shapes = append(shapes, NewSphere(center, radius, mat))
	}

	bvh := core.NewBVH(shapes)
	list := NewShapeList(shapes...)

	for i := 0; i < 500; i++ {
		origin := core.NewVec3(
			40*random.Float64()-20,
			40*random.Float64()-20,
			40*random.Float64()-20,
		)
		direction := core.RandomUnitVector(random)
		ray := core.NewRay(origin, direction)

		bvhHit, bvhIsHit := bvh.Hit(ray, 0.001, math.Inf(1))
		listHit, listIsHit := list.Hit(ray, 0.001, math.Inf(1))

		if bvhIsHit != listIsHit {
			t.Fatalf("Ray %d: BVH hit=%v but brute force hit=%v", i, bvhIsHit, listIsHit)
		}
		if !bvhIsHit {
			continue
		}
		if bvhHit.T != listHit.T {
			t.Fatalf("Ray %d: BVH t=%g but brute force t=%g", i, bvhHit.T, listHit.T)
		}
		if bvhHit.Point != listHit.Point {
			t.Fatalf("Ray %d: hit points differ: %v vs %v", i, bvhHit.Point, listHit.Point)
		}
	}
}

func TestBVH_ShrunkInterval(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	shapes := []core.Shape{
		NewSphere(core.NewVec3(0, 0, -2), 0.5, mat),
		NewSphere(core.NewVec3(0, 0, -5), 0.5, mat),
	}

	bvh := core.NewBVH(shapes)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// tMax between the two spheres only reaches the near one
	hit, isHit := bvh.Hit(ray, 0.001, 3.0)
	if !isHit {
		t.Fatal("Expected a hit on the near sphere")
	}
	if math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("Expected t = 1.5, got %g", hit.T)
	}

	// tMax short of both spheres sees nothing
	if _, isHit := bvh.Hit(ray, 0.001, 1.0); isHit {
		t.Error("Expected no hit with tMax before the first sphere")
	}
}
