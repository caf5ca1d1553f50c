package core

import (
	"math"
	"math/rand"
)

// RandomInUnitSphere generates a uniform random point inside the unit sphere
// by rejection sampling: sample the cube [-1,1]³ and retry until the point
// falls inside the sphere. Expected iterations ≈ 2.03.
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(
			2*random.Float64()-1,
			2*random.Float64()-1,
			2*random.Float64()-1,
		)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector generates a uniform random direction on the unit sphere.
// Points with tiny squared length are rejected so normalization stays stable.
func RandomUnitVector(random *rand.Rand) Vec3 {
	for {
		p := RandomInUnitSphere(random)
		lenSq := p.LengthSquared()
		if lenSq > 1e-160 {
			return p.Multiply(1.0 / math.Sqrt(lenSq))
		}
	}
}

// RandomInUnitDisk generates a uniform random point in the unit disk (z = 0)
// using the same rejection technique in 2D. Used for lens sampling.
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// NewWorkerRand creates an independent deterministic generator for a worker
// or tile. Each unit of parallel work gets its own generator derived from the
// master seed so renders reproduce exactly regardless of scheduling.
func NewWorkerRand(masterSeed int64, index int) *rand.Rand {
	return rand.New(rand.NewSource(masterSeed + int64(index) + 1))
}
