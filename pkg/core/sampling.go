package core

import (
	"math/rand/v2"
)

// Sampler provides random sampling for baking algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get3D() Vec3
}

// RandomSampler wraps a PCG-backed random generator. The source can be
// reseeded cheaply, which lets every baked element own a reproducible stream
// no matter which worker processes it.
type RandomSampler struct {
	source *rand.PCG
	random *rand.Rand
}

// NewRandomSampler creates a sampler seeded with the given seed pair
func NewRandomSampler(seed, stream uint64) *RandomSampler {
	source := rand.NewPCG(seed, stream)
	return &RandomSampler{source: source, random: rand.New(source)}
}

// Reseed restarts the stream from the given seed pair
func (r *RandomSampler) Reseed(seed, stream uint64) {
	r.source.Seed(seed, stream)
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomDirection generates a uniformly distributed unit vector by rejection
// sampling the unit ball. Draws outside the ball or too close to the origin
// are rejected so the result is always finite.
func RandomDirection(sampler Sampler) Vec3 {
	const minLengthSquared = 1e-12
	for {
		s := sampler.Get3D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1)
		lengthSquared := p.LengthSquared()
		if lengthSquared > 1.0 || lengthSquared < minLengthSquared {
			continue
		}
		return p.Normalize()
	}
}

// RandomHemisphereDirection generates a uniformly distributed unit vector in
// the hemisphere around normal (pdf = 1/(2*pi))
func RandomHemisphereDirection(normal Vec3, sampler Sampler) Vec3 {
	direction := RandomDirection(sampler)
	if direction.Dot(normal) < 0 {
		return direction.Negate()
	}
	return direction
}
