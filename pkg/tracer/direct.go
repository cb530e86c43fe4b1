package tracer

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
)

// DirectKernel binds a direct light element type E and its filter F to destination buffers.
// Implementations are value types; every task works on its own copy through the *K constraint.
type DirectKernel[K, E any, F raytracer.Filter] interface {
	*K
	NumElements() int
	NumSamples() int
	// NewFilter is called once per task
	NewFilter(scene *raytracer.Scene) F
	// BeginElement initializes element and reports whether it should be traced
	BeginElement(index int, filter F, element *E) bool
	// BeginSample wires incoming into the filter and returns the receiving position
	BeginSample(sampleIndex int, element *E, filter F, incoming *core.Vec3) core.Vec3
	// EndSample is called for unoccluded samples; direction points toward the light
	EndSample(element *E, light, direction core.Vec3)
	EndElement(index int, element *E)
}

// TraceDirectLight casts one shadow ray per element sample toward the light.
// Rays run backward from MaxDistance away toward the receiver, so any accepted hit occludes.
func TraceDirectLight[E any, F raytracer.Filter, K any, PK DirectKernel[K, E, F], G LightGenerator](
	kernel K, generator G, scene *raytracer.Scene, settings Settings) {

	maxDistance := scene.MaxDistance()
	numElements := PK(&kernel).NumElements()

	parallelFor(numElements, settings.NumTasks, func(from, to int) {
		k := kernel
		pk := PK(&k)
		gen := generator

		filter := pk.NewFilter(scene)
		numSamples := pk.NumSamples()

		var incoming core.Vec3
		ray := raytracer.Ray{TNear: 0, TFar: maxDistance, Mask: raytracer.AllGeometry}

		for elementIndex := from; elementIndex < to; elementIndex++ {
			var element E
			if !pk.BeginElement(elementIndex, filter, &element) {
				continue
			}

			for sampleIndex := 0; sampleIndex < numSamples; sampleIndex++ {
				position := pk.BeginSample(sampleIndex, &element, filter, &incoming)
				incoming = gen.LightIntensity(position)
				direction := gen.RayDirection(position)

				ray.Origin = position.Subtract(direction.Multiply(maxDistance))
				ray.Direction = direction
				ray.TFar = maxDistance
				if hit := scene.Intersect(&ray, filter); hit.Valid() {
					continue
				}

				pk.EndSample(&element, incoming, direction.Negate())
			}

			pk.EndElement(elementIndex, &element)
		}
	})
}
