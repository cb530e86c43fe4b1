package tracer

import (
	"fmt"
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
)

// Radiometric constants of a bounce. The BRDF is (1/pi)/pi.
const (
	bounceReflectance = 1 / math.Pi
	bounceBRDF        = bounceReflectance / math.Pi
	hemispherePDF     = 1 / (2 * math.Pi)
)

// SampleOrigin is where the first ray of an indirect sample starts
type SampleOrigin struct {
	Position     core.Vec3
	FaceNormal   core.Vec3
	SmoothNormal core.Vec3
	Direction    core.Vec3
	Albedo       core.Vec3
}

// IndirectKernel binds an indirect light element type E to destination buffers.
// Implementations are value types; every task works on its own copy through the *K constraint.
type IndirectKernel[K, E any] interface {
	*K
	NumElements() int
	NumSamples() int
	// BeginElement initializes element and reports whether it should be traced
	BeginElement(index int, element *E) bool
	BeginSample(sampleIndex int, element *E, sampler core.Sampler) SampleOrigin
	EndSample(element *E, light core.Vec3)
	EndElement(index int, element *E)
}

// TraceIndirectLight follows up to settings.NumBounces bounces per sample, gathering
// the surface light baked into bakedDirect at every hit. Only primary LODs are hit.
// Each element draws from its own random stream seeded by (settings.Seed, element index),
// so the output does not depend on NumTasks.
func TraceIndirectLight[E any, K any, PK IndirectKernel[K, E]](
	kernel K, bakedDirect []*lightmap.BakedDirect, scene *raytracer.Scene, settings Settings) {

	if settings.NumBounces > MaxBounces {
		panic(fmt.Sprintf("number of bounces %d exceeds the maximum of %d", settings.NumBounces, MaxBounces))
	}

	maxDistance := scene.MaxDistance()
	numElements := PK(&kernel).NumElements()

	parallelFor(numElements, settings.NumTasks, func(from, to int) {
		k := kernel
		pk := PK(&k)
		numSamples := pk.NumSamples()

		sampler := core.NewRandomSampler(uint64(settings.Seed), 0)
		filter := NewIndirectFilter(scene, sampler)
		ray := raytracer.Ray{TNear: 0, TFar: maxDistance, Mask: raytracer.PrimaryLODGeometry}

		var albedo [MaxBounces]core.Vec3
		var incomingSamples [MaxBounces]core.Vec3
		var incomingFactors [MaxBounces]float64

		for elementIndex := from; elementIndex < to; elementIndex++ {
			sampler.Reseed(uint64(settings.Seed), uint64(elementIndex))

			var element E
			if !pk.BeginElement(elementIndex, &element) {
				continue
			}

			for sampleIndex := 0; sampleIndex < numSamples; sampleIndex++ {
				origin := pk.BeginSample(sampleIndex, &element, sampler)
				position := origin.Position
				direction := origin.Direction
				smoothNormal := origin.SmoothNormal
				albedo[0] = origin.Albedo

				numBounces := 0
				for bounceIndex := 0; bounceIndex < settings.NumBounces; bounceIndex++ {
					ray.Origin = position
					ray.Direction = direction
					ray.TFar = maxDistance
					hit := scene.Intersect(&ray, filter)
					if !hit.Valid() {
						break
					}

					// Back face: the ray left through the inside of a surface
					if direction.Dot(hit.Ng) > 0 {
						break
					}

					geometry := scene.Geometry(hit.GeomID)
					if geometry.LightmapIndex < 0 || geometry.LightmapIndex >= len(bakedDirect) {
						break
					}
					chart := bakedDirect[geometry.LightmapIndex]
					lightmapUV := scene.Interpolate(hit.GeomID, hit.PrimID, hit.U, hit.V, raytracer.ChannelLightmapUV)
					location := chart.NearestLocation(core.NewVec2(lightmapUV.X, lightmapUV.Y))

					cosTheta := max(0, direction.Dot(smoothNormal))
					incomingSamples[bounceIndex] = chart.SurfaceLightAt(location)
					incomingFactors[bounceIndex] = bounceBRDF * cosTheta / hemispherePDF
					numBounces++

					if numBounces < settings.NumBounces {
						albedo[bounceIndex+1] = chart.AlbedoAt(location)

						position = ray.At(hit.T).Add(hit.Ng.Multiply(settings.RayPositionOffset))
						smoothNormal = scene.Interpolate(hit.GeomID, hit.PrimID, hit.U, hit.V, raytracer.ChannelSmoothNormal).Normalize()
						direction = core.RandomHemisphereDirection(hit.Ng, sampler)
					}
				}

				// Accumulate back to front
				var light core.Vec3
				for bounceIndex := numBounces - 1; bounceIndex >= 0; bounceIndex-- {
					light = light.Add(incomingSamples[bounceIndex]).
						Multiply(incomingFactors[bounceIndex]).
						MultiplyVec(albedo[bounceIndex])
				}

				pk.EndSample(&element, light)
			}

			pk.EndElement(elementIndex, &element)
		}
	})
}
