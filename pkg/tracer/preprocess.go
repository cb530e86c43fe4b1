package tracer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
)

// Probe directions in the tangent plane of a surface facing +Z: left, right, up, down
var tangentDirections = [4]mgl64.Vec3{
	{-1, 0, 0},
	{1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
}

var forward = mgl64.Vec3{0, 0, 1}

// PreprocessGeometryBuffer moves texels that sit next to a back face behind it,
// so their rays do not start inside solid geometry and leak light.
// mapping translates geometry buffer ids into scene geometry ids.
func PreprocessGeometryBuffer(buffer *lightmap.GeometryBuffer, scene *raytracer.Scene, mapping []int, settings Settings) {
	parallelFor(buffer.NumTexels(), settings.NumTasks, func(from, to int) {
		filter := NewLODFilter(scene)
		ray := raytracer.Ray{TNear: 0, Mask: raytracer.AllGeometry}

		for i := from; i < to; i++ {
			geometryID := buffer.GeometryIDs[i]
			if geometryID == 0 {
				continue
			}
			filter.SetCurrent(mapping[geometryID])

			faceNormal := buffer.FaceNormals[i]
			origin := buffer.Positions[i].Add(faceNormal.Multiply(settings.ShadowLeakBias))
			basis := mgl64.QuatBetweenVectors(forward, mgl64.Vec3{faceNormal.X, faceNormal.Y, faceNormal.Z})

			closestDistance := math.Inf(1)
			var closestDirection core.Vec3
			for _, tangent := range tangentDirections {
				d := basis.Rotate(tangent)
				direction := core.NewVec3(d[0], d[1], d[2])

				ray.Origin = origin
				ray.Direction = direction
				ray.TFar = buffer.TexelRadiuses[i]
				hit := scene.Intersect(&ray, filter)
				if !hit.Valid() {
					continue
				}

				// Front face: the surface faces the texel
				if direction.Dot(hit.Ng) < 0 {
					continue
				}

				if hit.T < closestDistance {
					closestDistance = hit.T
					closestDirection = direction
				}
			}

			if !math.IsInf(closestDistance, 1) {
				buffer.Positions[i] = origin.Add(closestDirection.Multiply(closestDistance + settings.ShadowLeakOffset))
			}
		}
	})
}
