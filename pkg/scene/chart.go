// Package scene builds procedural bake inputs: planar quad charts, probe grids and demo rooms.
package scene

import (
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
)

// QuadChart is a parallelogram surface with its own lightmap chart.
// The surface faces U x V; lightmap UV (0,0) is at Origin and (1,1) at Origin+U+V.
type QuadChart struct {
	Origin core.Vec3
	U      core.Vec3
	V      core.Vec3

	Width  int // texels along U
	Height int // texels along V

	Albedo   core.Vec3
	Emission core.Vec3
}

// Normal returns the unit face normal
func (q QuadChart) Normal() core.Vec3 {
	return q.U.Cross(q.V).Normalize()
}

// TexelCenter returns the world position of texel (x, y)
func (q QuadChart) TexelCenter(x, y int) core.Vec3 {
	fu := (float64(x) + 0.5) / float64(q.Width)
	fv := (float64(y) + 0.5) / float64(q.Height)
	return q.Origin.Add(q.U.Multiply(fu)).Add(q.V.Multiply(fv))
}

// Mesh returns the two triangles of the quad with lightmap UVs and flat normals
func (q QuadChart) Mesh() raytracer.Mesh {
	normal := q.Normal()
	return raytracer.Mesh{
		Positions: []core.Vec3{
			q.Origin,
			q.Origin.Add(q.U),
			q.Origin.Add(q.U).Add(q.V),
			q.Origin.Add(q.V),
		},
		Normals: []core.Vec3{normal, normal, normal, normal},
		LightmapUVs: []core.Vec2{
			core.NewVec2(0, 0),
			core.NewVec2(1, 0),
			core.NewVec2(1, 1),
			core.NewVec2(0, 1),
		},
		Indices: []int{0, 1, 2, 0, 2, 3},
	}
}

// GeometryBuffer rasterizes the quad analytically: every texel is covered
// and tagged with geometryID, which must not be 0
func (q QuadChart) GeometryBuffer(geometryID int) *lightmap.GeometryBuffer {
	if geometryID == 0 {
		panic("geometry id 0 marks empty texels")
	}

	buffer := lightmap.NewGeometryBuffer(q.Width, q.Height)
	normal := q.Normal()
	texelU := q.U.Length() / float64(q.Width)
	texelV := q.V.Length() / float64(q.Height)
	radius := 0.5 * math.Hypot(texelU, texelV)

	for y := 0; y < q.Height; y++ {
		for x := 0; x < q.Width; x++ {
			i := buffer.Index(x, y)
			buffer.GeometryIDs[i] = geometryID
			buffer.Positions[i] = q.TexelCenter(x, y)
			buffer.FaceNormals[i] = normal
			buffer.SmoothNormals[i] = normal
			buffer.TexelRadiuses[i] = radius
			buffer.Albedo[i] = q.Albedo
			buffer.Emission[i] = q.Emission
		}
	}
	return buffer
}
