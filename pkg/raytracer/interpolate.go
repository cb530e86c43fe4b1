package raytracer

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
)

// Channel selects a per-vertex attribute for Interpolate
type Channel int

const (
	// ChannelLightmapUV is the lightmap UV (X, Y; Z is 0)
	ChannelLightmapUV Channel = iota
	// ChannelSmoothNormal is the per-vertex normal, not normalized after interpolation
	ChannelSmoothNormal
	// ChannelDiffuseUV is the diffuse texture UV; falls back to the lightmap UV
	ChannelDiffuseUV
)

// Interpolate returns a vertex attribute at barycentric (u, v) of the given triangle:
// (1-u-v)*a0 + u*a1 + v*a2. Missing attributes interpolate to zero,
// except smooth normals which fall back to the face normal.
func (s *Scene) Interpolate(geomID, primID int, u, v float64, channel Channel) core.Vec3 {
	mesh := &s.geometries[geomID].Mesh
	i0, i1, i2 := mesh.Indices[primID*3], mesh.Indices[primID*3+1], mesh.Indices[primID*3+2]
	w := 1 - u - v

	blend2 := func(attr []core.Vec2) core.Vec3 {
		a := attr[i0].Multiply(w).Add(attr[i1].Multiply(u)).Add(attr[i2].Multiply(v))
		return core.NewVec3(a.X, a.Y, 0)
	}

	switch channel {
	case ChannelLightmapUV:
		if mesh.LightmapUVs == nil {
			return core.Zero3
		}
		return blend2(mesh.LightmapUVs)
	case ChannelDiffuseUV:
		if mesh.UVs != nil {
			return blend2(mesh.UVs)
		}
		if mesh.LightmapUVs != nil {
			return blend2(mesh.LightmapUVs)
		}
		return core.Zero3
	case ChannelSmoothNormal:
		if mesh.Normals == nil {
			p0, p1, p2 := mesh.Positions[i0], mesh.Positions[i1], mesh.Positions[i2]
			return p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
		}
		return mesh.Normals[i0].Multiply(w).Add(mesh.Normals[i1].Multiply(u)).Add(mesh.Normals[i2].Multiply(v))
	default:
		panic("unknown interpolation channel")
	}
}
