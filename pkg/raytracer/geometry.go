package raytracer

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
)

// Mesh holds indexed triangle data with per-vertex attributes.
// Normals, LightmapUVs and UVs are optional; when present they must have one entry per position.
type Mesh struct {
	Positions   []core.Vec3
	Normals     []core.Vec3
	LightmapUVs []core.Vec2
	UVs         []core.Vec2
	Indices     []int // every group of 3 indices forms a triangle
}

// NumTriangles returns the number of triangles in the mesh
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// Geometry is one baked mesh/LOD instance registered in the scene.
// LOD 0 is the primary LOD; other LODs only take part in indirect lighting through probes.
type Geometry struct {
	ObjectIndex   int
	GeometryIndex int
	LodIndex      int
	NumLods       int

	Opaque       bool
	DiffuseColor core.Vec3
	Alpha        float64
	DiffuseImage *Image // optional

	LightmapIndex int

	Mesh Mesh
}

// IsPrimaryLOD reports whether the geometry is LOD 0
func (g *Geometry) IsPrimaryLOD() bool {
	return g.LodIndex == 0
}

// Mask returns the ray mask bits the geometry answers to
func (g *Geometry) Mask() uint32 {
	if g.IsPrimaryLOD() {
		return PrimaryLODGeometry
	}
	return lodGeometry
}

// Ray masks
const (
	// AllGeometry hits every geometry
	AllGeometry uint32 = ^uint32(0)
	// PrimaryLODGeometry hits only LOD 0 geometry
	PrimaryLODGeometry uint32 = 1

	lodGeometry uint32 = 2
)

func (g *Geometry) validate() {
	m := &g.Mesh
	if len(m.Indices)%3 != 0 {
		panic("face indices must be a multiple of 3")
	}
	for _, index := range m.Indices {
		if index < 0 || index >= len(m.Positions) {
			panic("face index out of bounds")
		}
	}
	if m.Normals != nil && len(m.Normals) != len(m.Positions) {
		panic("number of normals must match number of positions")
	}
	if m.LightmapUVs != nil && len(m.LightmapUVs) != len(m.Positions) {
		panic("number of lightmap UVs must match number of positions")
	}
	if m.UVs != nil && len(m.UVs) != len(m.Positions) {
		panic("number of UVs must match number of positions")
	}
}
