package probe

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/sh"
)

// OutsideMesh is the neighbor index of a face on the mesh boundary
const OutsideMesh = -1

// Tetrahedron references four mesh vertices.
// Neighbors[i] is the tetrahedron sharing the face opposite vertex i.
type Tetrahedron struct {
	Indices   [4]int
	Neighbors [4]int
	// matrix maps pos - vertex[3] to the first three barycentric weights
	matrix mgl64.Mat3
}

// TetrahedralMesh is a tetrahedralization of light probe positions
type TetrahedralMesh struct {
	Vertices   []core.Vec3
	Tetrahedra []Tetrahedron
	// Tetrahedra past this index are hull cells and blend only their first three vertices
	NumInnerTetrahedrons int
}

// NewTetrahedralMesh connects tetrahedra through shared faces and precomputes
// their barycentric matrices. All tetrahedra are treated as inner cells.
func NewTetrahedralMesh(vertices []core.Vec3, tetrahedra [][4]int) (*TetrahedralMesh, error) {
	mesh := &TetrahedralMesh{
		Vertices:             vertices,
		Tetrahedra:           make([]Tetrahedron, len(tetrahedra)),
		NumInnerTetrahedrons: len(tetrahedra),
	}

	type faceRef struct {
		tet, slot int
	}
	faces := make(map[[3]int][]faceRef)

	for t, indices := range tetrahedra {
		for _, index := range indices {
			if index < 0 || index >= len(vertices) {
				return nil, fmt.Errorf("tetrahedron %d: vertex index %d out of range", t, index)
			}
		}

		tet := &mesh.Tetrahedra[t]
		tet.Indices = indices
		tet.Neighbors = [4]int{OutsideMesh, OutsideMesh, OutsideMesh, OutsideMesh}
		tet.matrix = barycentricMatrix(vertices, indices)

		for slot := 0; slot < 4; slot++ {
			key := faceKey(indices, slot)
			faces[key] = append(faces[key], faceRef{tet: t, slot: slot})
		}
	}

	for key, refs := range faces {
		switch len(refs) {
		case 1:
			// boundary face
		case 2:
			a, b := refs[0], refs[1]
			mesh.Tetrahedra[a.tet].Neighbors[a.slot] = b.tet
			mesh.Tetrahedra[b.tet].Neighbors[b.slot] = a.tet
		default:
			return nil, fmt.Errorf("face %v is shared by %d tetrahedra", key, len(refs))
		}
	}

	return mesh, nil
}

// faceKey returns the sorted vertex triple of the face opposite slot
func faceKey(indices [4]int, slot int) [3]int {
	var key [3]int
	n := 0
	for i, index := range indices {
		if i != slot {
			key[n] = index
			n++
		}
	}
	sort.Ints(key[:])
	return key
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// barycentricMatrix inverts the edge matrix of the tetrahedron. Degenerate
// tetrahedra get a zero matrix, which puts all weight on the fourth vertex.
func barycentricMatrix(vertices []core.Vec3, indices [4]int) mgl64.Mat3 {
	p3 := vertices[indices[3]]
	edges := mgl64.Mat3FromCols(
		toMgl(vertices[indices[0]].Subtract(p3)),
		toMgl(vertices[indices[1]].Subtract(p3)),
		toMgl(vertices[indices[2]].Subtract(p3)),
	)
	if edges.Det() == 0 {
		return mgl64.Mat3{}
	}
	return edges.Inv()
}

// Empty reports whether the mesh has no tetrahedra
func (m *TetrahedralMesh) Empty() bool {
	return len(m.Tetrahedra) == 0
}

// BarycentricCoords returns the weights of the tetrahedron's vertices at pos.
// Weights sum to 1 and are all non-negative inside the tetrahedron.
func (m *TetrahedralMesh) BarycentricCoords(tet int, pos core.Vec3) core.Vec4 {
	t := &m.Tetrahedra[tet]
	local := t.matrix.Mul3x1(toMgl(pos.Subtract(m.Vertices[t.Indices[3]])))
	return core.NewVec4(local[0], local[1], local[2], 1-local[0]-local[1]-local[2])
}

// SampleLightProbeMesh locates pos by walking from the hint tetrahedron toward
// the face opposite the most negative weight. On return hint holds the tetrahedron
// the weights refer to. Points outside the mesh get the extrapolated weights of
// the last tetrahedron visited.
func (m *TetrahedralMesh) SampleLightProbeMesh(pos core.Vec3, hint *int) core.Vec4 {
	if m.Empty() {
		return core.Vec4{}
	}

	maxIters := len(m.Tetrahedra)
	if *hint < 0 || *hint >= maxIters {
		*hint = 0
	}

	for i := 0; i < maxIters; i++ {
		w := m.BarycentricCoords(*hint, pos)
		if w.X >= 0 && w.Y >= 0 && w.Z >= 0 && w.W >= 0 {
			return w
		}

		var face int
		switch {
		case w.X < w.Y && w.X < w.Z && w.X < w.W:
			face = 0
		case w.Y < w.Z && w.Y < w.W:
			face = 1
		case w.Z < w.W:
			face = 2
		default:
			face = 3
		}

		next := m.Tetrahedra[*hint].Neighbors[face]
		if next == OutsideMesh {
			return w
		}
		*hint = next
	}

	return m.BarycentricCoords(*hint, pos)
}

// Sample blends the baked SH of the probes around pos
func (m *TetrahedralMesh) Sample(bakedSH []sh.Dot9, pos core.Vec3, hint *int) sh.Dot9 {
	if m.Empty() {
		return sh.Dot9{}
	}

	weights := m.SampleLightProbeMesh(pos, hint)
	tet := &m.Tetrahedra[*hint]

	result := bakedSH[tet.Indices[0]].Scale(weights.X).
		Add(bakedSH[tet.Indices[1]].Scale(weights.Y)).
		Add(bakedSH[tet.Indices[2]].Scale(weights.Z))
	if *hint < m.NumInnerTetrahedrons {
		result = result.Add(bakedSH[tet.Indices[3]].Scale(weights.W))
	}
	return result
}
