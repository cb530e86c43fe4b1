package scene

import (
	"fmt"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/probe"
)

// Kuhn split of a cube into 6 tetrahedra around the 000-111 diagonal.
// Corner c is at offset (c&1, c>>1&1, c>>2&1).
var kuhnTetrahedra = [6][4]int{
	{0, 1, 3, 7},
	{0, 1, 5, 7},
	{0, 2, 3, 7},
	{0, 2, 6, 7},
	{0, 4, 5, 7},
	{0, 4, 6, 7},
}

// ProbeGrid places nx*ny*nz probes on a regular lattice spanning [lo, hi]
// and tetrahedralizes every cell
func ProbeGrid(lo, hi core.Vec3, nx, ny, nz int) (*probe.Collection, *probe.TetrahedralMesh, error) {
	if nx < 2 || ny < 2 || nz < 2 {
		return nil, nil, fmt.Errorf("probe grid needs at least 2 probes per axis, got %dx%dx%d", nx, ny, nz)
	}

	size := hi.Subtract(lo)
	index := func(i, j, k int) int {
		return i + nx*(j+ny*k)
	}

	positions := make([]core.Vec3, 0, nx*ny*nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				positions = append(positions, core.NewVec3(
					lo.X+size.X*float64(i)/float64(nx-1),
					lo.Y+size.Y*float64(j)/float64(ny-1),
					lo.Z+size.Z*float64(k)/float64(nz-1),
				))
			}
		}
	}

	var tetrahedra [][4]int
	for k := 0; k < nz-1; k++ {
		for j := 0; j < ny-1; j++ {
			for i := 0; i < nx-1; i++ {
				var corners [8]int
				for c := range corners {
					corners[c] = index(i+(c&1), j+((c>>1)&1), k+((c>>2)&1))
				}
				for _, tet := range kuhnTetrahedra {
					tetrahedra = append(tetrahedra, [4]int{
						corners[tet[0]], corners[tet[1]], corners[tet[2]], corners[tet[3]],
					})
				}
			}
		}
	}

	mesh, err := probe.NewTetrahedralMesh(positions, tetrahedra)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build probe mesh: %w", err)
	}
	return probe.NewCollection(positions), mesh, nil
}
