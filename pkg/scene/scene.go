package scene

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/probe"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
)

// Scene contains all the inputs of a bake
type Scene struct {
	Geometries []raytracer.Geometry       // Indexed by geometry id
	Buffers    []*lightmap.GeometryBuffer // One chart per surface, indexed by lightmap index
	Mapping    []int                      // Geometry buffer id -> geometry id
	Probes     *probe.Collection          // Optional
	ProbeMesh  *probe.TetrahedralMesh     // Optional, built over Probes
	Sun        Sun                        // Directional light
	Raytracer  *raytracer.Scene           // Built by Preprocess
}

// Sun is a directional light. Direction is the direction light travels.
type Sun struct {
	Direction core.Vec3
	Color     core.Vec3
}

// Surface is one quad added to a scene
type Surface struct {
	Chart       QuadChart
	Opaque      bool
	Alpha       float64
	Texture     *raytracer.Image // Optional diffuse texture
	ObjectIndex int
	LodIndex    int
	NumLods     int // 0 is treated as 1
}

// New creates an empty scene
func New() *Scene {
	return &Scene{
		// Geometry buffer id 0 marks empty texels and maps nowhere
		Mapping: []int{raytracer.InvalidGeometryID},
	}
}

// AddSurface adds the surface's geometry and chart and returns its geometry id
func (s *Scene) AddSurface(surface Surface) int {
	geomID := len(s.Geometries)
	bufferID := len(s.Mapping)

	numLods := max(1, surface.NumLods)
	s.Geometries = append(s.Geometries, raytracer.Geometry{
		ObjectIndex:   surface.ObjectIndex,
		LodIndex:      surface.LodIndex,
		NumLods:       numLods,
		Opaque:        surface.Opaque,
		DiffuseColor:  surface.Chart.Albedo,
		Alpha:         surface.Alpha,
		DiffuseImage:  surface.Texture,
		LightmapIndex: len(s.Buffers),
		Mesh:          surface.Chart.Mesh(),
	})
	s.Buffers = append(s.Buffers, surface.Chart.GeometryBuffer(bufferID))
	s.Mapping = append(s.Mapping, geomID)
	return geomID
}

// AddProbeGrid replaces the scene probes with a regular grid
func (s *Scene) AddProbeGrid(lo, hi core.Vec3, nx, ny, nz int) error {
	probes, mesh, err := ProbeGrid(lo, hi, nx, ny, nz)
	if err != nil {
		return err
	}
	s.Probes = probes
	s.ProbeMesh = mesh
	return nil
}

// Preprocess builds the acceleration structure. Surfaces must not be added afterwards.
func (s *Scene) Preprocess() {
	s.Raytracer = raytracer.NewScene(s.Geometries)
}

// OccupiedTexels returns the number of texels covered by geometry over all charts
func (s *Scene) OccupiedTexels() int {
	count := 0
	for _, buffer := range s.Buffers {
		count += buffer.NumOccupied()
	}
	return count
}
