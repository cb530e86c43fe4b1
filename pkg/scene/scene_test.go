package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
)

func TestQuadChart_GeometryBuffer(t *testing.T) {
	chart := QuadChart{
		Origin: core.NewVec3(0, 0, 0),
		U:      core.NewVec3(0, 0, 2),
		V:      core.NewVec3(4, 0, 0),
		Width:  2,
		Height: 4,
		Albedo: core.NewVec3(0.5, 0.5, 0.5),
	}

	buffer := chart.GeometryBuffer(3)

	assert.Equal(t, 8, buffer.NumOccupied())
	assert.Equal(t, core.NewVec3(0, 1, 0), chart.Normal())
	assert.Equal(t, core.NewVec3(0.5, 0, 1.5), buffer.Positions[buffer.Index(1, 0)])
	assert.Equal(t, 3, buffer.GeometryIDs[buffer.Index(1, 3)])
	assert.InDelta(t, 0.5*1.4142135623730951, buffer.TexelRadiuses[0], 1e-12)
	assert.Equal(t, chart.Albedo, buffer.Albedo[5])
}

func TestQuadChart_GeometryBufferPanicsOnZeroID(t *testing.T) {
	chart := QuadChart{U: core.NewVec3(1, 0, 0), V: core.NewVec3(0, 1, 0), Width: 1, Height: 1}
	assert.Panics(t, func() { chart.GeometryBuffer(0) })
}

func TestQuadChart_MeshMatchesChart(t *testing.T) {
	chart := QuadChart{
		Origin: core.NewVec3(0, 0, 0),
		U:      core.NewVec3(0, 0, 1),
		V:      core.NewVec3(1, 0, 0),
		Width:  4,
		Height: 4,
	}
	s := New()
	s.AddSurface(Surface{Chart: chart, Opaque: true, Alpha: 1})
	s.Preprocess()

	// A ray straight down through the center of texel (1, 2) lands on its lightmap UV
	center := chart.TexelCenter(1, 2)
	ray := raytracer.Ray{
		Ray:  core.Ray{Origin: center.Add(core.NewVec3(0, 1, 0)), Direction: core.NewVec3(0, -1, 0)},
		TFar: 10,
		Mask: raytracer.AllGeometry,
	}
	hit := s.Raytracer.Intersect(&ray, nil)
	require.True(t, hit.Valid())

	uv := s.Raytracer.Interpolate(hit.GeomID, hit.PrimID, hit.U, hit.V, raytracer.ChannelLightmapUV)
	assert.InDelta(t, 1.5/4, uv.X, 1e-9)
	assert.InDelta(t, 2.5/4, uv.Y, 1e-9)
	assert.InDelta(t, 1.0, hit.Ng.Y, 1e-9)
}

func TestScene_AddSurface(t *testing.T) {
	s := New()
	chart := QuadChart{U: core.NewVec3(1, 0, 0), V: core.NewVec3(0, 1, 0), Width: 2, Height: 2}

	first := s.AddSurface(Surface{Chart: chart, Opaque: true, Alpha: 1})
	second := s.AddSurface(Surface{Chart: chart, ObjectIndex: 1, LodIndex: 1, NumLods: 2})

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, []int{raytracer.InvalidGeometryID, 0, 1}, s.Mapping)
	require.Len(t, s.Buffers, 2)
	assert.Equal(t, 1, s.Buffers[0].GeometryIDs[0])
	assert.Equal(t, 2, s.Buffers[1].GeometryIDs[0])
	assert.Equal(t, 1, s.Geometries[0].NumLods)
	assert.Equal(t, 2, s.Geometries[1].NumLods)
	assert.Equal(t, 1, s.Geometries[1].LightmapIndex)
	assert.Equal(t, 8, s.OccupiedTexels())
}

func TestProbeGrid(t *testing.T) {
	probes, mesh, err := ProbeGrid(core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2), 3, 3, 3)
	require.NoError(t, err)

	assert.Equal(t, 27, probes.Size())
	assert.Len(t, mesh.Tetrahedra[:mesh.NumInnerTetrahedrons], 8*6)
	assert.Equal(t, core.NewVec3(1, 0, 0), probes.Positions[1])
	assert.Equal(t, core.NewVec3(0, 1, 0), probes.Positions[3])
	assert.Equal(t, core.NewVec3(0, 0, 1), probes.Positions[9])
	assert.Equal(t, core.NewVec3(2, 2, 2), probes.Positions[26])
}

func TestProbeGrid_TooFewProbes(t *testing.T) {
	_, _, err := ProbeGrid(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 1, 2, 2)
	assert.Error(t, err)
}

func TestNewRoomScene(t *testing.T) {
	s, err := NewRoomScene(DefaultRoomOptions())
	require.NoError(t, err)

	require.NotNil(t, s.Raytracer)
	assert.Len(t, s.Geometries, 7)
	assert.Len(t, s.Buffers, len(s.Geometries))
	assert.Equal(t, 27, s.Probes.Size())
	assert.InDelta(t, 1.0, s.Sun.Direction.Length(), 1e-12)
	assert.Greater(t, s.OccupiedTexels(), 0)

	transparent := 0
	emissive := 0
	for i, geometry := range s.Geometries {
		assert.Equal(t, i, geometry.ObjectIndex)
		if !geometry.Opaque {
			transparent++
		}
	}
	for _, buffer := range s.Buffers {
		if buffer.Emission[0] != (core.Vec3{}) {
			emissive++
		}
	}
	assert.Equal(t, 1, transparent)
	assert.Equal(t, 1, emissive)
}

func TestNewRoomScene_InvalidOptions(t *testing.T) {
	opts := DefaultRoomOptions()
	opts.TexelsPerUnit = 0
	_, err := NewRoomScene(opts)
	assert.Error(t, err)
}

func TestNewRoomScene_NoProbes(t *testing.T) {
	opts := DefaultRoomOptions()
	opts.ProbesPerAxis = 0
	s, err := NewRoomScene(opts)
	require.NoError(t, err)
	assert.Nil(t, s.Probes)
	assert.Nil(t, s.ProbeMesh)
}

func TestRegistry(t *testing.T) {
	scenes := ListScenes()
	require.Len(t, scenes, 2)
	assert.Equal(t, "quad", scenes[0].ID)
	assert.Equal(t, "room", scenes[1].ID)

	for _, info := range scenes {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewSceneByID(info.ID, DefaultRoomOptions())
			require.NoError(t, err)
			assert.NotEmpty(t, s.Geometries)
			assert.NotNil(t, s.Raytracer)
		})
	}

	_, err := NewSceneByID("missing", DefaultRoomOptions())
	assert.Error(t, err)
}
