package tracer

import (
	"testing"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/scene"
)

var (
	up   = core.NewVec3(0, 1, 0)
	down = core.NewVec3(0, -1, 0)
)

func testSettings() Settings {
	return Settings{
		NumTasks:                2,
		Seed:                    7,
		NumDirectSamples:        1,
		NumIndirectChartSamples: 1,
		NumIndirectProbeSamples: 1,
		NumBounces:              1,
		RayPositionOffset:       0.001,
		ShadowLeakBias:          0.001,
		ShadowLeakOffset:        0.001,
	}
}

func overheadSun() DirectionalLight {
	return DirectionalLight{Direction: down, Color: core.One3, BakeDirect: true, BakeIndirect: true}
}

// floorChart spans [0, size] in X and Z at y=0, facing up
func floorChart(size float64, width, height int) scene.QuadChart {
	return scene.QuadChart{
		Origin: core.NewVec3(0, 0, 0),
		U:      core.NewVec3(0, 0, size),
		V:      core.NewVec3(size, 0, 0),
		Width:  width,
		Height: height,
		Albedo: core.NewVec3(0.8, 0.8, 0.8),
	}
}

// horizontalChart spans [lo, hi] in X and Z at height y, facing up or down
func horizontalChart(y, lo, hi float64, facingUp bool) scene.QuadChart {
	size := hi - lo
	chart := scene.QuadChart{
		Origin: core.NewVec3(lo, y, lo),
		U:      core.NewVec3(0, 0, size),
		V:      core.NewVec3(size, 0, 0),
		Width:  1,
		Height: 1,
		Albedo: core.NewVec3(0.5, 0.5, 0.5),
	}
	if !facingUp {
		chart.U, chart.V = chart.V, chart.U
	}
	return chart
}

func opaque(chart scene.QuadChart, objectIndex int) scene.Surface {
	return scene.Surface{Chart: chart, Opaque: true, Alpha: 1, ObjectIndex: objectIndex}
}

// buildScene adds the surfaces in order; the first one is geometry 0 and chart 0
func buildScene(surfaces ...scene.Surface) *scene.Scene {
	s := scene.New()
	for _, surface := range surfaces {
		s.AddSurface(surface)
	}
	s.Preprocess()
	return s
}

func bakeDirect(s *scene.Scene, light DirectionalLight, settings Settings) []*lightmap.BakedDirect {
	baked := InitializeBakedDirect(s.Buffers)
	for i, buffer := range s.Buffers {
		BakeDirectionalLightForCharts(baked[i], buffer, s.Raytracer, s.Mapping, light, settings)
	}
	return baked
}

func assertVec3Near(t *testing.T, expected, actual core.Vec3, delta float64) {
	t.Helper()
	if actual.Subtract(expected).Length() > delta {
		t.Errorf("expected %v, got %v", expected, actual)
	}
}
