package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
	"github.com/df07/go-lightmap-baker/pkg/scene"
)

// sequenceSampler returns the given thresholds in order, repeating the last one
type sequenceSampler struct {
	values []float64
	calls  int
}

func (s *sequenceSampler) Get1D() float64 {
	value := s.values[min(s.calls, len(s.values)-1)]
	s.calls++
	return value
}

func (s *sequenceSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}

// panelHit builds a scene holding only the given panel surface and returns the scene and a hit on it
func panelHit(t *testing.T, panel scene.Surface) (*raytracer.Scene, raytracer.Hit) {
	t.Helper()
	s := buildScene(panel)
	ray := raytracer.Ray{
		Ray:   core.Ray{Origin: core.NewVec3(0.25, 5, 0.4), Direction: down},
		TNear: 0,
		TFar:  100,
		Mask:  raytracer.AllGeometry,
	}
	hit := s.Raytracer.Intersect(&ray, nil)
	require.True(t, hit.Valid())
	return s.Raytracer, hit
}

func TestIndirectFilter_AlphaTest(t *testing.T) {
	tests := []struct {
		name       string
		surface    scene.Surface
		thresholds []float64
		expected   []bool
		draws      int
	}{
		{
			name:       "Opaque always occludes",
			surface:    scene.Surface{Opaque: true, Alpha: 0},
			thresholds: []float64{0.01, 0.5, 0.99},
			expected:   []bool{true, true, true},
			draws:      0,
		},
		{
			name:       "Zero alpha is transparent",
			surface:    scene.Surface{Alpha: 0},
			thresholds: []float64{0.01, 0.5, 0.99},
			expected:   []bool{false, false, false},
			draws:      3,
		},
		{
			name:       "Full alpha occludes",
			surface:    scene.Surface{Alpha: 1},
			thresholds: []float64{0, 0.5, 0.999},
			expected:   []bool{true, true, true},
			draws:      3,
		},
		{
			name:       "Intermediate alpha compares against threshold",
			surface:    scene.Surface{Alpha: 0.4},
			thresholds: []float64{0.2, 0.4, 0.6},
			expected:   []bool{true, true, false},
			draws:      3,
		},
		{
			name: "Texture alpha cutout is transparent",
			surface: scene.Surface{
				Alpha:   1,
				Texture: raytracer.NewImage(1, 1, []core.Vec4{core.NewVec4(1, 1, 1, 0)}),
			},
			thresholds: []float64{0.01, 0.5, 0.99},
			expected:   []bool{false, false, false},
			draws:      3,
		},
		{
			name: "Texture alpha scales surface alpha",
			surface: scene.Surface{
				Alpha:   0.8,
				Texture: raytracer.NewImage(1, 1, []core.Vec4{core.NewVec4(1, 1, 1, 0.5)}),
			},
			thresholds: []float64{0.3, 0.5, 0.7},
			expected:   []bool{true, false, false},
			draws:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel := tt.surface
			panel.Chart = horizontalChart(1, -1, 2, false)
			rt, hit := panelHit(t, panel)

			sampler := &sequenceSampler{values: tt.thresholds}
			filter := NewIndirectFilter(rt, sampler)
			for i, expected := range tt.expected {
				sampler.values = tt.thresholds[i:]
				sampler.calls = 0
				candidate := hit
				assert.Equal(t, expected, filter.Accept(&candidate), "threshold %v", tt.thresholds[i])
				assert.LessOrEqual(t, sampler.calls, 1, "one threshold per candidate")
			}

			sampler.values = tt.thresholds
			sampler.calls = 0
			for range tt.thresholds {
				candidate := hit
				filter.Accept(&candidate)
			}
			assert.Equal(t, tt.draws, sampler.calls)
		})
	}
}

func TestIndirectFilter_PassRateMatchesAlpha(t *testing.T) {
	const (
		alpha = 0.3
		draws = 20000
	)
	panel := scene.Surface{Chart: horizontalChart(1, -1, 2, false), Alpha: alpha}
	rt, hit := panelHit(t, panel)

	filter := NewIndirectFilter(rt, core.NewRandomSampler(11, 3))
	passed := 0
	for i := 0; i < draws; i++ {
		candidate := hit
		if !filter.Accept(&candidate) {
			passed++
		}
	}

	assert.InDelta(t, 1-alpha, float64(passed)/draws, 0.02)
}
