package sh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

var axes = []core.Vec3{
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
}

// uniformRadiance projects constant radiance using the six axis directions,
// which integrate bands 0-2 exactly
func uniformRadiance(radiance core.Vec3) Color9 {
	var c Color9
	for _, axis := range axes {
		c = c.Add(NewColor9(axis, radiance))
	}
	return c.Scale(4 * math.Pi / float64(len(axes)))
}

func TestDot9_UniformRadiance(t *testing.T) {
	radiance := core.NewVec3(0.5, 1, 2)
	d := NewDot9(uniformRadiance(radiance))

	normals := []core.Vec3{
		{X: 1},
		{Y: -1},
		core.NewVec3(1, 1, 1).Normalize(),
		core.NewVec3(-0.3, 0.2, -0.9).Normalize(),
	}
	for _, n := range normals {
		got := d.Evaluate(n)
		assert.InDelta(t, radiance.X, got.X, 1e-4, "normal %v", n)
		assert.InDelta(t, radiance.Y, got.Y, 1e-4, "normal %v", n)
		assert.InDelta(t, radiance.Z, got.Z, 1e-4, "normal %v", n)
	}

	avg := d.EvaluateAverage()
	assert.InDelta(t, radiance.Z, avg.Z, 1e-4)
}

func TestDot9_DirectionalBias(t *testing.T) {
	// Light arriving from +Y is brighter on a +Y facing surface than on a -Y facing one
	d := NewDot9(NewColor9(core.NewVec3(0, 1, 0), core.One3))

	up := d.Evaluate(core.NewVec3(0, 1, 0))
	down := d.Evaluate(core.NewVec3(0, -1, 0))
	assert.Greater(t, up.X, down.X)
	assert.Equal(t, up.X, up.Z)
}

func TestColor9_AddScale(t *testing.T) {
	a := NewColor9(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0))
	sum := a.Add(a)
	assert.Equal(t, a.Scale(2), sum)

	var zero Dot9
	d := NewDot9(a)
	assert.Equal(t, d, zero.Add(d))
	assert.Equal(t, core.Zero3, d.Scale(0).Evaluate(core.NewVec3(0, 0, 1)))
}
