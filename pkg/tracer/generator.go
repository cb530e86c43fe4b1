package tracer

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
)

// LightGenerator provides emitted light and the direction light travels for a receiving position
type LightGenerator interface {
	LightIntensity(position core.Vec3) core.Vec3
	RayDirection(position core.Vec3) core.Vec3
}

// DirectionalGenerator models an infinitely distant light
type DirectionalGenerator struct {
	Color     core.Vec3
	Direction core.Vec3 // direction light travels, normalized
}

// LightIntensity implements LightGenerator
func (g DirectionalGenerator) LightIntensity(core.Vec3) core.Vec3 {
	return g.Color
}

// RayDirection implements LightGenerator
func (g DirectionalGenerator) RayDirection(core.Vec3) core.Vec3 {
	return g.Direction
}

// DirectionalLight describes a directional light to bake
type DirectionalLight struct {
	Direction core.Vec3 `yaml:"direction"`
	Color     core.Vec3 `yaml:"color"`
	// BakeDirect stores the light into DirectLight and probe SH
	BakeDirect bool `yaml:"bakeDirect"`
	// BakeIndirect stores the reflected light into SurfaceLight for bounces
	BakeIndirect bool `yaml:"bakeIndirect"`
}

func (l DirectionalLight) generator() DirectionalGenerator {
	return DirectionalGenerator{Color: l.Color, Direction: l.Direction.Normalize()}
}
