package lightmap

import (
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

// BakedDirect accumulates direct light for one chart.
// SurfaceLight is the light reflected by the surface (incoming light times albedo)
// and feeds the indirect bounces.
type BakedDirect struct {
	Width  int
	Height int

	DirectLight  []core.Vec4 // RGB, W unused
	SurfaceLight []core.Vec3
	Albedo       []core.Vec3
}

// NewBakedDirect allocates zeroed buffers
func NewBakedDirect(width, height int) *BakedDirect {
	n := width * height
	return &BakedDirect{
		Width:        width,
		Height:       height,
		DirectLight:  make([]core.Vec4, n),
		SurfaceLight: make([]core.Vec3, n),
		Albedo:       make([]core.Vec3, n),
	}
}

// Location is an integer texel coordinate
type Location struct {
	X, Y int
}

// NearestLocation returns the texel containing uv, clamped to the chart
func (b *BakedDirect) NearestLocation(uv core.Vec2) Location {
	w := float64(b.Width)
	h := float64(b.Height)
	x := int(math.Floor(min(uv.X*w, w-1)))
	y := int(math.Floor(min(uv.Y*h, h-1)))
	return Location{X: max(0, x), Y: max(0, y)}
}

func (b *BakedDirect) index(location Location) int {
	return location.X + location.Y*b.Width
}

// SurfaceLightAt returns the surface light of a texel
func (b *BakedDirect) SurfaceLightAt(location Location) core.Vec3 {
	return b.SurfaceLight[b.index(location)]
}

// AlbedoAt returns the albedo of a texel
func (b *BakedDirect) AlbedoAt(location Location) core.Vec3 {
	return b.Albedo[b.index(location)]
}

// BakedIndirect accumulates indirect light for one chart.
// Light holds RGB sums and the sample weight in W until Normalize is called.
type BakedIndirect struct {
	Width  int
	Height int

	Light []core.Vec4
}

// NewBakedIndirect allocates zeroed buffers
func NewBakedIndirect(width, height int) *BakedIndirect {
	n := width * height
	return &BakedIndirect{
		Width:  width,
		Height: height,
		Light:  make([]core.Vec4, n),
	}
}

// Normalize divides every weighted texel by its weight, leaving weight 1.
// Calling it again is a no-op.
func (b *BakedIndirect) Normalize() {
	for i, value := range b.Light {
		if value.W > 0 {
			b.Light[i] = core.NewVec4(value.X/value.W, value.Y/value.W, value.Z/value.W, 1)
		}
	}
}
