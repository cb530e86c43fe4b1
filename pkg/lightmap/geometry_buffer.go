// Package lightmap holds the per-chart buffers consumed and produced by baking.
package lightmap

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
)

// GeometryBuffer is the rasterized surface of one lightmap chart.
// All slices are indexed by texel (x + y*Width). GeometryIDs of 0 mark empty texels.
type GeometryBuffer struct {
	Width  int
	Height int

	GeometryIDs   []int
	Positions     []core.Vec3
	FaceNormals   []core.Vec3
	SmoothNormals []core.Vec3
	TexelRadiuses []float64
	Albedo        []core.Vec3
	Emission      []core.Vec3
}

// NewGeometryBuffer allocates an empty buffer
func NewGeometryBuffer(width, height int) *GeometryBuffer {
	n := width * height
	return &GeometryBuffer{
		Width:         width,
		Height:        height,
		GeometryIDs:   make([]int, n),
		Positions:     make([]core.Vec3, n),
		FaceNormals:   make([]core.Vec3, n),
		SmoothNormals: make([]core.Vec3, n),
		TexelRadiuses: make([]float64, n),
		Albedo:        make([]core.Vec3, n),
		Emission:      make([]core.Vec3, n),
	}
}

// NumTexels returns Width*Height
func (b *GeometryBuffer) NumTexels() int {
	return b.Width * b.Height
}

// Index returns the texel index of (x, y)
func (b *GeometryBuffer) Index(x, y int) int {
	return x + y*b.Width
}

// NumOccupied counts texels with a geometry assigned
func (b *GeometryBuffer) NumOccupied() int {
	count := 0
	for _, id := range b.GeometryIDs {
		if id != 0 {
			count++
		}
	}
	return count
}
