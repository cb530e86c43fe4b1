package scene

import (
	"fmt"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
)

// RoomOptions configures NewRoomScene
type RoomOptions struct {
	Size          float64          // Room extent along every axis
	TexelsPerUnit int              // Lightmap density
	PanelAlpha    float64          // Opacity of the tinted glass panel
	PanelTexture  *raytracer.Image // Optional texture modulating the panel
	ProbesPerAxis int              // 0 disables probes
}

// DefaultRoomOptions returns a small room that bakes in seconds
func DefaultRoomOptions() RoomOptions {
	return RoomOptions{
		Size:          4,
		TexelsPerUnit: 8,
		PanelAlpha:    0.5,
		ProbesPerAxis: 3,
	}
}

// NewRoomScene creates an open-top room lit by the sun: a floor, two walls,
// a floating two-sided slab casting a shadow, a tinted glass panel and an emissive strip
func NewRoomScene(opts RoomOptions) (*Scene, error) {
	if opts.Size <= 0 || opts.TexelsPerUnit <= 0 {
		return nil, fmt.Errorf("room size and texel density must be positive, got %g and %d", opts.Size, opts.TexelsPerUnit)
	}

	s := New()
	s.Sun = Sun{
		Direction: core.NewVec3(0.3, -1, 0.4).Normalize(), // From the open top toward the back wall
		Color:     core.NewVec3(2.0, 1.9, 1.7),            // Warm white
	}

	size := opts.Size
	texels := func(length float64) int {
		return max(1, int(length*float64(opts.TexelsPerUnit)))
	}
	white := core.NewVec3(0.73, 0.73, 0.73)
	red := core.NewVec3(0.65, 0.05, 0.05)

	quad := func(origin, u, v, albedo core.Vec3) QuadChart {
		return QuadChart{
			Origin: origin,
			U:      u,
			V:      v,
			Width:  texels(u.Length()),
			Height: texels(v.Length()),
			Albedo: albedo,
		}
	}
	object := 0
	add := func(surface Surface) {
		surface.ObjectIndex = object
		object++
		s.AddSurface(surface)
	}

	// Floor - XZ plane at y=0, facing up
	add(Surface{Opaque: true, Alpha: 1, Chart: quad(
		core.NewVec3(0, 0, 0),    // corner
		core.NewVec3(0, 0, size), // u vector (Z direction)
		core.NewVec3(size, 0, 0), // v vector (X direction)
		white,
	)})

	// Back wall - XY plane at z=size, facing the room
	add(Surface{Opaque: true, Alpha: 1, Chart: quad(
		core.NewVec3(0, 0, size), // corner
		core.NewVec3(0, size, 0), // u vector (Y direction)
		core.NewVec3(size, 0, 0), // v vector (X direction)
		white,
	)})

	// Left wall (red) - YZ plane at x=0, facing the room
	add(Surface{Opaque: true, Alpha: 1, Chart: quad(
		core.NewVec3(0, 0, 0),    // corner
		core.NewVec3(0, size, 0), // u vector (Y direction)
		core.NewVec3(0, 0, size), // v vector (Z direction)
		red,
	)})

	// Floating slab: two quads facing away from each other
	slab := size / 4
	slabCorner := core.NewVec3(size*0.4, size*0.35, size*0.3)
	add(Surface{Opaque: true, Alpha: 1, Chart: quad(
		slabCorner,               // corner
		core.NewVec3(0, 0, slab), // u vector (Z direction)
		core.NewVec3(slab, 0, 0), // v vector (X direction)
		white,
	)})
	add(Surface{Opaque: true, Alpha: 1, Chart: quad(
		slabCorner.Subtract(core.NewVec3(0, 0.01, 0)), // corner, just below the top
		core.NewVec3(slab, 0, 0),                      // u vector (X direction)
		core.NewVec3(0, 0, slab),                      // v vector (Z direction)
		white,
	)})

	// Tinted glass panel standing on the floor
	panel := size / 3
	add(Surface{Opaque: false, Alpha: opts.PanelAlpha, Texture: opts.PanelTexture, Chart: quad(
		core.NewVec3(size*0.6, 0, size*0.75), // corner
		core.NewVec3(0, panel, 0),            // u vector (Y direction)
		core.NewVec3(panel, 0, 0),            // v vector (X direction)
		core.NewVec3(0.2, 0.4, 1.0),          // blue tint
	)})

	// Emissive strip lying on the floor along the left wall
	strip := quad(
		core.NewVec3(0.05, 0.001, 0.1), // corner, slightly above the floor
		core.NewVec3(0, 0, size-0.2),   // u vector (Z direction)
		core.NewVec3(size/16, 0, 0),    // v vector (X direction)
		core.NewVec3(0.9, 0.9, 0.9),
	)
	strip.Emission = core.NewVec3(4.0, 3.0, 1.5)
	add(Surface{Opaque: true, Alpha: 1, Chart: strip})

	if opts.ProbesPerAxis > 0 {
		margin := size / 8
		lo := core.NewVec3(margin, margin, margin)
		hi := core.NewVec3(size-margin, size-margin, size-margin)
		n := opts.ProbesPerAxis
		if err := s.AddProbeGrid(lo, hi, n, n, n); err != nil {
			return nil, err
		}
	}

	s.Preprocess()
	return s, nil
}

// NewQuadScene creates a single floor quad of one unit per texel, width texels
// along Z and height along X, with the sun straight overhead and no probes
func NewQuadScene(width, height int) *Scene {
	s := New()
	s.Sun = Sun{
		Direction: core.NewVec3(0, -1, 0),
		Color:     core.NewVec3(1, 1, 1),
	}
	s.AddSurface(Surface{Opaque: true, Alpha: 1, Chart: QuadChart{
		Origin: core.NewVec3(0, 0, 0),
		U:      core.NewVec3(0, 0, float64(width)),
		V:      core.NewVec3(float64(height), 0, 0),
		Width:  width,
		Height: height,
		Albedo: core.NewVec3(0.8, 0.8, 0.8),
	}})
	s.Preprocess()
	return s
}
