// Package probe holds light probes, the tetrahedral mesh connecting them
// and the runtime sampler that interpolates baked probe lighting.
package probe

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/sh"
)

// Collection stores light probes as parallel arrays
type Collection struct {
	Positions []core.Vec3
	// BakedSH accumulates baked radiance per probe
	BakedSH []sh.Dot9
	// IndirectAverage is the mean indirect radiance seen by each probe
	IndirectAverage []core.Vec3
}

// NewCollection creates a collection with zeroed lighting
func NewCollection(positions []core.Vec3) *Collection {
	return &Collection{
		Positions:       positions,
		BakedSH:         make([]sh.Dot9, len(positions)),
		IndirectAverage: make([]core.Vec3, len(positions)),
	}
}

// Size returns the number of probes
func (c *Collection) Size() int {
	return len(c.Positions)
}

// Empty reports whether there are no probes
func (c *Collection) Empty() bool {
	return len(c.Positions) == 0
}
