package tracer

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
)

// BakeEmissionLight adds emissive surfaces to the direct and surface light
// and snapshots texel albedo for the indirect bounces
func BakeEmissionLight(bakedDirect *lightmap.BakedDirect, buffer *lightmap.GeometryBuffer, settings Settings) {
	parallelFor(len(bakedDirect.DirectLight), settings.NumTasks, func(from, to int) {
		for i := from; i < to; i++ {
			if buffer.GeometryIDs[i] == 0 {
				continue
			}

			emission := buffer.Emission[i]
			bakedDirect.DirectLight[i] = bakedDirect.DirectLight[i].Add(core.NewVec4FromVec3(emission, 0))
			bakedDirect.SurfaceLight[i] = bakedDirect.SurfaceLight[i].Add(emission)
			bakedDirect.Albedo[i] = buffer.Albedo[i]
		}
	})
}
