package probe

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/sh"
)

// GlobalIllumination answers runtime ambient lighting queries from baked probes
type GlobalIllumination struct {
	Collection *Collection
	Mesh       *TetrahedralMesh
}

// SampleLightProbeMesh returns the barycentric weights of pos, see TetrahedralMesh.SampleLightProbeMesh
func (gi *GlobalIllumination) SampleLightProbeMesh(pos core.Vec3, hint *int) core.Vec4 {
	return gi.Mesh.SampleLightProbeMesh(pos, hint)
}

// SampleAmbientSH returns interpolated probe lighting at pos
func (gi *GlobalIllumination) SampleAmbientSH(pos core.Vec3, hint *int) sh.Dot9 {
	return gi.Mesh.Sample(gi.Collection.BakedSH, pos, hint)
}

// SampleAverageAmbient returns the direction-independent ambient at pos in gamma space
func (gi *GlobalIllumination) SampleAverageAmbient(pos core.Vec3, hint *int) core.Vec3 {
	return gi.SampleAmbientSH(pos, hint).EvaluateAverage().GammaCorrect(2.2)
}
