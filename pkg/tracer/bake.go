package tracer

import (
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/probe"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
)

// InitializeBakedDirect allocates one zeroed direct buffer per chart
func InitializeBakedDirect(buffers []*lightmap.GeometryBuffer) []*lightmap.BakedDirect {
	result := make([]*lightmap.BakedDirect, len(buffers))
	for i, buffer := range buffers {
		result[i] = lightmap.NewBakedDirect(buffer.Width, buffer.Height)
	}
	return result
}

// InitializeBakedIndirect allocates one zeroed indirect buffer per chart
func InitializeBakedIndirect(buffers []*lightmap.GeometryBuffer) []*lightmap.BakedIndirect {
	result := make([]*lightmap.BakedIndirect, len(buffers))
	for i, buffer := range buffers {
		result[i] = lightmap.NewBakedIndirect(buffer.Width, buffer.Height)
	}
	return result
}

// BakeDirectionalLightForCharts accumulates a directional light into a chart
func BakeDirectionalLightForCharts(bakedDirect *lightmap.BakedDirect, buffer *lightmap.GeometryBuffer,
	scene *raytracer.Scene, mapping []int, light DirectionalLight, settings Settings) {

	kernel := ChartDirectKernel{
		BakedDirect:     bakedDirect,
		GeometryBuffer:  buffer,
		GeometryMapping: mapping,
		Settings:        settings,
		BakeDirect:      light.BakeDirect,
		BakeIndirect:    light.BakeIndirect,
	}
	TraceDirectLight[ChartDirectElement, *DirectChartFilter](kernel, light.generator(), scene, settings)
}

// BakeDirectionalLightForLightProbes accumulates a directional light into probes
func BakeDirectionalLightForLightProbes(collection *probe.Collection, scene *raytracer.Scene,
	light DirectionalLight, settings Settings) {

	kernel := ProbeDirectKernel{
		Collection: collection,
		Settings:   settings,
		BakeDirect: light.BakeDirect,
	}
	TraceDirectLight[ProbeDirectElement, *DirectProbeFilter](kernel, light.generator(), scene, settings)
}

// BakeIndirectLightForCharts accumulates indirect light into a chart. The probe
// mesh and collection may be nil when no geometry has more than one LOD.
func BakeIndirectLightForCharts(bakedIndirect *lightmap.BakedIndirect, bakedDirect []*lightmap.BakedDirect,
	buffer *lightmap.GeometryBuffer, probeMesh *probe.TetrahedralMesh, probes *probe.Collection,
	scene *raytracer.Scene, mapping []int, settings Settings) {

	kernel := ChartIndirectKernel{
		BakedIndirect:   bakedIndirect,
		GeometryBuffer:  buffer,
		GeometryMapping: mapping,
		Geometries:      scene.Geometries(),
		ProbeMesh:       probeMesh,
		Probes:          probes,
		Settings:        settings,
	}
	TraceIndirectLight[ChartIndirectElement](kernel, bakedDirect, scene, settings)
}

// BakeIndirectLightForLightProbes accumulates indirect light into probes
func BakeIndirectLightForLightProbes(collection *probe.Collection, bakedDirect []*lightmap.BakedDirect,
	scene *raytracer.Scene, settings Settings) {

	kernel := ProbeIndirectKernel{
		Collection: collection,
		Settings:   settings,
	}
	TraceIndirectLight[ProbeIndirectElement](kernel, bakedDirect, scene, settings)
}
