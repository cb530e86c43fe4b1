package tracer

import (
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/probe"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
	"github.com/df07/go-lightmap-baker/pkg/sh"
)

// ChartIndirectElement accumulates indirect light for one lightmap texel
type ChartIndirectElement struct {
	Position     core.Vec3
	FaceNormal   core.Vec3
	SmoothNormal core.Vec3
	GeometryID   int

	// IndirectLight holds the light sum and the sample count in W
	IndirectLight core.Vec4
}

// BeginSample starts a path in the hemisphere above the texel
func (e *ChartIndirectElement) BeginSample(sampler core.Sampler) SampleOrigin {
	return SampleOrigin{
		Position:     e.Position,
		FaceNormal:   e.FaceNormal,
		SmoothNormal: e.SmoothNormal,
		Direction:    core.RandomHemisphereDirection(e.FaceNormal, sampler),
		Albedo:       core.One3,
	}
}

// EndSample adds one sample with weight 1
func (e *ChartIndirectElement) EndSample(light core.Vec3) {
	e.IndirectLight = e.IndirectLight.Add(core.NewVec4FromVec3(light, 1))
}

// ChartIndirectKernel bakes indirect light into a chart. Texels of geometry with
// several LODs are lit from the probe mesh instead of being traced.
type ChartIndirectKernel struct {
	BakedIndirect   *lightmap.BakedIndirect
	GeometryBuffer  *lightmap.GeometryBuffer
	GeometryMapping []int // geometry buffer id -> scene geometry id
	Geometries      []raytracer.Geometry
	ProbeMesh       *probe.TetrahedralMesh
	Probes          *probe.Collection
	Settings        Settings

	// probeHint is the last tetrahedron found, private to each task copy
	probeHint int
}

// NumElements returns the number of texels
func (k *ChartIndirectKernel) NumElements() int {
	return len(k.BakedIndirect.Light)
}

// NumSamples returns the chart indirect sample count
func (k *ChartIndirectKernel) NumSamples() int {
	return k.Settings.NumIndirectChartSamples
}

// BeginElement skips empty texels and resolves multi-LOD texels from probes
func (k *ChartIndirectKernel) BeginElement(index int, element *ChartIndirectElement) bool {
	buffer := k.GeometryBuffer
	geometryID := buffer.GeometryIDs[index]
	if geometryID == 0 {
		return false
	}

	position := buffer.Positions[index]
	smoothNormal := buffer.SmoothNormals[index]
	geometry := &k.Geometries[k.GeometryMapping[geometryID]]

	if geometry.NumLods > 1 {
		if k.ProbeMesh != nil && k.Probes != nil {
			ambient := k.ProbeMesh.Sample(k.Probes.BakedSH, position, &k.probeHint)
			light := core.NewVec4FromVec3(ambient.Evaluate(smoothNormal), 1)
			k.BakedIndirect.Light[index] = k.BakedIndirect.Light[index].Add(light)
		}
		return false
	}

	faceNormal := buffer.FaceNormals[index]
	*element = ChartIndirectElement{
		Position:     position.Add(faceNormal.Multiply(k.Settings.RayPositionOffset)),
		FaceNormal:   faceNormal,
		SmoothNormal: smoothNormal,
		GeometryID:   geometryID,
	}
	return true
}

// BeginSample forwards to the element
func (k *ChartIndirectKernel) BeginSample(_ int, element *ChartIndirectElement, sampler core.Sampler) SampleOrigin {
	return element.BeginSample(sampler)
}

// EndSample forwards to the element
func (k *ChartIndirectKernel) EndSample(element *ChartIndirectElement, light core.Vec3) {
	element.EndSample(light)
}

// EndElement adds the raw sum and weight; BakedIndirect.Normalize divides later
func (k *ChartIndirectKernel) EndElement(index int, element *ChartIndirectElement) {
	k.BakedIndirect.Light[index] = k.BakedIndirect.Light[index].Add(element.IndirectLight)
}

// ProbeIndirectElement accumulates indirect light for one probe
type ProbeIndirectElement struct {
	Position core.Vec3
	// Direction of the current sample
	Direction core.Vec3

	SH      sh.Color9
	Average core.Vec3
	Weight  float64
}

// BeginSample picks a direction over the whole sphere
func (e *ProbeIndirectElement) BeginSample(sampler core.Sampler) SampleOrigin {
	e.Direction = core.RandomDirection(sampler)
	return SampleOrigin{
		Position:     e.Position,
		FaceNormal:   e.Direction,
		SmoothNormal: e.Direction,
		Direction:    e.Direction,
		Albedo:       core.One3,
	}
}

// EndSample projects light arriving along the current direction
func (e *ProbeIndirectElement) EndSample(light core.Vec3) {
	e.SH = e.SH.Add(sh.NewColor9(e.Direction, light))
	e.Average = e.Average.Add(light)
	e.Weight++
}

// ProbeIndirectKernel bakes indirect light into light probes
type ProbeIndirectKernel struct {
	Collection *probe.Collection
	Settings   Settings
}

// NumElements returns the number of probes
func (k *ProbeIndirectKernel) NumElements() int {
	return k.Collection.Size()
}

// NumSamples returns the probe indirect sample count
func (k *ProbeIndirectKernel) NumSamples() int {
	return k.Settings.NumIndirectProbeSamples
}

// BeginElement uses the raw probe position
func (k *ProbeIndirectKernel) BeginElement(index int, element *ProbeIndirectElement) bool {
	*element = ProbeIndirectElement{Position: k.Collection.Positions[index]}
	return true
}

// BeginSample forwards to the element
func (k *ProbeIndirectKernel) BeginSample(_ int, element *ProbeIndirectElement, sampler core.Sampler) SampleOrigin {
	return element.BeginSample(sampler)
}

// EndSample forwards to the element
func (k *ProbeIndirectKernel) EndSample(element *ProbeIndirectElement, light core.Vec3) {
	element.EndSample(light)
}

// EndElement scales the projection by pi/weight and records the mean radiance
func (k *ProbeIndirectKernel) EndElement(index int, element *ProbeIndirectElement) {
	if element.Weight == 0 {
		return
	}
	c := k.Collection
	c.BakedSH[index] = c.BakedSH[index].Add(sh.NewDot9(element.SH.Scale(math.Pi / element.Weight)))
	c.IndirectAverage[index] = c.IndirectAverage[index].Add(element.Average.Multiply(1 / element.Weight))
}
