package tracer

import (
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/probe"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
	"github.com/df07/go-lightmap-baker/pkg/sh"
)

// ChartDirectElement accumulates direct light for one lightmap texel
type ChartDirectElement struct {
	Position     core.Vec3
	SmoothNormal core.Vec3
	GeometryID   int

	DirectLight core.Vec3
}

// EndSample adds cosine-weighted light arriving from direction
func (e *ChartDirectElement) EndSample(light, direction core.Vec3) {
	intensity := max(0, e.SmoothNormal.Dot(direction))
	e.DirectLight = e.DirectLight.Add(light.Multiply(intensity))
}

// ChartDirectKernel bakes direct light into a chart
type ChartDirectKernel struct {
	BakedDirect     *lightmap.BakedDirect
	GeometryBuffer  *lightmap.GeometryBuffer
	GeometryMapping []int // geometry buffer id -> scene geometry id
	Settings        Settings
	BakeDirect      bool
	BakeIndirect    bool
}

// NumElements returns the number of texels
func (k *ChartDirectKernel) NumElements() int {
	return len(k.BakedDirect.DirectLight)
}

// NumSamples returns the direct sample count
func (k *ChartDirectKernel) NumSamples() int {
	return k.Settings.NumDirectSamples
}

// NewFilter creates the per-task filter
func (k *ChartDirectKernel) NewFilter(scene *raytracer.Scene) *DirectChartFilter {
	return NewDirectChartFilter(scene)
}

// BeginElement skips empty texels and offsets the receiver off the surface
func (k *ChartDirectKernel) BeginElement(index int, filter *DirectChartFilter, element *ChartDirectElement) bool {
	geometryID := k.GeometryBuffer.GeometryIDs[index]
	if geometryID == 0 {
		return false
	}
	filter.SetCurrent(k.GeometryMapping[geometryID])

	position := k.GeometryBuffer.Positions[index]
	faceNormal := k.GeometryBuffer.FaceNormals[index]
	*element = ChartDirectElement{
		Position:     position.Add(faceNormal.Multiply(k.Settings.RayPositionOffset)),
		SmoothNormal: k.GeometryBuffer.SmoothNormals[index],
		GeometryID:   geometryID,
	}
	return true
}

// BeginSample returns the receiver position
func (k *ChartDirectKernel) BeginSample(_ int, element *ChartDirectElement, filter *DirectChartFilter, incoming *core.Vec3) core.Vec3 {
	filter.SetIncoming(incoming)
	return element.Position
}

// EndSample forwards to the element
func (k *ChartDirectKernel) EndSample(element *ChartDirectElement, light, direction core.Vec3) {
	element.EndSample(light, direction)
}

// EndElement averages the samples into the chart buffers
func (k *ChartDirectKernel) EndElement(index int, element *ChartDirectElement) {
	numSamples := k.NumSamples()
	if numSamples == 0 {
		return
	}
	directLight := element.DirectLight.Multiply(1 / float64(numSamples))

	if k.BakeDirect {
		k.BakedDirect.DirectLight[index] = k.BakedDirect.DirectLight[index].Add(core.NewVec4FromVec3(directLight, 0))
	}
	if k.BakeIndirect {
		albedo := k.GeometryBuffer.Albedo[index]
		k.BakedDirect.SurfaceLight[index] = k.BakedDirect.SurfaceLight[index].Add(albedo.MultiplyVec(directLight))
	}
}

// ProbeDirectElement accumulates direct light for one probe
type ProbeDirectElement struct {
	Position core.Vec3
	SH       sh.Color9
}

// EndSample projects light arriving from direction
func (e *ProbeDirectElement) EndSample(light, direction core.Vec3) {
	e.SH = e.SH.Add(sh.NewColor9(direction, light))
}

// ProbeDirectKernel bakes direct light into light probes
type ProbeDirectKernel struct {
	Collection *probe.Collection
	Settings   Settings
	BakeDirect bool
}

// NumElements returns the number of probes
func (k *ProbeDirectKernel) NumElements() int {
	return k.Collection.Size()
}

// NumSamples returns the direct sample count
func (k *ProbeDirectKernel) NumSamples() int {
	return k.Settings.NumDirectSamples
}

// NewFilter creates the per-task filter
func (k *ProbeDirectKernel) NewFilter(scene *raytracer.Scene) *DirectProbeFilter {
	return NewDirectProbeFilter(scene)
}

// BeginElement uses the raw probe position
func (k *ProbeDirectKernel) BeginElement(index int, _ *DirectProbeFilter, element *ProbeDirectElement) bool {
	*element = ProbeDirectElement{Position: k.Collection.Positions[index]}
	return true
}

// BeginSample returns the probe position
func (k *ProbeDirectKernel) BeginSample(_ int, element *ProbeDirectElement, filter *DirectProbeFilter, incoming *core.Vec3) core.Vec3 {
	filter.SetIncoming(incoming)
	return element.Position
}

// EndSample forwards to the element
func (k *ProbeDirectKernel) EndSample(element *ProbeDirectElement, light, direction core.Vec3) {
	element.EndSample(light, direction)
}

// EndElement scales the projection by pi/N and adds it to the probe
func (k *ProbeDirectKernel) EndElement(index int, element *ProbeDirectElement) {
	numSamples := k.NumSamples()
	if !k.BakeDirect || numSamples == 0 {
		return
	}
	weight := math.Pi / float64(numSamples)
	k.Collection.BakedSH[index] = k.Collection.BakedSH[index].Add(sh.NewDot9(element.SH.Scale(weight)))
}
