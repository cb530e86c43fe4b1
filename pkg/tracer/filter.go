package tracer

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
)

// IsUnwantedLOD reports whether hit is a non-primary LOD of another object
// or a different LOD of the current object
func IsUnwantedLOD(current, hit *raytracer.Geometry) bool {
	hitLOD := hit.LodIndex != 0
	sameGeometry := current.ObjectIndex == hit.ObjectIndex && current.GeometryIndex == hit.GeometryIndex

	hitLODOfAnotherGeometry := !sameGeometry && hitLOD
	hitAnotherLODOfSameGeometry := sameGeometry && hit.LodIndex != current.LodIndex
	return hitLODOfAnotherGeometry || hitAnotherLODOfSameGeometry
}

// hitDiffuseTexel returns the unfiltered diffuse texel at the hit. The geometry must have an image.
func hitDiffuseTexel(scene *raytracer.Scene, geometry *raytracer.Geometry, hit *raytracer.Hit) core.Vec4 {
	uv := scene.Interpolate(hit.GeomID, hit.PrimID, hit.U, hit.V, raytracer.ChannelDiffuseUV)
	return geometry.DiffuseImage.Nearest(core.NewVec2(uv.X, uv.Y))
}

// attenuateDirect filters incoming light through a transparent surface
func attenuateDirect(scene *raytracer.Scene, geometry *raytracer.Geometry, hit *raytracer.Hit, incoming *core.Vec3) {
	color := geometry.DiffuseColor
	alpha := geometry.Alpha
	if geometry.DiffuseImage != nil {
		texel := hitDiffuseTexel(scene, geometry, hit)
		color = color.MultiplyVec(texel.Vec3())
		alpha *= texel.W
	}

	transparency := max(0, min(1, 1-alpha))
	filterIntensity := 1 - transparency
	*incoming = incoming.MultiplyVec(core.One3.Lerp(color, filterIntensity)).Multiply(transparency)
}

// LODFilter skips unwanted LODs of the current geometry. Used for preprocessing.
type LODFilter struct {
	scene   *raytracer.Scene
	current *raytracer.Geometry
}

// NewLODFilter creates a filter over the scene's geometries
func NewLODFilter(scene *raytracer.Scene) *LODFilter {
	return &LODFilter{scene: scene}
}

// SetCurrent sets the geometry rays are cast from
func (f *LODFilter) SetCurrent(geomID int) {
	f.current = f.scene.Geometry(geomID)
}

// Accept implements raytracer.Filter
func (f *LODFilter) Accept(hit *raytracer.Hit) bool {
	return !IsUnwantedLOD(f.current, f.scene.Geometry(hit.GeomID))
}

// DirectChartFilter lets direct light through transparent surfaces, attenuating
// the incoming light, and skips unwanted LODs. Opaque hits occlude.
type DirectChartFilter struct {
	scene    *raytracer.Scene
	current  *raytracer.Geometry
	incoming *core.Vec3
}

// NewDirectChartFilter creates a filter over the scene's geometries
func NewDirectChartFilter(scene *raytracer.Scene) *DirectChartFilter {
	return &DirectChartFilter{scene: scene}
}

// SetCurrent sets the geometry rays are cast from
func (f *DirectChartFilter) SetCurrent(geomID int) {
	f.current = f.scene.Geometry(geomID)
}

// SetIncoming sets the light accumulator attenuated by transparent hits
func (f *DirectChartFilter) SetIncoming(incoming *core.Vec3) {
	f.incoming = incoming
}

// Accept implements raytracer.Filter
func (f *DirectChartFilter) Accept(hit *raytracer.Hit) bool {
	geometry := f.scene.Geometry(hit.GeomID)
	if IsUnwantedLOD(f.current, geometry) {
		return false
	}
	if geometry.Opaque {
		return true
	}
	attenuateDirect(f.scene, geometry, hit, f.incoming)
	return false
}

// DirectProbeFilter is DirectChartFilter for probes: every non-primary LOD is skipped.
type DirectProbeFilter struct {
	scene    *raytracer.Scene
	incoming *core.Vec3
}

// NewDirectProbeFilter creates a filter over the scene's geometries
func NewDirectProbeFilter(scene *raytracer.Scene) *DirectProbeFilter {
	return &DirectProbeFilter{scene: scene}
}

// SetIncoming sets the light accumulator attenuated by transparent hits
func (f *DirectProbeFilter) SetIncoming(incoming *core.Vec3) {
	f.incoming = incoming
}

// Accept implements raytracer.Filter
func (f *DirectProbeFilter) Accept(hit *raytracer.Hit) bool {
	geometry := f.scene.Geometry(hit.GeomID)
	if !geometry.IsPrimaryLOD() {
		return false
	}
	if geometry.Opaque {
		return true
	}
	attenuateDirect(f.scene, geometry, hit, f.incoming)
	return false
}

// IndirectFilter applies a stochastic alpha test to transparent hits
type IndirectFilter struct {
	scene   *raytracer.Scene
	sampler core.Sampler
}

// NewIndirectFilter creates a filter drawing alpha thresholds from sampler
func NewIndirectFilter(scene *raytracer.Scene, sampler core.Sampler) *IndirectFilter {
	return &IndirectFilter{scene: scene, sampler: sampler}
}

// Accept implements raytracer.Filter
func (f *IndirectFilter) Accept(hit *raytracer.Hit) bool {
	geometry := f.scene.Geometry(hit.GeomID)
	if geometry.Opaque {
		return true
	}

	threshold := f.sampler.Get1D()
	alpha := geometry.Alpha
	if alpha < threshold {
		return false
	}
	if geometry.DiffuseImage != nil {
		alpha *= hitDiffuseTexel(f.scene, geometry, hit).W
		if alpha < threshold {
			return false
		}
	}
	return true
}
