package raytracer

import (
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

// InvalidGeometryID marks a ray that hit nothing
const InvalidGeometryID = -1

// Ray is a ray query: a segment [TNear, TFar] along Direction, restricted to geometries matching Mask
type Ray struct {
	core.Ray
	TNear float64
	TFar  float64
	Mask  uint32
}

// Hit describes the closest accepted intersection
type Hit struct {
	GeomID int
	PrimID int
	U, V   float64   // barycentric weights of the second and third vertex
	T      float64   // distance along the ray direction
	Ng     core.Vec3 // normalized geometric normal, (v1-v0)x(v2-v0)
}

// Valid reports whether the hit refers to a geometry
func (h Hit) Valid() bool {
	return h.GeomID != InvalidGeometryID
}

// Filter is invoked for each candidate hit before it is accepted.
// Returning false discards the candidate and traversal continues.
type Filter interface {
	Accept(hit *Hit) bool
}

// bvhNode represents a node in the Bounding Volume Hierarchy
type bvhNode struct {
	bbox      AABB
	left      *bvhNode
	right     *bvhNode
	triangles []triangle // non-nil for leaf nodes
}

// Leaf threshold: if we have this many or fewer triangles, store them in a leaf node
const leafThreshold = 8

// Scene is a read-only ray-traceable index over the geometries' triangles.
// It is safe for concurrent use once built.
type Scene struct {
	geometries  []Geometry
	root        *bvhNode
	bounds      AABB
	maxDistance float64
}

// NewScene builds the acceleration structure. Geometry IDs are indices into geometries.
func NewScene(geometries []Geometry) *Scene {
	var triangles []triangle
	for geomID := range geometries {
		g := &geometries[geomID]
		g.validate()
		mask := g.Mask()
		for primID := 0; primID < g.Mesh.NumTriangles(); primID++ {
			i0, i1, i2 := g.Mesh.Indices[primID*3], g.Mesh.Indices[primID*3+1], g.Mesh.Indices[primID*3+2]
			triangles = append(triangles, newTriangle(
				g.Mesh.Positions[i0], g.Mesh.Positions[i1], g.Mesh.Positions[i2], geomID, primID, mask))
		}
	}

	scene := &Scene{geometries: geometries, maxDistance: 1}
	if len(triangles) > 0 {
		scene.root = buildBVH(triangles)
		scene.bounds = scene.root.bbox
		scene.maxDistance = max(1, scene.bounds.Size().Length())
	}
	return scene
}

// Geometries returns the geometry index; callers must not modify it
func (s *Scene) Geometries() []Geometry {
	return s.geometries
}

// Geometry returns the geometry with the given id
func (s *Scene) Geometry(geomID int) *Geometry {
	return &s.geometries[geomID]
}

// Bounds returns the scene bounding box
func (s *Scene) Bounds() AABB {
	return s.bounds
}

// MaxDistance returns a distance no ray inside the scene needs to exceed (the bounding box diagonal, at least 1)
func (s *Scene) MaxDistance() float64 {
	return s.maxDistance
}

// Intersect finds the closest hit along the ray accepted by filter (nil accepts everything).
// The returned hit has GeomID == InvalidGeometryID when nothing was accepted.
// Each surface point is offered to the filter once, even where the ray crosses
// an edge or vertex shared by several triangles of the same geometry.
func (s *Scene) Intersect(ray *Ray, filter Filter) Hit {
	tr := traversal{
		ray:     ray,
		filter:  filter,
		closest: ray.TFar,
		hit:     Hit{GeomID: InvalidGeometryID, PrimID: InvalidGeometryID},
	}
	if s.root == nil {
		return tr.hit
	}

	tr.offered = tr.buf[:0]
	tr.hitNode(s.root)
	return tr.hit
}

// offeredHit identifies a surface point already passed to the filter
type offeredHit struct {
	geomID int
	t      float64
}

// traversal is the per-ray state of a BVH walk
type traversal struct {
	ray     *Ray
	filter  Filter
	closest float64
	hit     Hit
	offered []offeredHit
	buf     [4]offeredHit
}

// sameHitEpsilon is the relative distance under which two candidates on one geometry are the same point
const sameHitEpsilon = 1e-9

// seen reports whether a candidate at distance t on geomID was already offered, and records it otherwise
func (tr *traversal) seen(geomID int, t float64) bool {
	eps := sameHitEpsilon * max(1, t)
	for _, o := range tr.offered {
		if o.geomID == geomID && math.Abs(o.t-t) <= eps {
			return true
		}
	}
	tr.offered = append(tr.offered, offeredHit{geomID: geomID, t: t})
	return false
}

// hitNode recursively tests ray intersection with BVH nodes
func (tr *traversal) hitNode(node *bvhNode) {
	ray := tr.ray
	if !node.bbox.Hit(ray, ray.TNear, tr.closest) {
		return
	}

	if node.triangles != nil {
		for i := range node.triangles {
			tri := &node.triangles[i]
			if tri.mask&ray.Mask == 0 {
				continue
			}
			t, u, v, ok := tri.intersect(ray, ray.TNear, tr.closest)
			if !ok || tr.seen(tri.GeomID, t) {
				continue
			}

			candidate := Hit{GeomID: tri.GeomID, PrimID: tri.PrimID, U: u, V: v, T: t, Ng: tri.normal}
			if tr.filter != nil && !tr.filter.Accept(&candidate) {
				continue
			}

			tr.hit = candidate
			tr.closest = t
		}
		return
	}

	// Visit the nearer child first so the far one is more likely culled by the shrunk interval
	first, second := node.left, node.right
	if axisOf(ray.Direction, node.bbox.LongestAxis()) < 0 {
		first, second = second, first
	}
	tr.hitNode(first)
	tr.hitNode(second)
}

// buildBVH recursively builds the BVH using median splits along the longest axis
func buildBVH(triangles []triangle) *bvhNode {
	bbox := triangles[0].bbox
	for i := 1; i < len(triangles); i++ {
		bbox = bbox.Union(triangles[i].bbox)
	}

	if len(triangles) <= leafThreshold {
		return &bvhNode{bbox: bbox, triangles: triangles}
	}

	axis := bbox.LongestAxis()
	lo, hi := axisOf(bbox.Min, axis), axisOf(bbox.Max, axis)
	if hi <= lo {
		return &bvhNode{bbox: bbox, triangles: triangles}
	}

	splitPos := (lo + hi) * 0.5
	left, right := partitionTriangles(triangles, axis, splitPos)

	// Ensure we don't create empty partitions
	if len(left) == 0 || len(right) == 0 {
		return &bvhNode{bbox: bbox, triangles: triangles}
	}

	return &bvhNode{
		bbox:  bbox,
		left:  buildBVH(left),
		right: buildBVH(right),
	}
}

// partitionTriangles partitions triangles by centroid against the split position
func partitionTriangles(triangles []triangle, axis int, splitPos float64) ([]triangle, []triangle) {
	var left, right []triangle
	for _, tri := range triangles {
		if axisOf(tri.centroid, axis) < splitPos {
			left = append(left, tri)
		} else {
			right = append(right, tri)
		}
	}
	return left, right
}
