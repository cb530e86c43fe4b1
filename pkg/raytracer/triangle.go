package raytracer

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
)

// triangle is a single scene primitive referencing its source geometry
type triangle struct {
	V0, V1, V2 core.Vec3
	GeomID     int
	PrimID     int
	mask       uint32
	normal     core.Vec3 // cached normalized (V1-V0)x(V2-V0)
	bbox       AABB
	centroid   core.Vec3
}

func newTriangle(v0, v1, v2 core.Vec3, geomID, primID int, mask uint32) triangle {
	return triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		GeomID:   geomID,
		PrimID:   primID,
		mask:     mask,
		normal:   v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
		bbox:     NewAABBFromPoints(v0, v1, v2),
		centroid: v0.Add(v1).Add(v2).Multiply(1.0 / 3.0),
	}
}

// intersect tests the ray against the triangle using the Moller-Trumbore algorithm.
// u and v are the barycentric weights of V1 and V2.
func (t *triangle) intersect(ray *Ray, tMin, tMax float64) (tHit, u, v float64, ok bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the triangle plane
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u = f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	tHit = f * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return 0, 0, 0, false
	}

	return tHit, u, v, true
}
