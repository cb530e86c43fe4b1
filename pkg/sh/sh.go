// Package sh provides third-order (9 coefficient) spherical harmonics for RGB radiance.
package sh

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
)

// Real SH basis constants for bands 0-2
const (
	y00  = 0.282095 // 1/(2*sqrt(pi))
	y1m  = 0.488603 // sqrt(3/(4*pi))
	y2xy = 1.092548 // sqrt(15/(4*pi))
	y20  = 0.315392 // sqrt(5/(16*pi))
	y22  = 0.546274 // sqrt(15/(16*pi))
)

// Cosine-lobe convolution per band divided by pi, so Dot9 evaluates to
// diffusely reflected radiance for unit albedo
const (
	band0 = 1.0
	band1 = 2.0 / 3.0
	band2 = 1.0 / 4.0
)

// basis evaluates the nine SH basis functions in direction d
func basis(d core.Vec3) [9]float64 {
	return [9]float64{
		y00,
		y1m * d.Y,
		y1m * d.Z,
		y1m * d.X,
		y2xy * d.X * d.Y,
		y2xy * d.Y * d.Z,
		y20 * (3*d.Z*d.Z - 1),
		y2xy * d.X * d.Z,
		y22 * (d.X*d.X - d.Y*d.Y),
	}
}

// Color9 accumulates projected radiance: coefficient i is the sum of Y_i(direction)*color
type Color9 struct {
	Coefficients [9]core.Vec3
}

// NewColor9 projects a single colored direction
func NewColor9(direction, color core.Vec3) Color9 {
	var c Color9
	for i, y := range basis(direction) {
		c.Coefficients[i] = color.Multiply(y)
	}
	return c
}

// Add returns the coefficient-wise sum
func (c Color9) Add(other Color9) Color9 {
	for i := range c.Coefficients {
		c.Coefficients[i] = c.Coefficients[i].Add(other.Coefficients[i])
	}
	return c
}

// Scale returns the coefficients multiplied by s
func (c Color9) Scale(s float64) Color9 {
	for i := range c.Coefficients {
		c.Coefficients[i] = c.Coefficients[i].Multiply(s)
	}
	return c
}

// Dot9 is the evaluation form of Color9: the basis constants and the cosine
// convolution are folded in, so Evaluate is a dot product with a polynomial of the normal.
type Dot9 struct {
	Coefficients [9]core.Vec3
}

// NewDot9 converts a projection into the evaluation form
func NewDot9(c Color9) Dot9 {
	factors := [9]float64{
		y00 * band0,
		y1m * band1, y1m * band1, y1m * band1,
		y2xy * band2, y2xy * band2, y20 * band2, y2xy * band2, y22 * band2,
	}

	var d Dot9
	for i := range d.Coefficients {
		d.Coefficients[i] = c.Coefficients[i].Multiply(factors[i])
	}
	return d
}

// Add returns the coefficient-wise sum
func (d Dot9) Add(other Dot9) Dot9 {
	for i := range d.Coefficients {
		d.Coefficients[i] = d.Coefficients[i].Add(other.Coefficients[i])
	}
	return d
}

// Scale returns the coefficients multiplied by s
func (d Dot9) Scale(s float64) Dot9 {
	for i := range d.Coefficients {
		d.Coefficients[i] = d.Coefficients[i].Multiply(s)
	}
	return d
}

// Evaluate returns the diffuse radiance for a surface with the given unit normal
func (d Dot9) Evaluate(n core.Vec3) core.Vec3 {
	p := [9]float64{
		1,
		n.Y, n.Z, n.X,
		n.X * n.Y, n.Y * n.Z, 3*n.Z*n.Z - 1, n.X * n.Z, n.X*n.X - n.Y*n.Y,
	}

	var result core.Vec3
	for i, k := range d.Coefficients {
		result = result.Add(k.Multiply(p[i]))
	}
	return result
}

// EvaluateAverage returns the direction-independent average
func (d Dot9) EvaluateAverage() core.Vec3 {
	return d.Coefficients[0]
}
