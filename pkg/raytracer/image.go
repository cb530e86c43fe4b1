package raytracer

import (
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

// Image is a linear RGBA float image used as a diffuse texture.
// Pixels are row-major: Pixels[y*Width + x], W holds alpha.
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec4
}

// NewImage creates an image, panicking if the pixel count does not match the dimensions
func NewImage(width, height int, pixels []core.Vec4) *Image {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		panic("image pixel count must equal width*height")
	}
	return &Image{Width: width, Height: height, Pixels: pixels}
}

// At returns the pixel at (x, y)
func (img *Image) At(x, y int) core.Vec4 {
	return img.Pixels[y*img.Width+x]
}

// Nearest returns the texel nearest to uv without filtering.
// Coordinates are rounded and clamped to the image bounds, no wrapping.
func (img *Image) Nearest(uv core.Vec2) core.Vec4 {
	x := clampInt(int(math.Round(uv.X*float64(img.Width))), 0, img.Width-1)
	y := clampInt(int(math.Round(uv.Y*float64(img.Height))), 0, img.Height-1)
	return img.At(x, y)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
