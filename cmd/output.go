package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/df07/go-lightmap-baker/pkg/baker"
)

const outputGamma = 2.2

// WriteLightmaps saves one PNG per chart with direct plus indirect light,
// clamped and gamma corrected, and returns the file names
func WriteLightmaps(dir string, result *baker.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var files []string
	for chart, direct := range result.Direct {
		indirect := result.Indirect[chart]
		img := image.NewNRGBA(image.Rect(0, 0, direct.Width, direct.Height))
		for y := 0; y < direct.Height; y++ {
			for x := 0; x < direct.Width; x++ {
				i := x + y*direct.Width
				light := direct.DirectLight[i].Vec3().Add(indirect.Light[i].Vec3())
				c := light.Clamp(0, 1).GammaCorrect(outputGamma)
				img.SetNRGBA(x, y, color.NRGBA{
					R: uint8(c.X*255 + 0.5),
					G: uint8(c.Y*255 + 0.5),
					B: uint8(c.Z*255 + 0.5),
					A: 255,
				})
			}
		}

		filename := filepath.Join(dir, fmt.Sprintf("chart_%02d.png", chart))
		if err := writePNG(filename, img); err != nil {
			return files, err
		}
		files = append(files, filename)
	}
	return files, nil
}

func writePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return file.Close()
}
