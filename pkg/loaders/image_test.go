package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255}) // white
	img.Set(1, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})     // red
	img.Set(0, 1, color.NRGBA{R: 0, G: 255, B: 0, A: 255})     // green
	img.Set(1, 1, color.NRGBA{R: 0, G: 0, B: 255, A: 255})     // blue
	return img
}

func assertColor(t *testing.T, expected, got core.Vec4) {
	t.Helper()
	const tolerance = 0.01
	assert.InDelta(t, expected.X, got.X, tolerance, "red of %v", got)
	assert.InDelta(t, expected.Y, got.Y, tolerance, "green of %v", got)
	assert.InDelta(t, expected.Z, got.Z, tolerance, "blue of %v", got)
	assert.InDelta(t, expected.W, got.W, tolerance, "alpha of %v", got)
}

func TestLoadImage_Formats(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{name: "PNG", file: "test.png", encode: png.Encode},
		{name: "BMP", file: "test.bmp", encode: bmp.Encode},
		{name: "TIFF", file: "test.tiff", encode: func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), tt.file)
			f, err := os.Create(testFile)
			require.NoError(t, err)
			require.NoError(t, tt.encode(f, testImage()))
			require.NoError(t, f.Close())

			img, err := LoadImage(testFile)
			require.NoError(t, err)

			assert.Equal(t, 2, img.Width)
			assert.Equal(t, 2, img.Height)
			assertColor(t, core.NewVec4(1, 1, 1, 1), img.At(0, 0))
			assertColor(t, core.NewVec4(1, 0, 0, 1), img.At(1, 0))
			assertColor(t, core.NewVec4(0, 1, 0, 1), img.At(0, 1))
			assertColor(t, core.NewVec4(0, 0, 1, 1), img.At(1, 1))
		})
	}
}

func TestDecodeImage_KeepsStraightAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 255, G: 128, B: 0, A: 64})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	decoded, err := DecodeImage(&buf)
	require.NoError(t, err)
	assertColor(t, core.NewVec4(1, 128.0/255, 0, 64.0/255), decoded.At(0, 0))
}

func TestLoadImage_Errors(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = LoadImage(garbage)
	assert.Error(t, err)
}
