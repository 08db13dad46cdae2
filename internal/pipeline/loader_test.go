package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGrayUsesFixedPointWeights(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(2, 0, color.NRGBA{B: 255, A: 255})
	img.Set(3, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(4, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})

	raster, err := ToGray(img)
	require.NoError(t, err)
	assert.Equal(t, []uint8{76, 150, 29, 255, 255}, raster.Pix)
}

func TestToGrayHonoursSubImageBounds(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 6, 6))
	for i := range g.Pix {
		g.Pix[i] = uint8(i)
	}
	sub := g.SubImage(image.Rect(2, 3, 5, 5)).(*image.Gray)

	raster, err := ToGray(sub)
	require.NoError(t, err)
	assert.Equal(t, 3, raster.Width)
	assert.Equal(t, 2, raster.Height)
	assert.Equal(t, []uint8{20, 21, 22, 26, 27, 28}, raster.Pix)
}

func TestLoaderDecodesPNG(t *testing.T) {
	raster, err := NewImageLoader(nil).LoadFromReader(bytes.NewReader(encodePNG(t, grayImage(7, 3, 99))), "gray.png")
	require.NoError(t, err)
	assert.Equal(t, "png", raster.Format)
	assert.Equal(t, 7, raster.Width)
	assert.Equal(t, uint8(99), raster.At(6, 2))
}

func TestIsSupportedImage(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.gif", "e.bmp", "f.tiff", "g.webp"} {
		assert.True(t, IsSupportedImage(name), name)
	}
	for _, name := range []string{"a.svg", "b", "c.txt"} {
		assert.False(t, IsSupportedImage(name), name)
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/x.SVG")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	f, err = FormatFromPath("x.png")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	_, err = FormatFromPath("x.jpg")
	assert.Error(t, err)
}
