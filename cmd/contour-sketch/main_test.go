package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"contour-sketch/internal/models"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDisc(t *testing.T, path string, size int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, size, size))
	c, r := size/2, size/4
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(220)
			if (x-c)*(x-c)+(y-c)*(y-c) <= r*r {
				v = 20
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "disc.png")
	out := filepath.Join(dir, "disc.svg")
	writeDisc(t, in, 64)

	stdout, err := run(t, "convert", in, out, "--stroke-color", "#FF0000", "--stroke-width", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "disc.svg")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `stroke="#FF0000"`)
	assert.Contains(t, string(data), `stroke-width="2"`)

	pngOut := filepath.Join(dir, "disc.png.out.png")
	_, err = run(t, "convert", in, pngOut, "--scale", "2")
	require.NoError(t, err)
	f, err := os.Open(pngOut)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Width)
}

func TestConvertCommandRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "disc.png")
	writeDisc(t, in, 32)

	_, err := run(t, "convert", in, filepath.Join(dir, "out.svg"), "--threshold-block-size", "4")
	assert.ErrorContains(t, err, "block_size")

	_, err = run(t, "convert", in, filepath.Join(dir, "out.jpg"))
	assert.ErrorContains(t, err, "output")

	_, err = run(t, "--backend", "magic", "convert", in, filepath.Join(dir, "out.svg"))
	assert.ErrorContains(t, err, "unknown backend")

	_, err = run(t, "convert", in)
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeDisc(t, filepath.Join(src, "a.png"), 48)
	writeDisc(t, filepath.Join(src, "b.png"), 40)
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("skip me"), 0o644))

	stdout, err := run(t, "batch", src, dst, "--jobs", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "a.svg")
	assert.Contains(t, stdout, "b.svg")

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, os.WriteFile(filepath.Join(src, "broken.png"), []byte("nope"), 0o644))
	_, err = run(t, "batch", src, dst)
	assert.ErrorContains(t, err, "1 of 3 images failed")

	_, err = run(t, "batch", src, dst, "--jobs", "0")
	assert.Error(t, err)

	_, err = run(t, "batch", t.TempDir(), dst)
	assert.ErrorContains(t, err, "no supported images")
}

func TestRasterizeCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "disc.png")
	svgPath := filepath.Join(dir, "disc.svg")
	pngPath := filepath.Join(dir, "raster.png")
	writeDisc(t, in, 50)

	_, err := run(t, "convert", in, svgPath)
	require.NoError(t, err)

	stdout, err := run(t, "rasterize", svgPath, pngPath, "--dpi", "192")
	require.NoError(t, err)
	assert.Contains(t, stdout, "100x100")

	_, err = run(t, "rasterize", svgPath, pngPath, "--dpi", "0")
	assert.Error(t, err)
}

func TestParamFlagsApplyOnlyChanged(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	pf := addParamFlags(fs)
	require.NoError(t, fs.Parse([]string{"--threshold-c", "-3", "--require-visible"}))

	base := models.DefaultConversionParams()
	base.StrokeColor = "#00FF00"

	got := pf.apply(fs, base)
	assert.Equal(t, -3, got.ThresholdC)
	assert.True(t, got.RequireVisible)
	assert.Equal(t, "#00FF00", got.StrokeColor)
	assert.Equal(t, base.BlockSize, got.BlockSize)
}
