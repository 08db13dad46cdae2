package pipeline

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contour-sketch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func grayImage(w, h int, fill uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = fill
	}
	return img
}

// discImage is a dark disc on a light background.
func discImage(size, radius int) *image.Gray {
	img := grayImage(size, size, 200)
	c := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x-c)*(x-c)+(y-c)*(y-c) <= radius*radius {
				img.SetGray(x, y, color.Gray{Y: 40})
			}
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type svgSummary struct {
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Rect   struct {
		Fill string `xml:"fill,attr"`
	} `xml:"rect"`
	Paths []struct {
		D string `xml:"d,attr"`
	} `xml:"path"`
}

func parseSVG(t *testing.T, data []byte) svgSummary {
	t.Helper()
	var s svgSummary
	require.NoError(t, xml.Unmarshal(data, &s))
	return s
}

// failingReader fails the test if anything reads from it.
type failingReader struct{ t *testing.T }

func (r failingReader) Read([]byte) (int, error) {
	r.t.Error("input must not be read")
	return 0, errors.New("unexpected read")
}

func TestConvertUniformImageIsBackgroundOnly(t *testing.T) {
	var out bytes.Buffer
	err := NewConverter().Convert(context.Background(), bytes.NewReader(encodePNG(t, grayImage(40, 30, 128))), &out, models.DefaultConversionParams())
	require.NoError(t, err)

	s := parseSVG(t, out.Bytes())
	assert.Equal(t, "40", s.Width)
	assert.Equal(t, "30", s.Height)
	assert.Equal(t, "#000000", s.Rect.Fill)
	assert.Empty(t, s.Paths)
}

func TestConvertDiscProducesClosedPaths(t *testing.T) {
	input := encodePNG(t, discImage(64, 16))
	params := models.DefaultConversionParams()

	var first, second bytes.Buffer
	require.NoError(t, NewConverter().Convert(context.Background(), bytes.NewReader(input), &first, params))
	require.NoError(t, NewConverter().Convert(context.Background(), bytes.NewReader(input), &second, params))
	assert.Equal(t, first.Bytes(), second.Bytes(), "conversion must be deterministic")

	s := parseSVG(t, first.Bytes())
	require.NotEmpty(t, s.Paths)
	for _, p := range s.Paths {
		assert.True(t, strings.HasPrefix(p.D, "M "))
		assert.True(t, strings.HasSuffix(p.D, " Z"))
		assert.NotContains(t, p.D, "e")
	}
}

func TestConvertRejectsInvalidParametersBeforeReading(t *testing.T) {
	params := models.DefaultConversionParams()
	params.BlockSize = 10

	var out bytes.Buffer
	err := NewConverter().Convert(context.Background(), failingReader{t}, &out, params)

	var perr *models.InvalidParameterError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "block_size", perr.Name)
	assert.Zero(t, out.Len())
}

func TestConvertHighMinContourLength(t *testing.T) {
	input := encodePNG(t, discImage(64, 16))
	params := models.DefaultConversionParams()
	params.MinContourLength = 1000

	var out bytes.Buffer
	require.NoError(t, NewConverter().Convert(context.Background(), bytes.NewReader(input), &out, params))
	assert.Empty(t, parseSVG(t, out.Bytes()).Paths)

	params.RequireVisible = true
	out.Reset()
	err := NewConverter().Convert(context.Background(), bytes.NewReader(input), &out, params)
	var gerr *models.EmptyGeometryError
	assert.True(t, errors.As(err, &gerr))
	assert.Zero(t, out.Len())
}

func TestConvertUnreadableInput(t *testing.T) {
	var out bytes.Buffer
	err := NewConverter().Convert(context.Background(), strings.NewReader("definitely not an image"), &out, models.DefaultConversionParams())

	var rerr *models.ImageReadError
	assert.True(t, errors.As(err, &rerr))
	assert.Zero(t, out.Len())

	err = NewConverter().Convert(context.Background(), strings.NewReader(""), &out, models.DefaultConversionParams())
	assert.True(t, errors.As(err, &rerr))
}

func TestConvertHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewConverter().Convert(ctx, bytes.NewReader(encodePNG(t, discImage(32, 8))), &out, models.DefaultConversionParams())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}

func TestRunReportsStats(t *testing.T) {
	raster, err := ToGray(discImage(64, 16))
	require.NoError(t, err)

	res, err := NewConverter().Run(context.Background(), raster, models.DefaultConversionParams())
	require.NoError(t, err)

	assert.Equal(t, 64, res.Stats.Width)
	assert.Equal(t, res.Mask.CountForeground(), res.Stats.ForegroundPixels)
	assert.Equal(t, len(res.Contours), res.Stats.Contours)
	assert.Equal(t, len(res.Document.Paths), res.Stats.Paths)
	assert.Greater(t, res.Stats.ForegroundRatio(), 0.0)
	assert.Less(t, res.Stats.ForegroundRatio(), 1.0)
	assert.Contains(t, res.Stats.String(), "64x64")
}

func TestConvertImageUsesInjectedStages(t *testing.T) {
	stub := stubExtractor{contours: models.ContourSet{
		longPolygon(12, 0),
		longPolygon(3, 5),
		longPolygon(20, 9),
	}}
	conv := NewConverter(WithExtractor(stub))
	assert.Equal(t, "adaptive_gaussian+stub", conv.Backend())

	raster, err := ToGray(grayImage(30, 30, 90))
	require.NoError(t, err)

	doc, err := conv.ConvertImage(raster, models.DefaultConversionParams())
	require.NoError(t, err)
	require.Len(t, doc.Paths, 2)
	assert.Equal(t, 12, doc.Paths[0].Points())
	assert.Equal(t, 20, doc.Paths[1].Points())
}

type stubExtractor struct {
	contours models.ContourSet
}

func (s stubExtractor) Extract(*models.BinaryMask) (models.ContourSet, error) { return s.contours, nil }
func (s stubExtractor) Name() string                                          { return "stub" }

func longPolygon(n, y int) models.Polygon {
	p := make(models.Polygon, n)
	for i := range p {
		p[i] = models.Point{X: i, Y: y + i%2}
	}
	return p
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "disc.bmp")
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, discImage(48, 12)))
	require.NoError(t, f.Close())

	conv := NewConverter()
	params := models.DefaultConversionParams()

	res, err := conv.ConvertFile(context.Background(), in, filepath.Join(dir, "out.svg"), params)
	require.NoError(t, err)
	assert.Equal(t, "bmp", res.Raster.Format)

	data, err := os.ReadFile(filepath.Join(dir, "out.svg"))
	require.NoError(t, err)
	assert.Equal(t, "48", parseSVG(t, data).Width)

	_, err = conv.ConvertFile(context.Background(), in, filepath.Join(dir, "out.png"), params)
	require.NoError(t, err)
	pngFile, err := os.Open(filepath.Join(dir, "out.png"))
	require.NoError(t, err)
	defer pngFile.Close()
	cfg, err := png.DecodeConfig(pngFile)
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.Width)
	assert.Equal(t, 48, cfg.Height)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temp files may be left behind")
}

func TestConvertFileErrors(t *testing.T) {
	dir := t.TempDir()
	conv := NewConverter()
	params := models.DefaultConversionParams()

	_, err := conv.ConvertFile(context.Background(), filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.svg"), params)
	var rerr *models.ImageReadError
	assert.True(t, errors.As(err, &rerr))

	_, err = conv.ConvertFile(context.Background(), filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.pdf"), params)
	var perr *models.InvalidParameterError
	assert.True(t, errors.As(err, &perr))

	_, err = os.Stat(filepath.Join(dir, "out.svg"))
	assert.True(t, os.IsNotExist(err))
}
