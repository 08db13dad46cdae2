// Package render produces raster previews of vector documents.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"contour-sketch/internal/models"

	"github.com/gogpu/gg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// BaseDPI is the resolution at which one SVG user unit equals one pixel.
const BaseDPI = 96.0

// DefaultDPI matches the PNG export of the web interface.
const DefaultDPI = 300.0

// RenderDocument draws doc with the software renderer, scaled by scale.
func RenderDocument(doc *models.VectorDocument, scale float64) (image.Image, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, &models.InvalidParameterError{Name: "scale", Value: scale, Reason: "must be a positive finite number"}
	}

	w, h := scaled(doc.Width, scale), scaled(doc.Height, scale)
	if err := models.ValidateDimensions(w, h, "render"); err != nil {
		return nil, err
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()

	bg := doc.Background
	dc.SetColor(bg.Fill)
	dc.DrawRectangle(float64(bg.X)*scale, float64(bg.Y)*scale, float64(bg.Width)*scale, float64(bg.Height)*scale)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("failed to fill background: %w", err)
	}

	for i, p := range doc.Paths {
		for _, cmd := range p.Commands {
			switch cmd.Op {
			case models.MoveTo:
				dc.MoveTo(float64(cmd.X)*scale, float64(cmd.Y)*scale)
			case models.LineTo:
				dc.LineTo(float64(cmd.X)*scale, float64(cmd.Y)*scale)
			case models.ClosePath:
				dc.ClosePath()
			}
		}
		dc.SetColor(p.Stroke)
		dc.SetLineWidth(p.StrokeWidth * scale)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("failed to stroke path %d: %w", i, err)
		}
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("failed to flush renderer: %w", err)
	}
	return dc.Image(), nil
}

// RasterizeSVG parses an SVG stream and renders it at dpi, where BaseDPI maps
// one user unit to one pixel.
func RasterizeSVG(r io.Reader, dpi float64) (*image.RGBA, error) {
	if dpi <= 0 || math.IsNaN(dpi) || math.IsInf(dpi, 0) {
		return nil, &models.InvalidParameterError{Name: "dpi", Value: dpi, Reason: "must be a positive finite number"}
	}

	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("svg has no usable viewBox")
	}

	scale := dpi / BaseDPI
	w := int(math.Round(icon.ViewBox.W * scale))
	h := int(math.Round(icon.ViewBox.H * scale))
	if err := models.ValidateDimensions(w, h, "rasterize"); err != nil {
		return nil, err
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	return img, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func scaled(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}
