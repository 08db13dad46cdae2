// Package pipeline is the conversion boundary: raster in, vector document out.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"contour-sketch/internal/logger"
	"contour-sketch/internal/models"
	"contour-sketch/internal/processing/contour"
	"contour-sketch/internal/processing/threshold"
	"contour-sketch/internal/svg"
)

// Converter runs Binarizer, ContourExtractor and PathSerializer in sequence.
// It holds no per-conversion state and is safe for concurrent use when its
// stages are.
type Converter struct {
	loader    *ImageLoader
	saver     *DocumentSaver
	binarizer Binarizer
	extractor ContourExtractor
	logger    logger.Logger
}

type Option func(*Converter)

func WithLogger(log logger.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.logger = log
		}
	}
}

func WithBinarizer(b Binarizer) Option {
	return func(c *Converter) {
		if b != nil {
			c.binarizer = b
		}
	}
}

func WithExtractor(e ContourExtractor) Option {
	return func(c *Converter) {
		if e != nil {
			c.extractor = e
		}
	}
}

func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		binarizer: threshold.NewAdaptiveBinarizer(),
		extractor: contour.NewTracer(),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.loader = NewImageLoader(c.logger)
	c.saver = NewDocumentSaver(c.logger)
	return c
}

// Backend names the active binarizer and extractor.
func (c *Converter) Backend() string {
	return c.binarizer.Name() + "+" + c.extractor.Name()
}

func (c *Converter) Loader() *ImageLoader { return c.loader }

func (c *Converter) Saver() *DocumentSaver { return c.saver }

// Convert decodes input, vectorizes it and writes SVG to output. Parameters are
// validated before input is read, and output receives nothing unless the whole
// conversion succeeds.
func (c *Converter) Convert(ctx context.Context, input io.Reader, output io.Writer, params models.ConversionParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	img, err := c.loader.LoadFromReader(input, "input")
	if err != nil {
		return err
	}

	res, err := c.Run(ctx, img, params)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := svg.Encode(&buf, res.Document); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if _, err := buf.WriteTo(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// ConvertFile converts the image at inPath and writes outPath, as SVG or PNG by
// extension. outPath only appears once it is complete.
func (c *Converter) ConvertFile(ctx context.Context, inPath, outPath string, params models.ConversionParams) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := FormatFromPath(outPath); err != nil {
		return nil, err
	}

	f, err := os.Open(inPath)
	if err != nil {
		return nil, &models.ImageReadError{Source: inPath, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	img, err := c.loader.LoadFromReader(f, inPath)
	if err != nil {
		return nil, err
	}

	res, err := c.Run(ctx, img, params)
	if err != nil {
		return nil, err
	}

	if err := c.saver.SaveToPath(outPath, res.Document); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", outPath, err)
	}

	c.logger.Info("Converter", "file converted", map[string]interface{}{
		"input":  inPath,
		"output": outPath,
		"paths":  res.Stats.Paths,
	})
	return res, nil
}

// ConvertImage is the in-memory form of Convert.
func (c *Converter) ConvertImage(img *models.RasterImage, params models.ConversionParams) (*models.VectorDocument, error) {
	res, err := c.Run(context.Background(), img, params)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// Run executes the three stages on an already decoded raster and returns every
// intermediate product. ctx is checked between stages.
func (c *Converter) Run(ctx context.Context, img *models.RasterImage, params models.ConversionParams) (*Result, error) {
	style, err := params.Style()
	if err != nil {
		return nil, err
	}
	if err := models.ValidateBlockSize(params.BlockSize); err != nil {
		return nil, err
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Raster: img}
	res.Stats.Width, res.Stats.Height = img.Width, img.Height

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	res.Mask, err = c.binarizer.Binarize(img, params.BlockSize, params.ThresholdC)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.binarizer.Name(), err)
	}
	res.Stats.BinarizeTime = time.Since(start)
	res.Stats.ForegroundPixels = res.Mask.CountForeground()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	res.Contours, err = c.extractor.Extract(res.Mask)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.extractor.Name(), err)
	}
	res.Stats.ExtractTime = time.Since(start)
	res.Stats.Contours = len(res.Contours)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	res.Document, err = svg.NewPathSerializer(params.RequireVisible).Serialize(res.Contours, img.Width, img.Height, style)
	if err != nil {
		return nil, err
	}
	res.Stats.SerializeTime = time.Since(start)
	res.Stats.Paths = len(res.Document.Paths)
	for _, p := range res.Document.Paths {
		res.Stats.Vertices += p.Points()
	}

	c.logger.Debug("Converter", "conversion finished", res.Stats.Fields())
	return res, nil
}
