package gui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"contour-sketch/internal/logger"
	"contour-sketch/internal/models"
	"contour-sketch/internal/pipeline"
	"contour-sketch/internal/render"

	"fyne.io/fyne/v2"
)

// Controller keeps the loaded raster and the current parameters, and reruns
// the pipeline whenever either changes. Only the newest run updates the view.
type Controller struct {
	view      *View
	converter *pipeline.Converter
	logger    logger.Logger

	mu         sync.Mutex
	raster     *models.RasterImage
	source     string
	params     models.ConversionParams
	result     *pipeline.Result
	cancel     context.CancelFunc
	generation uint64
}

func NewController(converter *pipeline.Converter, params models.ConversionParams, log logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		converter: converter,
		params:    params,
		logger:    log,
	}
}

func (c *Controller) SetView(view *View) {
	c.view = view
}

func (c *Controller) LoadImage() {
	c.view.ShowFileDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			c.handleError(err)
			return
		}
		if reader == nil {
			return
		}

		c.view.SetStatus("Loading image...")
		go func() {
			defer reader.Close()
			raster, loadErr := c.converter.Loader().LoadFromReader(reader, reader.URI().Name())
			c.imageLoaded(raster, reader.URI().Name(), loadErr)
		}()
	})
}

// LoadPath loads an image from disk without a dialog. Safe to call from any goroutine.
func (c *Controller) LoadPath(path string) {
	go func() {
		f, err := os.Open(path)
		if err != nil {
			c.imageLoaded(nil, path, err)
			return
		}
		defer f.Close()
		raster, err := c.converter.Loader().LoadFromReader(f, path)
		c.imageLoaded(raster, path, err)
	}()
}

func (c *Controller) imageLoaded(raster *models.RasterImage, source string, err error) {
	if err != nil {
		c.handleError(err)
		fyne.Do(func() { c.view.SetStatus("Ready") })
		return
	}

	c.mu.Lock()
	c.raster = raster
	c.source = source
	c.result = nil
	c.mu.Unlock()

	c.logger.Info("Controller", "image loaded", map[string]interface{}{
		"source": source,
		"width":  raster.Width,
		"height": raster.Height,
	})

	fyne.Do(func() {
		c.view.SetOriginalImage(raster.Image())
		c.view.SetSaveEnabled(false)
	})
	c.refresh()
}

// UpdateParameter applies one control change and reconverts the current image.
func (c *Controller) UpdateParameter(name string, value interface{}) {
	c.mu.Lock()
	params, err := applyParameter(c.params, name, value)
	if err == nil {
		c.params = params
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warning("Controller", "parameter rejected", map[string]interface{}{
			"parameter": name,
			"value":     value,
			"error":     err.Error(),
		})
		fyne.Do(func() { c.view.SetStatus(err.Error()) })
		return
	}

	c.logger.Debug("Controller", "parameter updated", map[string]interface{}{
		"parameter": name,
		"value":     value,
	})
	c.refresh()
}

func (c *Controller) refresh() {
	c.mu.Lock()
	if c.raster == nil {
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.generation++
	gen := c.generation
	raster, params := c.raster, c.params
	c.mu.Unlock()

	fyne.Do(func() { c.view.SetStatus("Converting...") })

	go func() {
		res, err := c.converter.Run(ctx, raster, params)
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			if c.current(gen) {
				c.handleError(err)
				fyne.Do(func() { c.view.SetStatus("Conversion failed") })
			}
			return
		}

		img, err := render.RenderDocument(res.Document, 1)
		if err != nil {
			if c.current(gen) {
				c.handleError(err)
			}
			return
		}

		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			return
		}
		c.result = res
		c.mu.Unlock()

		c.logger.Debug("Controller", "preview updated", res.Stats.Fields())
		fyne.Do(func() {
			c.view.SetVectorImage(img)
			c.view.SetStats(res.Stats.String())
			c.view.SetStatus(fmt.Sprintf("%d paths", len(res.Document.Paths)))
			c.view.SetSaveEnabled(true)
		})
	}()
}

func (c *Controller) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.generation
}

// SaveDocument asks for a destination and writes the current document as
// format ("svg" or "png").
func (c *Controller) SaveDocument(format string) {
	c.mu.Lock()
	res, source := c.result, c.source
	c.mu.Unlock()

	if res == nil {
		c.handleError(fmt.Errorf("no converted document to save"))
		return
	}

	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + "." + format
	c.view.ShowSaveDialog(name, func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			c.handleError(err)
			return
		}
		if writer == nil {
			return
		}

		c.view.SetStatus("Saving...")
		go func() {
			saveErr := c.converter.Saver().SaveToWriter(writer, res.Document, format)
			if closeErr := writer.Close(); saveErr == nil {
				saveErr = closeErr
			}

			if saveErr != nil {
				c.handleError(saveErr)
				fyne.Do(func() { c.view.SetStatus("Save failed") })
				return
			}
			c.logger.Info("Controller", "document saved", map[string]interface{}{
				"path":   writer.URI().Path(),
				"format": format,
			})
			fyne.Do(func() { c.view.SetStatus("Saved " + writer.URI().Name()) })
		}()
	})
}

func (c *Controller) handleError(err error) {
	c.logger.Error("Controller", err, nil)
	fyne.Do(func() {
		c.view.ShowError(err)
	})
}

// Shutdown cancels any in-flight conversion.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
	c.logger.Info("Controller", "shutdown completed", nil)
}
