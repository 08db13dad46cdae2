package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"contour-sketch/internal/logger"
	"contour-sketch/internal/models"
	"contour-sketch/internal/render"
	"contour-sketch/internal/svg"
)

const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// FormatFromPath picks the output format from the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", &models.InvalidParameterError{
			Name: "output", Value: path, Reason: "extension must be .svg or .png",
		}
	}
}

// DocumentSaver writes vector documents as SVG markup or rendered PNG.
type DocumentSaver struct {
	logger logger.Logger
	// Scale applies to PNG output only.
	Scale float64
}

func NewDocumentSaver(log logger.Logger) *DocumentSaver {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentSaver{logger: log, Scale: 1}
}

func (s *DocumentSaver) SaveToWriter(writer io.Writer, doc *models.VectorDocument, format string) error {
	if doc == nil {
		return fmt.Errorf("no document to save")
	}

	s.logger.Debug("DocumentSaver", "saving document", map[string]interface{}{
		"format": format,
		"width":  doc.Width,
		"height": doc.Height,
		"paths":  len(doc.Paths),
	})

	switch format {
	case FormatSVG:
		return svg.Encode(writer, doc)
	case FormatPNG:
		img, err := render.RenderDocument(doc, s.Scale)
		if err != nil {
			return err
		}
		return render.WritePNG(writer, img)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// SaveToPath writes doc next to path and renames it into place, so a failed
// save never leaves a partial file behind.
func (s *DocumentSaver) SaveToPath(path string, doc *models.VectorDocument) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	return writeAtomic(path, func(w io.Writer) error {
		return s.SaveToWriter(w, doc, format)
	})
}

func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
