// Package svg turns traced contours into a vector document and writes it as SVG.
package svg

import (
	"contour-sketch/internal/models"
)

// PathSerializer builds a VectorDocument from a ContourSet.
type PathSerializer struct {
	// RequireVisible makes an all-background result an EmptyGeometryError.
	RequireVisible bool
}

func NewPathSerializer(requireVisible bool) *PathSerializer {
	return &PathSerializer{RequireVisible: requireVisible}
}

// Serialize emits the background rectangle and one closed, unfilled path for every
// polygon with more than style.MinContourLength points, keeping contour order.
func (s *PathSerializer) Serialize(contours models.ContourSet, width, height int, style models.StyleParams) (*models.VectorDocument, error) {
	if err := models.ValidateDimensions(width, height, "serialize"); err != nil {
		return nil, &models.InvalidParameterError{Name: "dimensions", Value: [2]int{width, height}, Reason: err.Error()}
	}

	doc := &models.VectorDocument{
		Width:  width,
		Height: height,
		Background: models.Rect{
			Width:  width,
			Height: height,
			Fill:   style.BackgroundColor,
		},
		Paths: make([]models.StrokedPath, 0, len(contours)),
	}

	for _, poly := range contours {
		if len(poly) <= style.MinContourLength {
			continue
		}
		doc.Paths = append(doc.Paths, models.StrokedPath{
			Commands:    pathCommands(poly),
			Stroke:      style.StrokeColor,
			StrokeWidth: style.StrokeWidth,
		})
	}

	if s.RequireVisible && len(doc.Paths) == 0 {
		return nil, &models.EmptyGeometryError{Contours: len(contours), MinContourLength: style.MinContourLength}
	}

	return doc, nil
}

// pathCommands moves to the first vertex, draws to every other one and always closes.
func pathCommands(poly models.Polygon) []models.PathCommand {
	cmds := make([]models.PathCommand, 0, len(poly)+1)
	for i, p := range poly {
		op := models.LineTo
		if i == 0 {
			op = models.MoveTo
		}
		cmds = append(cmds, models.PathCommand{Op: op, X: p.X, Y: p.Y})
	}
	return append(cmds, models.PathCommand{Op: models.ClosePath})
}
