package opencv

import (
	"contour-sketch/internal/models"
	"contour-sketch/internal/processing/contour"

	"gocv.io/x/gocv"
)

// Extractor lists every border with FindContours (RETR_LIST, CHAIN_APPROX_SIMPLE).
type Extractor struct {
	MinPoints int
}

func NewExtractor() *Extractor {
	return &Extractor{MinPoints: contour.MinPoints}
}

func (e *Extractor) Name() string {
	return "opencv_find_contours"
}

func (e *Extractor) Extract(mask *models.BinaryMask) (models.ContourSet, error) {
	if err := mask.Validate(); err != nil {
		return nil, err
	}

	src, err := rasterToMat(mask.Width, mask.Height, mask.Pix)
	if err != nil {
		return nil, &models.InvalidMaskError{Reason: err.Error()}
	}
	defer src.Close()

	found := gocv.FindContours(src, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer found.Close()

	contours := models.ContourSet{}
	for _, pts := range found.ToPoints() {
		if len(pts) <= e.MinPoints {
			continue
		}
		poly := make(models.Polygon, len(pts))
		for i, p := range pts {
			poly[i] = models.Point{X: p.X, Y: p.Y}
		}
		contours = append(contours, poly)
	}
	return contours, nil
}
