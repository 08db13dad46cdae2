package pipeline

import (
	"contour-sketch/internal/models"
)

// Binarizer turns a grayscale raster into a foreground/background mask.
type Binarizer interface {
	Binarize(img *models.RasterImage, blockSize, c int) (*models.BinaryMask, error)
	Name() string
}

// ContourExtractor traces the borders of every foreground region in a mask.
type ContourExtractor interface {
	Extract(mask *models.BinaryMask) (models.ContourSet, error)
	Name() string
}

// Result carries every intermediate product of one conversion.
type Result struct {
	Raster   *models.RasterImage
	Mask     *models.BinaryMask
	Contours models.ContourSet
	Document *models.VectorDocument
	Stats    ConversionStats
}
