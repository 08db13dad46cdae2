package threshold

import (
	"fmt"

	"contour-sketch/internal/models"
	"contour-sketch/internal/processing/filters"
)

// PreBlurKernelSize is the fixed low-pass aperture applied before thresholding.
const PreBlurKernelSize = 5

// AdaptiveBinarizer marks pixels darker than their Gaussian-weighted neighbourhood
// as foreground. Polarity is fixed: dark subjects on lighter surroundings.
type AdaptiveBinarizer struct{}

func NewAdaptiveBinarizer() *AdaptiveBinarizer {
	return &AdaptiveBinarizer{}
}

func (b *AdaptiveBinarizer) Name() string {
	return "adaptive_gaussian"
}

// Binarize smooths img, computes a blockSize x blockSize Gaussian local mean for every
// pixel and sets the pixel to foreground when pixel <= mean - c.
func (b *AdaptiveBinarizer) Binarize(img *models.RasterImage, blockSize, c int) (*models.BinaryMask, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if err := models.ValidateBlockSize(blockSize); err != nil {
		return nil, err
	}

	smoothed, err := filters.NewGaussianFilter(PreBlurKernelSize, 0, filters.BorderReflect101).Apply(img)
	if err != nil {
		return nil, fmt.Errorf("pre-blur failed: %w", err)
	}

	mean, err := filters.NewGaussianFilter(blockSize, 0, filters.BorderReplicate).Apply(smoothed)
	if err != nil {
		return nil, fmt.Errorf("local mean failed: %w", err)
	}

	mask, err := models.NewBinaryMask(img.Width, img.Height)
	if err != nil {
		return nil, err
	}

	for i, v := range smoothed.Pix {
		if int(v)-int(mean.Pix[i]) <= -c {
			mask.Pix[i] = models.MaskForeground
		}
	}

	return mask, nil
}
