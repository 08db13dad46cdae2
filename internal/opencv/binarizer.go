package opencv

import (
	"image"

	"contour-sketch/internal/models"
	"contour-sketch/internal/processing/threshold"

	"gocv.io/x/gocv"
)

// Binarizer runs GaussianBlur, AdaptiveThreshold and BitwiseNot in OpenCV.
type Binarizer struct{}

func NewBinarizer() *Binarizer {
	return &Binarizer{}
}

func (b *Binarizer) Name() string {
	return "opencv_adaptive_gaussian"
}

func (b *Binarizer) Binarize(img *models.RasterImage, blockSize, c int) (*models.BinaryMask, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if err := models.ValidateBlockSize(blockSize); err != nil {
		return nil, err
	}

	src, err := rasterToMat(img.Width, img.Height, img.Pix)
	if err != nil {
		return nil, &models.ImageReadError{Source: "opencv", Reason: "raster conversion failed", Err: err}
	}
	defer src.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := threshold.PreBlurKernelSize
	gocv.GaussianBlur(src, &blurred, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.AdaptiveThreshold(blurred, &binary, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, blockSize, float32(c))

	inverted := gocv.NewMat()
	defer inverted.Close()
	gocv.BitwiseNot(binary, &inverted)

	return matToMask(inverted, img.Width, img.Height)
}
