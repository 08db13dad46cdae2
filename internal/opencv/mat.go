// Package opencv implements the binarizer and contour extractor on top of OpenCV.
//
// Every call owns the Mats it creates and closes them before returning, so no
// Mat outlives a Binarize or Extract call.
package opencv

import (
	"fmt"

	"contour-sketch/internal/models"

	"gocv.io/x/gocv"
)

// rasterToMat copies a grayscale raster into a single-channel 8-bit Mat.
func rasterToMat(width, height int, pix []uint8) (gocv.Mat, error) {
	if err := models.ValidateDimensions(width, height, "rasterToMat"); err != nil {
		return gocv.NewMat(), err
	}
	if len(pix) != width*height {
		return gocv.NewMat(), fmt.Errorf("pixel buffer has %d bytes, want %d", len(pix), width*height)
	}

	data := make([]byte, len(pix))
	copy(data, pix)
	mat, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC1, data)
	if err != nil {
		return mat, fmt.Errorf("failed to create Mat: %w", err)
	}
	if err := validateMat(mat, width, height, "rasterToMat"); err != nil {
		mat.Close()
		return gocv.NewMat(), err
	}
	return mat, nil
}

// matToMask reads a single-channel 0/255 Mat back into a BinaryMask.
func matToMask(mat gocv.Mat, width, height int) (*models.BinaryMask, error) {
	if err := validateMat(mat, width, height, "matToMask"); err != nil {
		return nil, err
	}

	mask, err := models.NewBinaryMask(width, height)
	if err != nil {
		return nil, err
	}
	data := mat.ToBytes()
	if len(data) != len(mask.Pix) {
		return nil, fmt.Errorf("Mat holds %d bytes, want %d", len(data), len(mask.Pix))
	}
	for i, v := range data {
		if v != 0 {
			mask.Pix[i] = models.MaskForeground
		}
	}
	return mask, nil
}

func validateMat(mat gocv.Mat, width, height int, operation string) error {
	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}
	if mat.Cols() != width || mat.Rows() != height {
		return fmt.Errorf("Mat has dimensions %dx%d, want %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), width, height, operation)
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return fmt.Errorf("unsupported MatType %d for operation: %s", int(mat.Type()), operation)
	}
	return nil
}
