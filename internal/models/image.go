package models

import (
	"fmt"
	"image"
)

const (
	// MaskForeground marks a pixel that belongs to a traced region.
	MaskForeground uint8 = 255
	// MaskBackground marks every other pixel.
	MaskBackground uint8 = 0

	maxDimension = 32768
)

// RasterImage is a single-channel 8-bit grayscale raster stored row-major.
type RasterImage struct {
	Width  int
	Height int
	Pix    []uint8
	Format string
}

// NewRasterImage allocates a zeroed raster of the given size.
func NewRasterImage(width, height int) (*RasterImage, error) {
	if err := ValidateDimensions(width, height, "NewRasterImage"); err != nil {
		return nil, err
	}
	return &RasterImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}, nil
}

// At returns the gray value at (x, y). Callers must stay in bounds.
func (r *RasterImage) At(x, y int) uint8 {
	return r.Pix[y*r.Width+x]
}

// Set stores the gray value at (x, y).
func (r *RasterImage) Set(x, y int, v uint8) {
	r.Pix[y*r.Width+x] = v
}

// Image views the raster as an *image.Gray sharing the same pixel buffer.
func (r *RasterImage) Image() *image.Gray {
	return &image.Gray{Pix: r.Pix, Stride: r.Width, Rect: image.Rect(0, 0, r.Width, r.Height)}
}

// Validate reports a raster that cannot be fed to the binarizer.
func (r *RasterImage) Validate() error {
	if r == nil {
		return &ImageReadError{Reason: "raster is nil"}
	}
	if err := ValidateDimensions(r.Width, r.Height, "raster"); err != nil {
		return &ImageReadError{Reason: err.Error()}
	}
	if len(r.Pix) != r.Width*r.Height {
		return &ImageReadError{Reason: fmt.Sprintf("buffer holds %d bytes, want %d", len(r.Pix), r.Width*r.Height)}
	}
	return nil
}

// BinaryMask holds one byte per pixel, each either MaskForeground or MaskBackground.
type BinaryMask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBinaryMask allocates an all-background mask.
func NewBinaryMask(width, height int) (*BinaryMask, error) {
	if err := ValidateDimensions(width, height, "NewBinaryMask"); err != nil {
		return nil, err
	}
	return &BinaryMask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}, nil
}

func (m *BinaryMask) IsForeground(x, y int) bool {
	return m.Pix[y*m.Width+x] == MaskForeground
}

func (m *BinaryMask) SetForeground(x, y int) {
	m.Pix[y*m.Width+x] = MaskForeground
}

// CountForeground returns the number of foreground pixels.
func (m *BinaryMask) CountForeground() int {
	n := 0
	for _, v := range m.Pix {
		if v == MaskForeground {
			n++
		}
	}
	return n
}

// Validate checks dimensions and that every value is binary.
func (m *BinaryMask) Validate() error {
	if m == nil {
		return &InvalidMaskError{Reason: "mask is nil"}
	}
	if err := ValidateDimensions(m.Width, m.Height, "mask"); err != nil {
		return &InvalidMaskError{Reason: err.Error()}
	}
	if len(m.Pix) != m.Width*m.Height {
		return &InvalidMaskError{Reason: fmt.Sprintf("buffer holds %d values, want %dx%d", len(m.Pix), m.Width, m.Height)}
	}
	for i, v := range m.Pix {
		if v != MaskForeground && v != MaskBackground {
			return &InvalidMaskError{Reason: fmt.Sprintf("non-binary value %d at (%d,%d)", v, i%m.Width, i/m.Width)}
		}
	}
	return nil
}

func ValidateDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d for operation: %s", width, height, operation)
	}
	if width > maxDimension || height > maxDimension {
		return fmt.Errorf("dimensions %dx%d exceed maximum size for operation: %s", width, height, operation)
	}
	return nil
}
