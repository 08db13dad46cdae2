package models

import (
	"fmt"
	"math"
)

// StyleParams controls how traced polygons are drawn.
type StyleParams struct {
	MinContourLength int
	StrokeWidth      float64
	StrokeColor      Color
	BackgroundColor  Color
}

// ConversionParams is the full parameter set accepted at the conversion boundary.
// Colors stay as strings here because they arrive from flags, forms and config files.
type ConversionParams struct {
	MinContourLength int     `yaml:"min_contour_length" json:"minContourLen"`
	StrokeWidth      float64 `yaml:"stroke_width" json:"strokeWidth"`
	StrokeColor      string  `yaml:"stroke_color" json:"strokeColor"`
	BackgroundColor  string  `yaml:"background_color" json:"backgroundColor"`
	BlockSize        int     `yaml:"block_size" json:"thresholdBlockSize"`
	ThresholdC       int     `yaml:"threshold_c" json:"thresholdC"`

	// RequireVisible turns an all-background result into an EmptyGeometryError.
	RequireVisible bool `yaml:"require_visible" json:"requireVisible"`
}

// ParameterRange defines the valid range for a numeric parameter.
type ParameterRange struct {
	Min  float64
	Max  float64
	Step float64
}

// ParameterRanges bounds the interactive controls (sliders, form fields).
// Validation only enforces the contract limits, not these UI bounds.
var ParameterRanges = map[string]ParameterRange{
	"min_contour_length": {Min: 0, Max: 500, Step: 1},
	"stroke_width":       {Min: 0.1, Max: 10, Step: 0.1},
	"block_size":         {Min: 3, Max: 99, Step: 2},
	"threshold_c":        {Min: -50, Max: 50, Step: 1},
}

// DefaultConversionParams mirrors the defaults of the conversion entry point.
func DefaultConversionParams() ConversionParams {
	return ConversionParams{
		MinContourLength: 10,
		StrokeWidth:      1.0,
		StrokeColor:      "#FFFFFF",
		BackgroundColor:  "#000000",
		BlockSize:        11,
		ThresholdC:       2,
	}
}

// Validate checks every parameter and returns the first violation as an
// InvalidParameterError.
func (p ConversionParams) Validate() error {
	_, err := p.Style()
	if err != nil {
		return err
	}
	return ValidateBlockSize(p.BlockSize)
}

// Style validates and converts the drawing half of the parameters.
func (p ConversionParams) Style() (StyleParams, error) {
	if p.MinContourLength < 0 {
		return StyleParams{}, &InvalidParameterError{
			Name: "min_contour_length", Value: p.MinContourLength, Reason: "must not be negative",
		}
	}
	if math.IsNaN(p.StrokeWidth) || math.IsInf(p.StrokeWidth, 0) || p.StrokeWidth <= 0 {
		return StyleParams{}, &InvalidParameterError{
			Name: "stroke_width", Value: p.StrokeWidth, Reason: "must be a finite value greater than zero",
		}
	}

	stroke, err := ParseColor(p.StrokeColor)
	if err != nil {
		return StyleParams{}, &InvalidParameterError{Name: "stroke_color", Value: p.StrokeColor, Reason: err.Error()}
	}
	background, err := ParseColor(p.BackgroundColor)
	if err != nil {
		return StyleParams{}, &InvalidParameterError{Name: "background_color", Value: p.BackgroundColor, Reason: err.Error()}
	}

	return StyleParams{
		MinContourLength: p.MinContourLength,
		StrokeWidth:      p.StrokeWidth,
		StrokeColor:      stroke,
		BackgroundColor:  background,
	}, nil
}

// ValidateBlockSize enforces an odd neighbourhood of at least 3 pixels.
// Invalid sizes are rejected rather than coerced.
func ValidateBlockSize(blockSize int) error {
	if blockSize < 3 {
		return &InvalidParameterError{Name: "block_size", Value: blockSize, Reason: "must be at least 3"}
	}
	if blockSize%2 == 0 {
		return &InvalidParameterError{Name: "block_size", Value: blockSize, Reason: "must be odd"}
	}
	return nil
}

func (p ConversionParams) String() string {
	return fmt.Sprintf("min_len=%d stroke=%s/%g background=%s block=%d c=%d",
		p.MinContourLength, p.StrokeColor, p.StrokeWidth, p.BackgroundColor, p.BlockSize, p.ThresholdC)
}
