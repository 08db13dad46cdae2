package gui

import (
	"fmt"

	"contour-sketch/internal/models"
)

// applyParameter returns a copy of params with one named control applied.
// The result is validated so a bad entry never reaches the pipeline.
func applyParameter(params models.ConversionParams, name string, value interface{}) (models.ConversionParams, error) {
	switch name {
	case "min_contour_length", "block_size", "threshold_c":
		v, ok := value.(int)
		if !ok {
			return params, fmt.Errorf("parameter %s expects an integer, got %T", name, value)
		}
		switch name {
		case "min_contour_length":
			params.MinContourLength = v
		case "block_size":
			params.BlockSize = v
		default:
			params.ThresholdC = v
		}
	case "stroke_width":
		v, ok := value.(float64)
		if !ok {
			return params, fmt.Errorf("parameter %s expects a number, got %T", name, value)
		}
		params.StrokeWidth = v
	case "stroke_color", "background_color":
		v, ok := value.(string)
		if !ok {
			return params, fmt.Errorf("parameter %s expects a color string, got %T", name, value)
		}
		if name == "stroke_color" {
			params.StrokeColor = v
		} else {
			params.BackgroundColor = v
		}
	default:
		return params, fmt.Errorf("unknown parameter: %s", name)
	}

	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}
