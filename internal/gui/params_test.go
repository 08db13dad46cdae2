package gui

import (
	"errors"
	"testing"

	"contour-sketch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyParameter(t *testing.T) {
	base := models.DefaultConversionParams()

	tests := []struct {
		name  string
		param string
		value interface{}
		check func(t *testing.T, p models.ConversionParams)
	}{
		{"min length", "min_contour_length", 40, func(t *testing.T, p models.ConversionParams) {
			assert.Equal(t, 40, p.MinContourLength)
		}},
		{"stroke width", "stroke_width", 2.5, func(t *testing.T, p models.ConversionParams) {
			assert.Equal(t, 2.5, p.StrokeWidth)
		}},
		{"block size", "block_size", 21, func(t *testing.T, p models.ConversionParams) {
			assert.Equal(t, 21, p.BlockSize)
		}},
		{"threshold c", "threshold_c", -7, func(t *testing.T, p models.ConversionParams) {
			assert.Equal(t, -7, p.ThresholdC)
		}},
		{"stroke color", "stroke_color", "#ff0000", func(t *testing.T, p models.ConversionParams) {
			assert.Equal(t, "#ff0000", p.StrokeColor)
		}},
		{"background color", "background_color", "#102030", func(t *testing.T, p models.ConversionParams) {
			assert.Equal(t, "#102030", p.BackgroundColor)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := applyParameter(base, tt.param, tt.value)
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestApplyParameterRejects(t *testing.T) {
	base := models.DefaultConversionParams()

	_, err := applyParameter(base, "block_size", 10)
	var perr *models.InvalidParameterError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "block_size", perr.Name)

	_, err = applyParameter(base, "stroke_color", "#12345")
	assert.True(t, errors.As(err, &perr))

	_, err = applyParameter(base, "stroke_width", 3)
	assert.Error(t, err)

	_, err = applyParameter(base, "gamma", 1.0)
	assert.EqualError(t, err, "unknown parameter: gamma")
}
