package main

import (
	"contour-sketch/internal/models"

	"github.com/spf13/pflag"
)

// paramFlags binds the conversion parameters to command-line flags. Only flags
// the user actually set override the configured defaults.
type paramFlags struct {
	values models.ConversionParams
}

func addParamFlags(fs *pflag.FlagSet) *paramFlags {
	pf := &paramFlags{}
	d := models.DefaultConversionParams()

	fs.IntVar(&pf.values.MinContourLength, "min-contour-len", d.MinContourLength,
		"drop contours with this many vertices or fewer")
	fs.Float64Var(&pf.values.StrokeWidth, "stroke-width", d.StrokeWidth, "stroke width in pixels")
	fs.StringVar(&pf.values.StrokeColor, "stroke-color", d.StrokeColor, "stroke color (#RGB, #RRGGBB or a color name)")
	fs.StringVar(&pf.values.BackgroundColor, "background-color", d.BackgroundColor, "background color")
	fs.IntVar(&pf.values.BlockSize, "threshold-block-size", d.BlockSize, "adaptive threshold neighbourhood, odd and >= 3")
	fs.IntVar(&pf.values.ThresholdC, "threshold-c", d.ThresholdC, "constant subtracted from the local mean")
	fs.BoolVar(&pf.values.RequireVisible, "require-visible", d.RequireVisible,
		"fail when no contour survives filtering")
	return pf
}

func (pf *paramFlags) apply(fs *pflag.FlagSet, base models.ConversionParams) models.ConversionParams {
	if fs.Changed("min-contour-len") {
		base.MinContourLength = pf.values.MinContourLength
	}
	if fs.Changed("stroke-width") {
		base.StrokeWidth = pf.values.StrokeWidth
	}
	if fs.Changed("stroke-color") {
		base.StrokeColor = pf.values.StrokeColor
	}
	if fs.Changed("background-color") {
		base.BackgroundColor = pf.values.BackgroundColor
	}
	if fs.Changed("threshold-block-size") {
		base.BlockSize = pf.values.BlockSize
	}
	if fs.Changed("threshold-c") {
		base.ThresholdC = pf.values.ThresholdC
	}
	if fs.Changed("require-visible") {
		base.RequireVisible = pf.values.RequireVisible
	}
	return base
}
