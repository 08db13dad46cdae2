package widgets

import (
	"strconv"

	"contour-sketch/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ParameterPanel exposes every conversion parameter as a slider or text entry.
// Changes are reported by name, using the keys of models.ParameterRanges for
// numeric values and stroke_color / background_color for colors.
type ParameterPanel struct {
	container              *fyne.Container
	parameterChangeHandler func(string, interface{})
}

func NewParameterPanel(params models.ConversionParams) *ParameterPanel {
	pp := &ParameterPanel{}

	pp.container = container.NewVBox(
		widget.NewLabel("Parameters:"),
		pp.intSlider("Min Contour Length", "min_contour_length", params.MinContourLength),
		pp.floatSlider("Stroke Width", "stroke_width", params.StrokeWidth),
		pp.intSlider("Threshold Block Size", "block_size", params.BlockSize),
		pp.intSlider("Threshold C", "threshold_c", params.ThresholdC),
		pp.colorEntry("Stroke Color", "stroke_color", params.StrokeColor),
		pp.colorEntry("Background Color", "background_color", params.BackgroundColor),
	)
	return pp
}

func (pp *ParameterPanel) GetContainer() *fyne.Container {
	return pp.container
}

func (pp *ParameterPanel) SetParameterChangeHandler(handler func(string, interface{})) {
	pp.parameterChangeHandler = handler
}

func (pp *ParameterPanel) notify(name string, value interface{}) {
	if pp.parameterChangeHandler != nil {
		pp.parameterChangeHandler(name, value)
	}
}

func (pp *ParameterPanel) intSlider(title, name string, value int) fyne.CanvasObject {
	r := models.ParameterRanges[name]
	slider := widget.NewSlider(r.Min, r.Max)
	slider.Step = r.Step
	slider.SetValue(float64(value))

	label := widget.NewLabel(title + ": " + strconv.Itoa(value))
	slider.OnChanged = func(v float64) {
		label.SetText(title + ": " + strconv.Itoa(int(v)))
	}
	slider.OnChangeEnded = func(v float64) {
		pp.notify(name, int(v))
	}
	return container.NewVBox(label, slider)
}

func (pp *ParameterPanel) floatSlider(title, name string, value float64) fyne.CanvasObject {
	r := models.ParameterRanges[name]
	slider := widget.NewSlider(r.Min, r.Max)
	slider.Step = r.Step
	slider.SetValue(value)

	label := widget.NewLabel(title + ": " + strconv.FormatFloat(value, 'f', 1, 64))
	slider.OnChanged = func(v float64) {
		label.SetText(title + ": " + strconv.FormatFloat(v, 'f', 1, 64))
	}
	slider.OnChangeEnded = func(v float64) {
		pp.notify(name, v)
	}
	return container.NewVBox(label, slider)
}

func (pp *ParameterPanel) colorEntry(title, name, value string) fyne.CanvasObject {
	entry := widget.NewEntry()
	entry.SetText(value)
	entry.Validator = func(s string) error {
		_, err := models.ParseColor(s)
		return err
	}
	entry.OnSubmitted = func(s string) {
		if entry.Validate() == nil {
			pp.notify(name, s)
		}
	}
	return container.NewVBox(widget.NewLabel(title), entry)
}
