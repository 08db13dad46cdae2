package gui

import (
	"image"

	"contour-sketch/internal/gui/widgets"
	"contour-sketch/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// View owns the widgets and their layout. The controller drives it and all
// setters must run on the fyne main goroutine.
type View struct {
	window     fyne.Window
	controller *Controller

	toolbar        *widgets.Toolbar
	imageDisplay   *widgets.ImageDisplay
	parameterPanel *widgets.ParameterPanel
	mainContainer  *fyne.Container
}

func NewView(window fyne.Window, params models.ConversionParams) *View {
	view := &View{
		window:         window,
		toolbar:        widgets.NewToolbar(),
		imageDisplay:   widgets.NewImageDisplay(),
		parameterPanel: widgets.NewParameterPanel(params),
	}

	view.mainContainer = container.NewBorder(
		view.toolbar.GetContainer(),
		nil,
		nil,
		container.NewVScroll(view.parameterPanel.GetContainer()),
		view.imageDisplay.GetContainer(),
	)
	return view
}

func (v *View) SetController(controller *Controller) {
	v.controller = controller
	if controller == nil {
		return
	}

	v.toolbar.SetOpenHandler(controller.LoadImage)
	v.toolbar.SetSaveHandler(controller.SaveDocument)
	v.parameterPanel.SetParameterChangeHandler(controller.UpdateParameter)
}

func (v *View) SetOriginalImage(img image.Image) {
	v.imageDisplay.SetOriginalImage(img)
}

func (v *View) SetVectorImage(img image.Image) {
	v.imageDisplay.SetVectorImage(img)
}

func (v *View) SetStatus(status string) {
	v.toolbar.SetStatus(status)
}

func (v *View) SetStats(stats string) {
	v.toolbar.SetStats(stats)
}

func (v *View) SetSaveEnabled(enabled bool) {
	v.toolbar.SetSaveEnabled(enabled)
}

func (v *View) ShowError(err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) ShowFileDialog(callback func(fyne.URIReadCloser, error)) {
	dialog.ShowFileOpen(callback, v.window)
}

func (v *View) ShowSaveDialog(fileName string, callback func(fyne.URIWriteCloser, error)) {
	d := dialog.NewFileSave(callback, v.window)
	d.SetFileName(fileName)
	d.Show()
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
