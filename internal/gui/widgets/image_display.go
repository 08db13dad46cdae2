package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 500
	ImageAreaHeight = 400
)

// ImageDisplay shows the source raster next to the rendered vector document.
type ImageDisplay struct {
	container     fyne.CanvasObject
	originalImage *canvas.Image
	vectorImage   *canvas.Image
	splitView     *container.Split
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.originalImage = newPreviewCanvas()
	display.vectorImage = newPreviewCanvas()

	originalContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Original**"),
		nil, nil, nil,
		display.originalImage,
	)
	vectorContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Vector**"),
		nil, nil, nil,
		display.vectorImage,
	)

	display.splitView = container.NewHSplit(originalContainer, vectorContainer)
	display.splitView.SetOffset(0.5)
	display.container = display.splitView
	return display
}

func newPreviewCanvas() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return img
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

func (id *ImageDisplay) SetOriginalImage(img image.Image) {
	id.originalImage.Image = img
	id.originalImage.Refresh()
}

func (id *ImageDisplay) SetVectorImage(img image.Image) {
	id.vectorImage.Image = img
	id.vectorImage.Refresh()
}
