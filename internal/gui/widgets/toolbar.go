package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type Toolbar struct {
	container     *fyne.Container
	openButton    *widget.Button
	saveSVGButton *widget.Button
	savePNGButton *widget.Button
	statusLabel   *widget.Label
	statsLabel    *widget.Label

	openHandler func()
	saveHandler func(format string)
}

func NewToolbar() *Toolbar {
	t := &Toolbar{}

	t.openButton = widget.NewButton("Open Image", func() {
		if t.openHandler != nil {
			t.openHandler()
		}
	})
	t.openButton.Importance = widget.HighImportance

	t.saveSVGButton = widget.NewButton("Save SVG", func() { t.save("svg") })
	t.savePNGButton = widget.NewButton("Save PNG", func() { t.save("png") })
	t.SetSaveEnabled(false)

	t.statusLabel = widget.NewLabel("Ready")
	t.statsLabel = widget.NewLabel("")

	t.container = container.NewHBox(
		t.openButton,
		widget.NewSeparator(),
		t.saveSVGButton,
		t.savePNGButton,
		widget.NewSeparator(),
		t.statusLabel,
		widget.NewSeparator(),
		t.statsLabel,
	)
	return t
}

func (t *Toolbar) save(format string) {
	if t.saveHandler != nil {
		t.saveHandler(format)
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetOpenHandler(handler func()) {
	t.openHandler = handler
}

func (t *Toolbar) SetSaveHandler(handler func(format string)) {
	t.saveHandler = handler
}

func (t *Toolbar) SetSaveEnabled(enabled bool) {
	for _, b := range []*widget.Button{t.saveSVGButton, t.savePNGButton} {
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

func (t *Toolbar) SetStats(stats string) {
	t.statsLabel.SetText(stats)
}
