// Package gui is the interactive preview: open a raster, tune the conversion
// parameters and watch the vector result update.
package gui

import (
	"context"

	"contour-sketch/internal/logger"
	"contour-sketch/internal/models"
	"contour-sketch/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName = "Contour Sketch"
	AppID   = "io.contoursketch.preview"

	windowWidth  = 1200
	windowHeight = 800
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	view       *View
	controller *Controller
	logger     logger.Logger
}

func NewApplication(converter *pipeline.Converter, params models.ConversionParams, log logger.Logger) *Application {
	if log == nil {
		log = logger.Nop()
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))
	window.CenterOnScreen()

	view := NewView(window, params)
	controller := NewController(converter, params, log)
	controller.SetView(view)
	view.SetController(controller)

	a := &Application{
		fyneApp:    fyneApp,
		window:     window,
		view:       view,
		controller: controller,
		logger:     log,
	}
	a.setupMenus()
	window.SetOnClosed(controller.Shutdown)

	log.Info("Application", "initialized", map[string]interface{}{
		"backend": converter.Backend(),
		"params":  params.String(),
	})
	return a
}

func (a *Application) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", a.controller.LoadImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save SVG...", func() { a.controller.SaveDocument(pipeline.FormatSVG) }),
		fyne.NewMenuItem("Save PNG...", func() { a.controller.SaveDocument(pipeline.FormatPNG) }),
	)
	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// Run shows the window, optionally loads initialPath, and blocks until the
// window closes or ctx is cancelled.
func (a *Application) Run(ctx context.Context, initialPath string) {
	if initialPath != "" {
		a.controller.LoadPath(initialPath)
	}

	stop := context.AfterFunc(ctx, func() {
		a.logger.Info("Application", "context cancelled, quitting", nil)
		fyne.Do(a.fyneApp.Quit)
	})
	defer stop()

	a.view.Show()
	a.fyneApp.Run()
}
