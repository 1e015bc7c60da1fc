package app

import (
	"context"

	"point-tagger/internal/annotator"
	"point-tagger/internal/config"
	"point-tagger/internal/gui"
	"point-tagger/internal/logger"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

const (
	AppID      = "com.pointtagger.point-tagger"
	AppVersion = "1.0.0"
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	view       *gui.View
	controller *gui.Controller
	logger     logger.Logger
}

// NewApplication creates the window and wires the view to a controller over a.
func NewApplication(cfg *config.Config, a *annotator.Annotator, log logger.Logger) *Application {
	fyneApp := fyneapp.NewWithID(AppID)
	return newApplication(fyneApp, cfg, a, log)
}

func newApplication(fyneApp fyne.App, cfg *config.Config, a *annotator.Annotator, log logger.Logger) *Application {
	if log == nil {
		log = logger.NoOpLogger{}
	}

	window := fyneApp.NewWindow(gui.WindowTitle)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()
	window.SetMaster()

	view := gui.NewView(window, gui.ViewConfig{
		WindowWidth:        cfg.Window.Width,
		ListWidth:          cfg.Window.ListWidth,
		CrosshairLineWidth: cfg.Crosshair.LineWidth,
	}, a.Entries)

	controller := gui.NewController(a, log)
	controller.SetView(view)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		view:       view,
		controller: controller,
		logger:     log,
	}
	application.setupWindowEvents()

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version": AppVersion,
		"images":  a.Len(),
	})
	return application
}

func (app *Application) setupWindowEvents() {
	app.window.SetCloseIntercept(func() {
		app.logger.Info("Application", "window close requested", nil)
		app.controller.Shutdown()
		app.window.Close()
	})
}

// Run shows the window and blocks until the window closes or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	app.view.Show()
	app.controller.Start()

	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			app.logger.Info("Application", "context cancelled, closing window", nil)
			fyne.Do(func() {
				app.controller.Shutdown()
				app.fyneApp.Quit()
			})
		case <-stop:
		}
	}()

	app.logger.Info("Application", "GUI displayed", nil)
	app.fyneApp.Run()

	return nil
}
