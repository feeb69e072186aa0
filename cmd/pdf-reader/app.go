package main

import (
	"image"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"pdf-reader/internal/config"
	"pdf-reader/internal/document"
	"pdf-reader/internal/gui"
	"pdf-reader/internal/logger"
	"pdf-reader/internal/shutdown"
	"pdf-reader/internal/viewer"
	"pdf-reader/internal/watch"
)

// Application wires the fyne window to the viewer.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  *config.Config

	view       *gui.View
	viewer     *viewer.Controller
	controller *gui.Controller
	watcher    *watch.Watcher
	shutdown   *shutdown.Manager
}

func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	source, err := document.NewSource(cfg.Backend)
	if err != nil {
		return nil, err
	}

	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: version,
	})

	window := fyneApp.NewWindow(AppName)
	screen := image.Pt(cfg.Screen.Width, cfg.Screen.Height)
	view := gui.NewView(window, screen)

	opts := cfg.ViewerOptions()
	opts.Source = source
	opts.Surface = view
	opts.Indicator = view
	opts.Logger = log
	vc := viewer.NewController(opts)

	controller := gui.NewController(vc, view, AppName, log)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		config:     cfg,
		view:       view,
		viewer:     vc,
		controller: controller,
		shutdown:   shutdown.NewManager(log),
	}

	if cfg.Watch {
		watcher, err := watch.New(controller.DocumentChanged, watch.DefaultDebounce, log)
		if err != nil {
			log.Warning("Application", "file watching disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			application.watcher = watcher
			controller.SetWatcher(watcher)
			application.shutdown.Register("watcher", watcher)
		}
	}
	application.shutdown.Register("controller", controller)

	application.setupWindowEvents()

	log.Info("Application", "initialized", map[string]interface{}{
		"version":      version,
		"backend":      cfg.Backend,
		"watch":        application.watcher != nil,
		"screen":       screen.String(),
		"go_version":   runtime.Version(),
		"zoom":         cfg.Zoom,
		"canvas_scale": cfg.CanvasScale,
	})

	return application, nil
}

// Run shows the window, opens path if given and blocks until the window
// closes.
func (a *Application) Run(path string) error {
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.fyneApp.Lifecycle().SetOnStarted(func() {
		a.viewer.Start()
		if path != "" {
			a.controller.Open(path)
		}
	})

	a.view.Show()
	a.fyneApp.Run()

	a.shutdown.Shutdown()

	renders := a.viewer.Timings().Stats("render")
	a.logger.Info("Application", "terminated", map[string]interface{}{
		"renders":         renders.Count,
		"avg_render_ms":   renders.Average.Milliseconds(),
		"max_render_ms":   renders.Max.Milliseconds(),
		"goroutine_count": runtime.NumGoroutine(),
	})
	return nil
}

func (a *Application) setupWindowEvents() {
	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
	})
}
