package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdf-reader/internal/config"
	"pdf-reader/internal/document"
	"pdf-reader/internal/logger"
)

type rootOptions struct {
	configPath    string
	zoom          float64
	canvasScale   float64
	justification string
	backend       string
	logLevel      string
	noWatch       bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pdf-reader [file.pdf]",
		Short: "A page-at-a-time PDF viewer",
		Long: `pdf-reader shows one PDF page at a time in a zoomable, scrollable window.
Click a page to turn to the next one, Ctrl+click to go back, drag to scroll
sideways and Ctrl+wheel to zoom.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.MatchAll(cobra.MaximumNArgs(1), documentArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			application, err := NewApplication(cfg, log)
			if err != nil {
				return fmt.Errorf("application initialization failed: %w", err)
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return application.Run(path)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.Float64Var(&opts.zoom, "zoom", 100, "initial page zoom in percent")
	flags.Float64Var(&opts.canvasScale, "canvas-scale", 50, "canvas size in percent of the screen (20-80)")
	flags.StringVar(&opts.justification, "justify", "center", "page alignment: left, center or right")
	flags.StringVar(&opts.backend, "backend", "mupdf", "rendering backend: mupdf or preview")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the document when it changes on disk")

	cmd.AddCommand(newRenderCommand(opts))

	return cmd
}

// documentArgs rejects file arguments that are not PDF documents.
func documentArgs(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if !document.IsDocumentFile(arg) {
			return fmt.Errorf("%s: not a %s file", arg, document.Extension)
		}
	}
	return nil
}

// loadConfig layers the config file, the environment and explicit flags.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, logger.Logger, error) {
	path := opts.configPath
	required := path != ""
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, nil, err
	}
	cfg.ApplyEnv(os.Getenv)

	flags := cmd.Flags()
	if flags.Changed("zoom") {
		cfg.Zoom = opts.zoom
	}
	if flags.Changed("canvas-scale") {
		cfg.CanvasScale = opts.canvasScale
	}
	if flags.Changed("justify") {
		cfg.Justification = opts.justification
	}
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Lookup("no-watch") != nil && flags.Changed("no-watch") {
		cfg.Watch = !opts.noWatch
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.New(cfg.LogLevel(), cfg.Log.Format, os.Stderr)
	return cfg, log, nil
}
