package main

import (
	"fmt"

	"contour-sketch/internal/config"
	"contour-sketch/internal/logger"
	"contour-sketch/internal/opencv"
	"contour-sketch/internal/pipeline"

	"github.com/spf13/cobra"
)

const appVersion = "1.0.0"

// cli carries the state shared by every subcommand once the root pre-run has
// loaded the configuration.
type cli struct {
	configPath string
	logLevel   string
	backend    string

	cfg *config.Config
	log *logger.ZerologAdapter
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "contour-sketch",
		Short:         "Trace raster images into stroked SVG contour drawings",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if c.log != nil {
				return c.log.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&c.backend, "backend", "", "stage backend: native or opencv")

	root.AddCommand(
		newConvertCmd(c),
		newBatchCmd(c),
		newRasterizeCmd(),
		newServeCmd(c),
		newPreviewCmd(c),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.backend != "" {
		cfg.Backend = c.backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = log
	return nil
}

func (c *cli) converter() (*pipeline.Converter, error) {
	return newConverter(c.cfg.Backend, c.log)
}

// newConverter wires the stage implementations named by backend.
func newConverter(backend string, log logger.Logger) (*pipeline.Converter, error) {
	opts := []pipeline.Option{pipeline.WithLogger(log)}

	switch backend {
	case config.BackendNative:
	case config.BackendOpenCV:
		opts = append(opts,
			pipeline.WithBinarizer(opencv.NewBinarizer()),
			pipeline.WithExtractor(opencv.NewExtractor()),
		)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
	return pipeline.NewConverter(opts...), nil
}
