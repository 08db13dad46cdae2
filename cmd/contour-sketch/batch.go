package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"contour-sketch/internal/pipeline"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newBatchCmd(c *cli) *cobra.Command {
	var (
		jobs   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "batch INPUT_DIR OUTPUT_DIR",
		Short: "Convert every supported image in a directory",
		Args:  cobra.ExactArgs(2),
	}
	params := addParamFlags(cmd.Flags())
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of images converted at once")
	cmd.Flags().StringVar(&format, "format", pipeline.FormatSVG, "output format: svg or png")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if jobs < 1 {
			return fmt.Errorf("--jobs must be at least 1, got %d", jobs)
		}
		if format != pipeline.FormatSVG && format != pipeline.FormatPNG {
			return fmt.Errorf("--format must be %s or %s, got %q", pipeline.FormatSVG, pipeline.FormatPNG, format)
		}

		conv, err := c.converter()
		if err != nil {
			return err
		}
		p := params.apply(cmd.Flags(), c.cfg.Conversion)
		if err := p.Validate(); err != nil {
			return err
		}

		inputs, err := listImages(args[0])
		if err != nil {
			return err
		}
		if err := os.MkdirAll(args[1], 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", args[1], err)
		}

		var (
			mu       sync.Mutex
			failures []error
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(jobs)

		for _, in := range inputs {
			out := filepath.Join(args[1], strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))+"."+format)
			g.Go(func() error {
				res, err := conv.ConvertFile(ctx, in, out, p)
				if ctx.Err() != nil {
					return ctx.Err()
				}

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failures = append(failures, fmt.Errorf("%s: %w", in, err))
					c.log.Error("Batch", err, map[string]interface{}{"input": in})
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", in, out, res.Stats)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		c.log.Info("Batch", "batch finished", map[string]interface{}{
			"inputs": len(inputs),
			"failed": len(failures),
			"jobs":   jobs,
		})
		if len(failures) > 0 {
			return fmt.Errorf("%d of %d images failed: %w", len(failures), len(inputs), errors.Join(failures...))
		}
		return nil
	}
	return cmd
}

// listImages returns the supported image files directly inside dir, sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && pipeline.IsSupportedImage(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no supported images in %s", dir)
	}
	return paths, nil
}
