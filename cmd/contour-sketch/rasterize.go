package main

import (
	"fmt"
	"os"

	"contour-sketch/internal/render"

	"github.com/spf13/cobra"
)

func newRasterizeCmd() *cobra.Command {
	var dpi float64

	cmd := &cobra.Command{
		Use:   "rasterize INPUT.svg OUTPUT.png",
		Short: "Render an SVG file to PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			img, err := render.RasterizeSVG(in, dpi)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err := render.WritePNG(out, img); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			b := img.Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%dx%d at %g dpi)\n", args[0], args[1], b.Dx(), b.Dy(), dpi)
			return nil
		},
	}
	cmd.Flags().Float64Var(&dpi, "dpi", render.DefaultDPI, "output resolution; 96 keeps the SVG pixel size")
	return cmd
}
