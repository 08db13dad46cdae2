package main

import (
	"contour-sketch/internal/gui"

	"github.com/spf13/cobra"
)

func newPreviewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [IMAGE]",
		Short: "Open the desktop preview, optionally with an image loaded",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := c.converter()
			if err != nil {
				return err
			}

			var initial string
			if len(args) == 1 {
				initial = args[0]
			}
			gui.NewApplication(conv, c.cfg.Conversion, c.log).Run(cmd.Context(), initial)
			return nil
		},
	}
}
