package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConvertCmd(c *cli) *cobra.Command {
	var scale float64

	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Convert one image to SVG or PNG, chosen by the output extension",
		Args:  cobra.ExactArgs(2),
	}
	params := addParamFlags(cmd.Flags())
	cmd.Flags().Float64Var(&scale, "scale", 1, "pixel scale for PNG output")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		conv, err := c.converter()
		if err != nil {
			return err
		}
		conv.Saver().Scale = scale

		p := params.apply(cmd.Flags(), c.cfg.Conversion)
		res, err := conv.ConvertFile(cmd.Context(), args[0], args[1], p)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", args[0], args[1], res.Stats)
		return nil
	}
	return cmd
}
