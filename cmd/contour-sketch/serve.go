package main

import (
	"contour-sketch/internal/server"
	"contour-sketch/internal/shutdown"

	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload and conversion web interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				c.cfg.Server.Port = port
			}
			conv, err := c.converter()
			if err != nil {
				return err
			}

			srv, err := server.New(c.cfg, conv, c.log)
			if err != nil {
				return err
			}

			mgr := shutdown.NewManager(c.log, c.cfg.Server.ShutdownTimeout)
			mgr.Register("http server", shutdown.Func(srv.Shutdown))
			mgr.Listen()
			defer mgr.Shutdown()

			go func() {
				select {
				case <-cmd.Context().Done():
					mgr.Shutdown()
				case <-mgr.Done():
				}
			}()

			return srv.Run(mgr.Context())
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port, overrides the configuration")
	return cmd
}
