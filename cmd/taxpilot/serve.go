package main

import (
	"github.com/rgehrsitz/taxpilot/internal/api"
	"github.com/rgehrsitz/taxpilot/internal/workflow"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the draft, calculation and filing API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			cfg := api.Config{
				Addr:           a.settings.Server.Addr,
				AllowedOrigins: a.settings.Server.AllowedOrigins,
			}
			if addr != "" {
				cfg.Addr = addr
			}
			a.logger.Info("starting api server", zap.String("addr", cfg.Addr))
			srv := api.NewServer(session, a.engine, workflow.New(), a.logger, cfg)
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings)")
	return cmd
}
