package main

import (
	"github.com/spf13/cobra"

	"shiftpay/internal/app/server"
	"shiftpay/internal/platform/logging"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with the periodic schedule refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") {
				opts.logLevel = cfg.LogLevel
			}
			logging.Setup(opts.logLevel)
			return server.ServeConfig(cmd.Context(), cfg)
		},
	}
}
