package main

import (
	"github.com/spf13/cobra"
	"github.com/vadimbarashkov/shortenit/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			logger := app.NewLogger(cfg.Env)

			return app.Run(cmd.Context(), cfg, logger)
		},
	}
}
