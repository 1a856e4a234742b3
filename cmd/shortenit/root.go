package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vadimbarashkov/shortenit/internal/config"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "shortenit",
		Short:         "Quota-enforcing URL shortener",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("CONFIG_PATH"),
		"path to the YAML config file (defaults to $CONFIG_PATH)")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newAccountCmd(opts),
	)

	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.Load(o.configPath)
}
