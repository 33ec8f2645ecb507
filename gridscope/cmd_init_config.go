package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/itohio/gridscope/pkg/config"
)

func newInitConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configFile); err == nil && !opts.force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configFile)
			}

			cfg := config.Default()
			if opts.port != "" {
				cfg.Serial.Port = opts.port
			}
			if err := cfg.Save(opts.configFile); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.configFile)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
