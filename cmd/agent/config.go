package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect agent configuration",
		Long: `Inspect agent configuration.

Examples:
  agent config show   # Show resolved config with keys masked
  agent config path   # Print the config file path in use`,
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			out, err := cfg.Masked().YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			p, err := filepath.Abs(cfg.Path())
			if err != nil {
				p = cfg.Path()
			}
			suffix := ""
			if !cfg.FileFound() {
				suffix = " (not found, using defaults)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", p, suffix)
			return nil
		},
	})
	return cfgCmd
}
