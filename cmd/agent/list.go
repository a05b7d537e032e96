package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/petasbytes/todo-agent/internal/fsops"
	"github.com/petasbytes/todo-agent/internal/metrics"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List todo files with open and done task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			store := fsops.NewStore(cfg.SandboxDir)
			listing := store.List()
			if !listing.Success {
				return fmt.Errorf("%s", listing.Message)
			}

			out := cmd.OutOrStdout()
			if len(listing.Files) == 0 {
				fmt.Fprintln(out, "No todo files yet.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tOPEN\tDONE")
			for _, name := range listing.Files {
				r := store.Read(name)
				if !r.Success || r.Content == nil {
					fmt.Fprintf(tw, "%s\t-\t-\n", name)
					continue
				}
				t := metrics.CountTasks(*r.Content)
				fmt.Fprintf(tw, "%s\t%d\t%d\n", name, t.Open, t.Done)
			}
			return tw.Flush()
		},
	}
}
