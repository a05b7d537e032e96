package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petasbytes/todo-agent/internal/provider"
	"github.com/petasbytes/todo-agent/internal/runner"
	"github.com/petasbytes/todo-agent/internal/shell"
	"github.com/petasbytes/todo-agent/tools"
)

const demoMessage = "Where am I?"

func newDemoCmd(opts *options) *cobra.Command {
	demo := &cobra.Command{
		Use:   "demo",
		Short: "Small walkthroughs of the agent building blocks",
	}
	demo.AddCommand(&cobra.Command{
		Use:   "tool-call",
		Short: "Run a single tool-calling exchange with the respondWhereAmI tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			settings, err := cfg.Resolve()
			if err != nil {
				return err
			}
			gw, err := opts.gateway(cmd.Context(), settings)
			if err != nil {
				return err
			}
			defer provider.Close(gw)

			reg := tools.DemoRegistry()
			out := cmd.OutOrStdout()
			if err := printObject(out, "REQUEST", map[string]any{
				"model":        settings.Model,
				"userMessage":  demoMessage,
				"systemPrompt": runner.DemoSystemPrompt,
				"tools":        reg.Names(),
			}); err != nil {
				return err
			}

			r := runner.New(gw, reg, runner.DemoSystemPrompt)
			r.MaxSteps = cfg.MaxSteps
			r.Observer = &shell.Console{Out: out}
			res, err := r.Run(cmd.Context(), nil, demoMessage)
			if err != nil {
				return err
			}
			if res.ModelCalls == 1 {
				fmt.Fprintln(out, "No tool calls were made.")
			}
			return printObject(out, "FINAL RESPONSE", askResponse{Text: res.Text})
		},
	})
	return demo
}
