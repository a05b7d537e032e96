package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/petasbytes/todo-agent/internal/fsops"
	"github.com/petasbytes/todo-agent/internal/provider"
	"github.com/petasbytes/todo-agent/internal/runner"
	"github.com/petasbytes/todo-agent/internal/shell"
	"github.com/petasbytes/todo-agent/internal/telemetry"
	"github.com/petasbytes/todo-agent/memory"
	"github.com/petasbytes/todo-agent/tools"
)

func runShell(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	settings, err := cfg.Resolve()
	if err != nil {
		return err
	}

	store := fsops.NewStore(cfg.SandboxDir)
	root, err := store.Root()
	if err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}
	slog.Info("sandbox ready", "root", root)

	gw, err := opts.gateway(ctx, settings)
	if err != nil {
		return err
	}
	defer provider.Close(gw)

	r := runner.New(gw, tools.TodoRegistry(store), runner.SystemPrompt)
	r.MaxSteps = cfg.MaxSteps

	observers := runner.Observers{runner.TelemetryObserver{
		Recorder: telemetry.New(cfg.Telemetry),
		Provider: settings.Provider,
		Model:    settings.Model,
	}}
	if !opts.quiet {
		observers = append(observers, &shell.Console{Out: cmd.OutOrStdout()})
	}
	r.Observer = observers

	sh := &shell.Shell{
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
		Runner:   r,
		Renderer: shell.PlainRenderer{},
		Provider: settings.Provider,
		Model:    settings.Model,
	}
	if cfg.Markdown {
		md, err := shell.NewMarkdownRenderer(80)
		if err != nil {
			slog.Warn("markdown renderer unavailable", "error", err)
		} else {
			sh.Renderer = md
		}
	}
	if cfg.RememberLastExchange {
		mem, err := memory.New(cfg.HistoryFile)
		if err != nil {
			slog.Warn("ignoring unreadable history file", "path", cfg.HistoryFile, "error", err)
			mem, _ = memory.New("")
		}
		sh.Memory = mem
	}
	return sh.Run(ctx)
}
