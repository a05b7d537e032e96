package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/petasbytes/todo-agent/internal/config"
	"github.com/petasbytes/todo-agent/internal/provider"
)

func main() {
	// Set up graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		cancel()
	}()

	os.Exit(execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv))
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, getenv func(string) string) int {
	root := newRootCmd(&options{getenv: getenv})
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

// options holds flag values shared by all commands.
type options struct {
	configPath string
	provider   string
	model      string
	sandbox    string
	logLevel   string
	maxSteps   int
	quiet      bool
	plain      bool
	remember   bool

	getenv     func(string) string
	newGateway func(context.Context, provider.Settings) (provider.Gateway, error)
}

func (o *options) gateway(ctx context.Context, s provider.Settings) (provider.Gateway, error) {
	if o.newGateway != nil {
		return o.newGateway(ctx, s)
	}
	return provider.New(ctx, s)
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "agent",
		Short: "AI-powered todo list manager",
		Long: `An interactive agent that manages markdown todo lists in a sandboxed directory.

Supported providers:
  gemini       - Google Gemini (GOOGLE_GENERATIVE_AI_API_KEY or GEMINI_API_KEY)
  gemini-chat  - Google Gemini through the chat-session client
  anthropic    - Anthropic Claude (ANTHROPIC_API_KEY)
  openai       - OpenAI (OPENAI_API_KEY)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultFile+")")
	pf.StringVarP(&opts.provider, "provider", "p", "", "LLM provider ("+strings.Join(provider.Names(), ", ")+")")
	pf.StringVarP(&opts.model, "model", "m", "", "model to use (provider-specific)")
	pf.StringVar(&opts.sandbox, "sandbox", "", "directory holding todo files (default todos)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	root.Flags().IntVar(&opts.maxSteps, "max-steps", 0, "maximum model calls per request (default 10)")
	root.Flags().BoolVar(&opts.quiet, "quiet", false, "hide tool call details")
	root.Flags().BoolVar(&opts.plain, "plain", false, "print replies without markdown rendering")
	root.Flags().BoolVar(&opts.remember, "remember", false, "carry the last exchange into the next request")

	root.AddCommand(
		newAskCmd(opts),
		newDemoCmd(opts),
		newListCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// loadConfig reads the config file and applies flag overrides, then sets
// up logging at the resulting level.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, opts.getenv)
	if err != nil {
		return nil, err
	}
	if opts.provider != "" {
		cfg.Provider = strings.ToLower(opts.provider)
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}
	if opts.sandbox != "" {
		cfg.SandboxDir = opts.sandbox
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.maxSteps > 0 {
		cfg.MaxSteps = opts.maxSteps
	}
	if opts.plain {
		cfg.Markdown = false
	}
	if opts.remember {
		cfg.RememberLastExchange = true
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	slog.Debug("config loaded", "path", cfg.Path(), "found", cfg.FileFound(), "level", level)
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return provider.LevelTrace, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "", "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q", s)
}
