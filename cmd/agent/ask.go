package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/petasbytes/todo-agent/internal/provider"
)

const defaultQuestion = "What is the capital of France?"

type askRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	Timestamp string `json:"timestamp"`
}

type askResponse struct {
	Text string `json:"text"`
}

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Send one plain request without tools and print request and response",
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				question = defaultQuestion
			}

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

			out := cmd.OutOrStdout()
			if err := printObject(out, "REQUEST", askRequest{
				Model:     settings.Model,
				Prompt:    question,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			}); err != nil {
				return err
			}

			resp, err := gw.Send(cmd.Context(), "", []provider.Message{provider.UserMessage(question)}, nil)
			if err != nil {
				return err
			}
			return printObject(out, "RESPONSE", askResponse{Text: resp.Text})
		},
	}
}

func printObject(w io.Writer, title string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s:\n%s\n%s\n\n", title, rule, b)
	return err
}

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
