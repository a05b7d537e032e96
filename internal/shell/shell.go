// Package shell runs the interactive line-oriented console.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/petasbytes/todo-agent/internal/provider"
	"github.com/petasbytes/todo-agent/internal/runner"
)

// Agent runs one user request to completion.
type Agent interface {
	Run(ctx context.Context, history []provider.Message, userText string) (*runner.Outcome, error)
}

// Memory supplies prior turns and records finished exchanges.
type Memory interface {
	History() []provider.Message
	Record(user, agent string) error
}

type Shell struct {
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
	Runner   Agent
	Renderer Renderer
	// Memory is optional; nil disables exchange carry-over.
	Memory Memory

	Provider string
	Model    string
}

// Run reads lines until "exit", EOF or ctx cancellation. Per-request errors
// are printed and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	renderer := s.Renderer
	if renderer == nil {
		renderer = PlainRenderer{}
	}

	fmt.Fprintln(s.Out, bannerStyle.Render(fmt.Sprintf("Todo Agent - %s (%s)", s.Provider, s.Model)))
	fmt.Fprintln(s.Out, hintStyle.Render(`Type your requests or "exit" to quit.`))

	// stdin reader goroutine -> lines into channel; done releases it when Run returns
	scanner := bufio.NewScanner(s.In)
	inputCh := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(inputCh)
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	for {
		fmt.Fprint(s.Out, "\n"+promptStyle.Render("You:")+" ")
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			s.goodbye()
			return nil
		case line, ok = <-inputCh:
			if !ok {
				fmt.Fprintln(s.Out)
				if err := scanner.Err(); err != nil {
					slog.Warn("stdin read error", "error", err)
				}
				return nil
			}
		}

		input := strings.TrimSpace(line)
		if strings.EqualFold(input, "exit") {
			s.goodbye()
			return nil
		}
		if input == "" {
			continue
		}

		fmt.Fprintln(s.Out, "\n"+thinkingStyle.Render("Agent is thinking...")+"\n")

		var history []provider.Message
		if s.Memory != nil {
			history = s.Memory.History()
		}
		out, err := s.Runner.Run(ctx, history, input)
		if err != nil {
			if ctx.Err() != nil {
				s.goodbye()
				return nil
			}
			fmt.Fprintf(s.Err, "%s %v\n", errorStyle.Render("Error:"), err)
			continue
		}

		text, rerr := renderer.Render(out.Text)
		if rerr != nil {
			slog.Debug("render failed", "error", rerr)
			text = out.Text
		}
		fmt.Fprintf(s.Out, "\n%s %s\n", agentStyle.Render("Agent:"), text)

		if s.Memory != nil {
			if err := s.Memory.Record(input, out.Text); err != nil {
				slog.Warn("failed to save exchange", "error", err)
			}
		}
	}
}

func (s *Shell) goodbye() {
	fmt.Fprintln(s.Out, "\nGoodbye!")
}
