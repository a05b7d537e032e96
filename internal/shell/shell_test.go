package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/petasbytes/todo-agent/internal/provider"
	"github.com/petasbytes/todo-agent/internal/runner"
	"github.com/petasbytes/todo-agent/internal/shell"
	"github.com/petasbytes/todo-agent/memory"
)

type fakeAgent struct {
	inputs    []string
	histories [][]provider.Message
	reply     func(string) (*runner.Outcome, error)
}

func (f *fakeAgent) Run(_ context.Context, history []provider.Message, text string) (*runner.Outcome, error) {
	f.inputs = append(f.inputs, text)
	f.histories = append(f.histories, history)
	if f.reply != nil {
		return f.reply(text)
	}
	return &runner.Outcome{Text: "echo: " + text}, nil
}

func newShell(in io.Reader, agent shell.Agent) (*shell.Shell, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &shell.Shell{
		In:       in,
		Out:      &out,
		Err:      &errOut,
		Runner:   agent,
		Provider: "gemini",
		Model:    "gemini-2.0-flash-exp",
	}, &out, &errOut
}

func TestShell_BannerAndExit(t *testing.T) {
	agent := &fakeAgent{}
	sh, out, _ := newShell(strings.NewReader("  EXIT  \nnever read\n"), agent)

	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Todo Agent - gemini (gemini-2.0-flash-exp)",
		`Type your requests or "exit" to quit.`,
		"You:",
		"Goodbye!",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if len(agent.inputs) != 0 {
		t.Fatalf("exit must not reach the agent: %v", agent.inputs)
	}
}

func TestShell_ExitReleasesReader(t *testing.T) {
	before := runtime.NumGoroutine()
	sh, _, _ := newShell(strings.NewReader("exit\nleft over\nand more\n"), &fakeAgent{})
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("reader goroutine still running: %d goroutines, started with %d", runtime.NumGoroutine(), before)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestShell_ProcessesLinesAndSkipsBlank(t *testing.T) {
	agent := &fakeAgent{}
	sh, out, _ := newShell(strings.NewReader("add milk\n\n   \nlist todos\n"), agent)

	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if strings.Join(agent.inputs, "|") != "add milk|list todos" {
		t.Fatalf("inputs: %v", agent.inputs)
	}
	got := out.String()
	if strings.Count(got, "Agent is thinking...") != 2 {
		t.Fatalf("expected two thinking notices:\n%s", got)
	}
	if !strings.Contains(got, "echo: add milk") || !strings.Contains(got, "echo: list todos") {
		t.Fatalf("replies missing:\n%s", got)
	}
	if strings.Contains(got, "Goodbye!") {
		t.Fatal("EOF should end quietly")
	}
}

func TestShell_ErrorContinuesLoop(t *testing.T) {
	agent := &fakeAgent{reply: func(text string) (*runner.Outcome, error) {
		if text == "bad" {
			return nil, errors.New("model call 1: 503 Service Unavailable")
		}
		return &runner.Outcome{Text: "fine"}, nil
	}}
	sh, out, errOut := newShell(strings.NewReader("bad\ngood\nexit\n"), agent)

	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(errOut.String(), "Error:") || !strings.Contains(errOut.String(), "503 Service Unavailable") {
		t.Fatalf("error output: %q", errOut.String())
	}
	if !strings.Contains(out.String(), "fine") {
		t.Fatalf("loop should continue after an error:\n%s", out.String())
	}
}

func TestShell_ContextCancelSaysGoodbye(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sh, out, _ := newShell(pr, &fakeAgent{})

	done := make(chan error, 1)
	go func() { done <- sh.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("shell did not stop on cancellation")
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Fatalf("expected goodbye:\n%s", out.String())
	}
}

func TestShell_MemorySeedsNextRequest(t *testing.T) {
	mem, err := memory.New("")
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	agent := &fakeAgent{}
	sh, _, _ := newShell(strings.NewReader("first\nsecond\n"), agent)
	sh.Memory = mem

	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if agent.histories[0] != nil {
		t.Fatalf("first request should have no history: %+v", agent.histories[0])
	}
	h := agent.histories[1]
	if len(h) != 2 || h[0].Text != "first" || h[1].Text != "echo: first" {
		t.Fatalf("second request history: %+v", h)
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(s string) (string, error) { return strings.ToUpper(s), nil }

func TestShell_UsesRenderer(t *testing.T) {
	sh, out, _ := newShell(strings.NewReader("hello\n"), &fakeAgent{})
	sh.Renderer = upperRenderer{}
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out.String(), "ECHO: HELLO") {
		t.Fatalf("renderer not applied:\n%s", out.String())
	}
}

func TestMarkdownRenderer(t *testing.T) {
	r, err := shell.NewMarkdownRenderer(80)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	got, err := r.Render("# Groceries\n\n- [ ] Milk\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "Groceries") || !strings.Contains(got, "Milk") {
		t.Fatalf("unexpected render: %q", got)
	}
}
