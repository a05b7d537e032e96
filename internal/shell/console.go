package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/petasbytes/todo-agent/internal/provider"
	"github.com/petasbytes/todo-agent/internal/runner"
)

// Console prints each tool call, its result and the model's interim text as
// the loop runs.
type Console struct {
	Out io.Writer

	pending   string
	remaining int
}

var _ runner.Observer = (*Console)(nil)

func (c *Console) OnModelCall(context.Context, int, []provider.Message) {}

func (c *Console) OnModelResponse(_ context.Context, _ int, resp *provider.Response, _ time.Duration) {
	c.pending, c.remaining = "", 0
	if len(resp.ToolCalls) > 0 {
		c.pending = strings.TrimSpace(resp.Text)
		c.remaining = len(resp.ToolCalls)
	}
}

func (c *Console) OnToolCall(_ context.Context, ev runner.ToolCallEvent) {
	fmt.Fprintln(c.Out)
	fmt.Fprintln(c.Out, ruleStyle.Render(rule))
	fmt.Fprintln(c.Out, labelStyle.Render(fmt.Sprintf("Tool Call #%d", ev.Seq)))
	fmt.Fprintf(c.Out, "%s %s\n", labelStyle.Render("Tool Name:"), ev.Call.Name)
	fmt.Fprintln(c.Out, ruleStyle.Render(rule))
	fmt.Fprintln(c.Out)

	fmt.Fprintln(c.Out, labelStyle.Render("Tool Request:"))
	fmt.Fprintln(c.Out, indentJSON(ev.Call.Args))
	fmt.Fprintln(c.Out)
	fmt.Fprintln(c.Out, labelStyle.Render("Tool Response:"))
	fmt.Fprintln(c.Out, indentJSON([]byte(ev.Result.Content)))
	fmt.Fprintln(c.Out)

	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 && c.pending != "" {
		fmt.Fprintln(c.Out, labelStyle.Render("LLM Processing:"))
		fmt.Fprintf(c.Out, "   %s\n\n", c.pending)
		c.pending = ""
	}
}

func (c *Console) OnStepCeiling(_ context.Context, steps int) {
	fmt.Fprintln(c.Out, hintStyle.Render(fmt.Sprintf("(stopped after %d steps)", steps)))
}

// indentJSON pretty-prints raw JSON, falling back to the raw text.
func indentJSON(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
