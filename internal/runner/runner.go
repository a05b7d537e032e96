package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/petasbytes/todo-agent/internal/provider"
	"github.com/petasbytes/todo-agent/internal/telemetry"
	"github.com/petasbytes/todo-agent/tools"
)

// DefaultMaxSteps bounds the number of model calls per request.
const DefaultMaxSteps = 10

// MaxStepsSentinel is returned when the ceiling is hit without trailing text.
const MaxStepsSentinel = "Maximum steps reached."

// ErrUnknownTool marks a call to a name missing from the registry.
var ErrUnknownTool = errors.New("unknown tool")

type Runner struct {
	Gateway  provider.Gateway
	Registry *tools.Registry
	System   string
	MaxSteps int
	Observer Observer
}

func New(gw provider.Gateway, reg *tools.Registry, system string) *Runner {
	return &Runner{Gateway: gw, Registry: reg, System: system, MaxSteps: DefaultMaxSteps}
}

// Step records one model call and the tool round it triggered.
type Step struct {
	Number      int
	Text        string
	ToolCalls   []provider.ToolCall
	ToolResults []provider.ToolResult
}

// Outcome is the result of one Run.
type Outcome struct {
	TurnID     string
	Text       string
	Steps      []Step
	Exhausted  bool
	ModelCalls int
}

func (r *Runner) maxSteps() int {
	if r.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return r.MaxSteps
}

func (r *Runner) observer() Observer {
	if r.Observer == nil {
		return NopObserver{}
	}
	return r.Observer
}

// Run processes one user request, looping over model calls and tool rounds
// until the model answers without tool calls or the step ceiling is reached.
// history, if any, is prepended to the conversation unchanged.
func (r *Runner) Run(ctx context.Context, history []provider.Message, userText string) (*Outcome, error) {
	ctx, turnID := telemetry.EnsureTurnID(ctx)
	obs := r.observer()
	limit := r.maxSteps()

	var defs []tools.ToolDefinition
	if r.Registry != nil {
		defs = r.Registry.Definitions()
	}

	conv := make([]provider.Message, 0, len(history)+1+2*limit)
	conv = append(conv, history...)
	conv = append(conv, provider.UserMessage(userText))

	out := &Outcome{TurnID: turnID}
	seq := 0
	for step := 1; ; step++ {
		obs.OnModelCall(ctx, step, conv)
		start := time.Now()
		resp, err := r.Gateway.Send(ctx, r.System, conv, defs)
		out.ModelCalls++
		if err != nil {
			return nil, fmt.Errorf("model call %d: %w", step, err)
		}
		if resp == nil {
			resp = &provider.Response{}
		}
		obs.OnModelResponse(ctx, step, resp, time.Since(start))
		slog.Debug("model response", "turn_id", turnID, "step", step, "tool_calls", len(resp.ToolCalls), "text_len", len(resp.Text))

		out.Text = resp.Text
		rec := Step{Number: step, Text: resp.Text, ToolCalls: resp.ToolCalls}
		if len(resp.ToolCalls) == 0 {
			out.Steps = append(out.Steps, rec)
			return out, nil
		}

		results := make([]provider.ToolResult, 0, len(resp.ToolCalls))
		for _, call := range resp.ToolCalls {
			seq++
			begin := time.Now()
			res, execErr := r.execTool(call)
			results = append(results, res)
			obs.OnToolCall(ctx, ToolCallEvent{
				Step:     step,
				Seq:      seq,
				Call:     call,
				Result:   res,
				Duration: time.Since(begin),
				Err:      execErr,
			})
		}
		rec.ToolResults = results
		out.Steps = append(out.Steps, rec)

		conv = append(conv,
			provider.Message{Role: provider.RoleModel, Text: resp.Text, ToolCalls: resp.ToolCalls},
			provider.Message{Role: provider.RoleTool, ToolResults: results},
		)

		if step >= limit {
			obs.OnStepCeiling(ctx, step)
			slog.Warn("step ceiling reached", "turn_id", turnID, "steps", step)
			out.Exhausted = true
			if strings.TrimSpace(out.Text) == "" {
				out.Text = MaxStepsSentinel
			}
			return out, nil
		}
	}
}

// execTool runs one call. Unknown names, handler errors and panics all turn
// into failure results so the batch and the loop continue.
func (r *Runner) execTool(call provider.ToolCall) (res provider.ToolResult, err error) {
	res = provider.ToolResult{CallID: call.ID, Name: call.Name}

	var (
		def tools.ToolDefinition
		ok  bool
	)
	if r.Registry != nil {
		def, ok = r.Registry.Lookup(call.Name)
	}
	if !ok {
		res.Content = tools.Failure("Unknown tool: " + call.Name)
		res.IsError = true
		return res, fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("tool %s panicked: %v", call.Name, p)
			res.Content = tools.Failure(err.Error())
			res.IsError = true
		}
	}()

	content, err := def.Function(call.Args)
	if err != nil {
		res.Content = tools.Failure(err.Error())
		res.IsError = true
		return res, err
	}
	res.Content = content
	return res, nil
}
