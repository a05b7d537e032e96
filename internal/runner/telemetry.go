package runner

import (
	"context"
	"time"

	"github.com/petasbytes/todo-agent/internal/provider"
	"github.com/petasbytes/todo-agent/internal/telemetry"
)

// TelemetryObserver writes loop events to a telemetry Recorder. Only sizes,
// names and durations are recorded.
type TelemetryObserver struct {
	Recorder *telemetry.Recorder
	Provider string
	Model    string
}

func turnID(ctx context.Context) string {
	id, _ := telemetry.TurnIDFromContext(ctx)
	return id
}

func (t TelemetryObserver) OnModelCall(ctx context.Context, step int, conv []provider.Message) {
	if step == 1 && len(conv) > 0 {
		t.Recorder.LocalFeatures(ctx, conv[len(conv)-1].Text)
	}
	t.Recorder.Emit("model_call", map[string]any{
		"turn_id":  turnID(ctx),
		"provider": t.Provider,
		"model":    t.Model,
		"step":     step,
		"messages": len(conv),
	})
}

func (t TelemetryObserver) OnModelResponse(ctx context.Context, step int, resp *provider.Response, dur time.Duration) {
	t.Recorder.Emit("model_response", map[string]any{
		"turn_id":     turnID(ctx),
		"step":        step,
		"duration_ms": dur.Milliseconds(),
		"text_size":   len(resp.Text),
		"tool_calls":  len(resp.ToolCalls),
	})
}

func (t TelemetryObserver) OnToolCall(ctx context.Context, ev ToolCallEvent) {
	fields := map[string]any{
		"turn_id":     turnID(ctx),
		"tool_name":   ev.Call.Name,
		"duration_ms": ev.Duration.Milliseconds(),
		"input_size":  len(ev.Call.Args),
		"output_size": len(ev.Result.Content),
		"error":       nil,
	}
	if ev.Err != nil {
		// A generic marker keeps handler messages, which may echo input, out of the log.
		fields["error"] = "tool error"
		fields["output_size"] = 0
	}
	t.Recorder.Emit("tool_exec", fields)
}

func (t TelemetryObserver) OnStepCeiling(ctx context.Context, steps int) {
	t.Recorder.Emit("step_ceiling", map[string]any{
		"turn_id": turnID(ctx),
		"steps":   steps,
	})
}
