package runner

import (
	"context"
	"time"

	"github.com/petasbytes/todo-agent/internal/provider"
)

// ToolCallEvent describes one executed tool call.
type ToolCallEvent struct {
	Step int
	// Seq numbers calls across the whole run, starting at 1.
	Seq      int
	Call     provider.ToolCall
	Result   provider.ToolResult
	Duration time.Duration
	// Err is the handler error, panic or unknown-tool condition, if any.
	Err error
}

// Observer receives loop events. Implementations must not block for long;
// they run inline with the loop.
type Observer interface {
	OnModelCall(ctx context.Context, step int, conv []provider.Message)
	OnModelResponse(ctx context.Context, step int, resp *provider.Response, dur time.Duration)
	OnToolCall(ctx context.Context, ev ToolCallEvent)
	OnStepCeiling(ctx context.Context, steps int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnModelCall(context.Context, int, []provider.Message) {}
func (NopObserver) OnModelResponse(context.Context, int, *provider.Response, time.Duration) {}
func (NopObserver) OnToolCall(context.Context, ToolCallEvent) {}
func (NopObserver) OnStepCeiling(context.Context, int) {}

// Observers fans events out in order.
type Observers []Observer

func (o Observers) OnModelCall(ctx context.Context, step int, conv []provider.Message) {
	for _, ob := range o {
		ob.OnModelCall(ctx, step, conv)
	}
}

func (o Observers) OnModelResponse(ctx context.Context, step int, resp *provider.Response, dur time.Duration) {
	for _, ob := range o {
		ob.OnModelResponse(ctx, step, resp, dur)
	}
}

func (o Observers) OnToolCall(ctx context.Context, ev ToolCallEvent) {
	for _, ob := range o {
		ob.OnToolCall(ctx, ev)
	}
}

func (o Observers) OnStepCeiling(ctx context.Context, steps int) {
	for _, ob := range o {
		ob.OnStepCeiling(ctx, steps)
	}
}
