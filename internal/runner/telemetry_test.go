package runner_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petasbytes/todo-agent/internal/provider"
	"github.com/petasbytes/todo-agent/internal/runner"
	"github.com/petasbytes/todo-agent/internal/telemetry"
)

func readEvents(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestTelemetryObserver_EmitsLoopEvents(t *testing.T) {
	dir := t.TempDir()
	rec := telemetry.New(telemetry.Config{Enabled: true, Dir: dir})
	reg, _ := todoRegistry(t)
	gw := &scriptedGateway{responses: []provider.Response{{
		Text:      "working",
		ToolCalls: []provider.ToolCall{toolCall("c1", "writeFile", `{"filePath":"secret-plans.md","content":"- [ ] Hide the cake"}`), toolCall("c2", "nope", `{}`)},
	}}}
	r := runner.New(gw, reg, "")
	r.MaxSteps = 1
	r.Observer = runner.TelemetryObserver{Recorder: rec, Provider: "scripted", Model: "m"}

	ctx := telemetry.WithTurnID(context.Background(), "turn-t")
	if _, err := r.Run(ctx, nil, "please hide the cake"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	events := readEvents(t, filepath.Join(dir, "events.jsonl"))
	var names []string
	for _, e := range events {
		names = append(names, e["event"].(string))
		if e["turn_id"] != "turn-t" {
			t.Fatalf("event without turn id: %v", e)
		}
	}
	want := "local_features,model_call,model_response,tool_exec,tool_exec,step_ceiling"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("events = %s, want %s", got, want)
	}

	ok, failed := events[3], events[4]
	if ok["tool_name"] != "writeFile" || ok["error"] != nil {
		t.Fatalf("success tool_exec: %v", ok)
	}
	if v, _ := ok["input_size"].(float64); v <= 0 {
		t.Fatalf("input_size: %v", ok["input_size"])
	}
	if v, _ := ok["output_size"].(float64); v <= 0 {
		t.Fatalf("output_size: %v", ok["output_size"])
	}
	if failed["tool_name"] != "nope" || failed["error"] != "tool error" || failed["output_size"] != float64(0) {
		t.Fatalf("failed tool_exec: %v", failed)
	}

	raw, _ := os.ReadFile(filepath.Join(dir, "events.jsonl"))
	for _, leak := range []string{"secret-plans", "Hide the cake", "please hide"} {
		if strings.Contains(string(raw), leak) {
			t.Fatalf("payload %q leaked into telemetry", leak)
		}
	}
}

func TestTelemetryObserver_NilRecorderIsSilent(t *testing.T) {
	gw := &scriptedGateway{responses: []provider.Response{{Text: "ok"}}}
	r := runner.New(gw, nil, "")
	r.Observer = runner.TelemetryObserver{}
	if _, err := r.Run(context.Background(), nil, "hi"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
