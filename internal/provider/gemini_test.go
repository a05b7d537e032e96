package provider_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/petasbytes/todo-agent/internal/provider"
)

const geminiReply = `{"candidates":[{"content":{"role":"model","parts":[
	{"text":"Checking."},
	{"functionCall":{"name":"listTodos","args":{}}}
]},"finishReason":"STOP","index":0}]}`

// streamAwareTransport answers streaming endpoints with a JSON array of
// chunks and everything else with a single object.
type streamAwareTransport struct {
	body     string
	captured *capture
}

func (f *streamAwareTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	f.captured.method = req.Method
	f.captured.url = req.URL.String()
	f.captured.header = req.Header.Clone()
	f.captured.body = b

	body := f.body
	if strings.Contains(req.URL.Path, "streamGenerateContent") {
		body = "[" + body + "]"
	}
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request:    req,
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

func assertGeminiToolCall(t *testing.T, resp *provider.Response) {
	t.Helper()
	if resp.Text != "Checking." || len(resp.ToolCalls) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	tc := resp.ToolCalls[0]
	if tc.Name != "listTodos" || !strings.HasPrefix(tc.ID, "call-") || string(tc.Args) != "{}" {
		t.Fatalf("unexpected tool call: %+v", tc)
	}
}

type geminiBody struct {
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text             string          `json:"text"`
			FunctionCall     json.RawMessage `json:"functionCall"`
			FunctionResponse json.RawMessage `json:"functionResponse"`
		} `json:"parts"`
	} `json:"contents"`
	Tools []struct {
		FunctionDeclarations []struct {
			Name string `json:"name"`
		} `json:"functionDeclarations"`
	} `json:"tools"`
}

func TestGemini_SendOverWire(t *testing.T) {
	capReq := &capture{}
	gw, err := provider.NewGemini(context.Background(), provider.Settings{
		Provider:   provider.Gemini,
		Model:      "m",
		APIKey:     "secret-key",
		HTTPClient: &http.Client{Transport: &streamAwareTransport{body: geminiReply, captured: capReq}},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	resp, err := gw.Send(context.Background(), "be brief", fullConversation(), todoDefs(t))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	assertGeminiToolCall(t, resp)

	if got := capReq.header.Get("x-goog-api-key"); got != "secret-key" {
		t.Fatalf("api key header = %q", got)
	}
	if !strings.Contains(capReq.url, "models/m:generateContent") {
		t.Fatalf("unexpected url: %s", capReq.url)
	}

	var body geminiBody
	if err := json.Unmarshal(capReq.body, &body); err != nil {
		t.Fatalf("decode body: %v\n%s", err, capReq.body)
	}
	if body.SystemInstruction == nil || len(body.SystemInstruction.Parts) != 1 || body.SystemInstruction.Parts[0].Text != "be brief" {
		t.Fatalf("system instruction not sent: %s", capReq.body)
	}
	if len(body.Contents) != 3 {
		t.Fatalf("contents = %d, want 3", len(body.Contents))
	}
	if body.Contents[1].Role != "model" || body.Contents[2].Role != "user" {
		t.Fatalf("roles: %s", capReq.body)
	}
	if len(body.Contents[2].Parts) != 1 || body.Contents[2].Parts[0].FunctionResponse == nil {
		t.Fatalf("tool result not sent as functionResponse: %s", capReq.body)
	}
	if len(body.Tools) != 1 || len(body.Tools[0].FunctionDeclarations) != 4 {
		t.Fatalf("tools not declared: %s", capReq.body)
	}
}

func TestGeminiChat_SendOverWire(t *testing.T) {
	capReq := &capture{}
	gw, err := provider.NewGeminiChat(context.Background(), provider.Settings{
		Provider:   provider.GeminiChat,
		Model:      "m",
		APIKey:     "secret-key",
		HTTPClient: &http.Client{Transport: &streamAwareTransport{body: geminiReply, captured: capReq}},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer gw.Close()

	resp, err := gw.Send(context.Background(), "be brief", fullConversation(), todoDefs(t))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	assertGeminiToolCall(t, resp)

	// The chat client drops its own key once a custom HTTP client is set.
	if got := capReq.header.Get("x-goog-api-key"); got != "secret-key" {
		t.Fatalf("api key header = %q", got)
	}

	var body geminiBody
	if err := json.Unmarshal(capReq.body, &body); err != nil {
		t.Fatalf("decode body: %v\n%s", err, capReq.body)
	}
	if body.SystemInstruction != nil {
		t.Fatalf("chat variant should not send a system instruction: %s", capReq.body)
	}
	if len(body.Contents) == 0 || len(body.Contents[0].Parts) == 0 {
		t.Fatalf("no contents sent: %s", capReq.body)
	}
	if first := body.Contents[0].Parts[0].Text; first != "be brief\n\nshow my list" {
		t.Fatalf("first user text = %q", first)
	}
	if len(body.Tools) != 1 || len(body.Tools[0].FunctionDeclarations) != 4 {
		t.Fatalf("tools not declared: %s", capReq.body)
	}
}

func TestLoggingTransport_RedactsKeyInTrace(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: provider.LevelTrace})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	capReq := &capture{}
	gw, err := provider.NewGeminiChat(context.Background(), provider.Settings{
		Provider:   provider.GeminiChat,
		Model:      "m",
		APIKey:     "secret-key",
		HTTPClient: &http.Client{Transport: &streamAwareTransport{body: geminiReply, captured: capReq}},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer gw.Close()

	if _, err := gw.Send(context.Background(), "", []provider.Message{provider.UserMessage("hi")}, nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if capReq.header.Get("x-goog-api-key") != "secret-key" {
		t.Fatal("key was not sent on the wire")
	}

	out := logs.String()
	for _, want := range []string{"http request", "http response", "[REDACTED]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in trace log:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret-key") {
		t.Fatalf("api key leaked into trace log:\n%s", out)
	}
}
