package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/petasbytes/todo-agent/tools"
	"github.com/tidwall/gjson"
)

// DefaultOpenAIBaseURL is the public chat completions endpoint root.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIGateway talks to an OpenAI-compatible chat completions endpoint.
type OpenAIGateway struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI returns a gateway for s.BaseURL, or the public API when unset.
func NewOpenAI(s Settings) *OpenAIGateway {
	base := strings.TrimRight(s.BaseURL, "/")
	if base == "" {
		base = DefaultOpenAIBaseURL
	}
	return &OpenAIGateway{
		apiKey:  s.APIKey,
		model:   s.Model,
		baseURL: base,
		client:  httpClient(s, ""),
	}
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
	Tools    []openAITool    `json:"tools,omitempty"`
}

type openAIMessage struct {
	Role       string           `json:"role"`
	Content    *string          `json:"content"`
	ToolCalls  []openAIToolCall `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
}

type openAIToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type openAITool struct {
	Type     string         `json:"type"`
	Function openAIFunction `json:"function"`
}

type openAIFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

func (o *OpenAIGateway) Name() string { return OpenAI }

func (o *OpenAIGateway) Send(ctx context.Context, system string, conv []Message, defs []tools.ToolDefinition) (*Response, error) {
	reqBody := openAIRequest{
		Model:    o.model,
		Messages: openAIMessages(system, conv),
	}
	for _, d := range defs {
		reqBody.Tools = append(reqBody.Tools, openAITool{
			Type: "function",
			Function: openAIFunction{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.ParametersMap(),
			},
		})
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	slog.Debug("openai request", "model", o.model, "messages", len(reqBody.Messages), "tools", len(defs))
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
			return nil, fmt.Errorf("openai: API error (status %d): %s", resp.StatusCode, msg.String())
		}
		return nil, fmt.Errorf("openai: API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return parseOpenAIResponse(body)
}

func parseOpenAIResponse(body []byte) (*Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("openai: failed to parse response")
	}
	choice := gjson.GetBytes(body, "choices.0.message")
	if !choice.Exists() {
		return nil, fmt.Errorf("openai: no response choices returned")
	}

	resp := &Response{Text: choice.Get("content").String()}
	for _, tc := range choice.Get("tool_calls").Array() {
		args := tc.Get("function.arguments").String()
		var raw json.RawMessage
		switch {
		case strings.TrimSpace(args) == "":
			raw = json.RawMessage("{}")
		case gjson.Valid(args):
			raw = json.RawMessage(args)
		default:
			// Malformed arguments reach input validation as a JSON string.
			quoted, _ := json.Marshal(args)
			raw = quoted
		}
		id := tc.Get("id").String()
		if id == "" {
			id = newCallID()
		}
		resp.ToolCalls = append(resp.ToolCalls, ToolCall{ID: id, Name: tc.Get("function.name").String(), Args: raw})
	}
	return resp, nil
}

func openAIMessages(system string, conv []Message) []openAIMessage {
	var out []openAIMessage
	if system != "" {
		out = append(out, openAIMessage{Role: "system", Content: strPtr(system)})
	}
	for _, m := range conv {
		switch m.Role {
		case RoleUser:
			out = append(out, openAIMessage{Role: "user", Content: strPtr(m.Text)})
		case RoleModel:
			if m.Text == "" && len(m.ToolCalls) == 0 {
				continue
			}
			msg := openAIMessage{Role: "assistant"}
			if m.Text != "" {
				msg.Content = strPtr(m.Text)
			}
			for _, c := range m.ToolCalls {
				var tc openAIToolCall
				tc.ID = c.ID
				tc.Type = "function"
				tc.Function.Name = c.Name
				tc.Function.Arguments = string(c.Args)
				if tc.Function.Arguments == "" {
					tc.Function.Arguments = "{}"
				}
				msg.ToolCalls = append(msg.ToolCalls, tc)
			}
			out = append(out, msg)
		case RoleTool:
			for _, r := range m.ToolResults {
				out = append(out, openAIMessage{Role: "tool", Content: strPtr(r.Content), ToolCallID: r.CallID})
			}
		}
	}
	return out
}

func strPtr(s string) *string { return &s }
