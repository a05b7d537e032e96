// Package provider adapts hosted model APIs to one request/response contract.
//
// Each variant translates the conversation and tool definitions into its
// provider's native function-calling format and maps the reply back to a
// Response holding text, tool calls, or both.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/petasbytes/todo-agent/tools"
)

// Provider names accepted by New.
const (
	Anthropic  = "anthropic"
	Gemini     = "gemini"
	GeminiChat = "gemini-chat"
	OpenAI     = "openai"
)

// Default models per provider.
const (
	DefaultAnthropicModel = "claude-3-5-sonnet-20241022"
	DefaultGeminiModel    = "gemini-2.0-flash-exp"
	DefaultOpenAIModel    = "gpt-4o"
)

// Names lists the supported provider names.
func Names() []string { return []string{Gemini, GeminiChat, Anthropic, OpenAI} }

// DefaultModel returns the default model for a provider name, or "".
func DefaultModel(name string) string {
	switch name {
	case Anthropic:
		return DefaultAnthropicModel
	case Gemini, GeminiChat:
		return DefaultGeminiModel
	case OpenAI:
		return DefaultOpenAIModel
	}
	return ""
}

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
	RoleTool  Role = "tool"
)

// ToolCall is a tool invocation requested by the model. Args are untrusted.
type ToolCall struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

// ToolResult is the outcome of one ToolCall, relayed back to the model.
type ToolResult struct {
	CallID  string `json:"call_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// Message is one conversation turn. User turns carry Text, model turns carry
// Text and/or ToolCalls, tool turns carry ToolResults.
type Message struct {
	Role        Role         `json:"role"`
	Text        string       `json:"text,omitempty"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// UserMessage returns a user turn holding text.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// Response is a model reply: free text, tool calls, or both.
type Response struct {
	Text      string     `json:"text,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Gateway sends a conversation to a hosted model. A nil defs slice means a
// plain request without tools.
type Gateway interface {
	Name() string
	Send(ctx context.Context, system string, conv []Message, defs []tools.ToolDefinition) (*Response, error)
}

// Settings selects and configures a Gateway.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	// HTTPClient supplies the base transport; nil means http.DefaultTransport.
	HTTPClient *http.Client
}

const defaultTimeout = 2 * time.Minute

// New builds the Gateway named by s.Provider.
func New(ctx context.Context, s Settings) (Gateway, error) {
	if s.Model == "" {
		s.Model = DefaultModel(s.Provider)
	}
	switch s.Provider {
	case Anthropic:
		return NewAnthropic(s), nil
	case Gemini:
		return NewGemini(ctx, s)
	case GeminiChat:
		return NewGeminiChat(ctx, s)
	case OpenAI:
		return NewOpenAI(s), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", s.Provider)
	}
}

// Close releases gateway resources when the variant holds any.
func Close(g Gateway) error {
	if c, ok := g.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func newCallID() string {
	return "call-" + uuid.New().String()
}

// argsMap decodes tool arguments into a map for SDKs that take structured args.
func argsMap(raw json.RawMessage) map[string]any {
	m := map[string]any{}
	if len(raw) == 0 {
		return m
	}
	_ = json.Unmarshal(raw, &m)
	return m
}

// rawArgs encodes structured args, defaulting to an empty object.
func rawArgs(args map[string]any) json.RawMessage {
	if len(args) == 0 {
		return json.RawMessage("{}")
	}
	b, err := json.Marshal(args)
	if err != nil {
		return json.RawMessage("{}")
	}
	return b
}

// resultMap turns a tool result into an object for SDKs whose function
// responses must be structured. JSON objects pass through unchanged.
func resultMap(content string) map[string]any {
	m := map[string]any{}
	if err := json.Unmarshal([]byte(content), &m); err == nil {
		return m
	}
	return map[string]any{"result": content}
}
