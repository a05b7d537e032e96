package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/petasbytes/todo-agent/tools"
)

const anthropicMaxTokens = 2048

// AnthropicGateway talks to the Anthropic Messages API.
type AnthropicGateway struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropic returns a gateway authenticated with s.APIKey.
func NewAnthropic(s Settings) *AnthropicGateway {
	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithHTTPClient(httpClient(s, "")),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	c := anthropic.NewClient(opts...)
	return &AnthropicGateway{client: &c, model: anthropic.Model(s.Model)}
}

func (a *AnthropicGateway) Name() string { return Anthropic }

func (a *AnthropicGateway) Send(ctx context.Context, system string, conv []Message, defs []tools.ToolDefinition) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: int64(anthropicMaxTokens),
		Messages:  anthropicMessages(conv),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if len(defs) > 0 {
		params.Tools = anthropicTools(defs)
	}

	slog.Debug("anthropic request", "model", string(a.model), "messages", len(params.Messages), "tools", len(defs))
	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	var (
		texts []string
		resp  Response
	)
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			if v.Text != "" {
				texts = append(texts, v.Text)
			}
		case anthropic.ToolUseBlock:
			input := json.RawMessage(v.JSON.Input.Raw())
			if len(input) == 0 {
				input = json.RawMessage("{}")
			}
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{ID: v.ID, Name: v.Name, Args: input})
		}
	}
	resp.Text = strings.Join(texts, "\n")
	return &resp, nil
}

func anthropicTools(defs []tools.ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, d := range defs {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        d.Name,
			Description: anthropic.String(d.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: d.PropertiesMap(),
				Required:   d.Required(),
			},
		}})
	}
	return out
}

// anthropicMessages maps turns onto user/assistant messages. Tool results
// travel as tool_result blocks in a user message, adjacent to their tool_use.
func anthropicMessages(conv []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(conv))
	for _, m := range conv {
		switch m.Role {
		case RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
		case RoleModel:
			var blocks []anthropic.ContentBlockParamUnion
			if m.Text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Text))
			}
			for _, c := range m.ToolCalls {
				args := c.Args
				if len(args) == 0 {
					args = json.RawMessage("{}")
				}
				blocks = append(blocks, anthropic.ContentBlockParamUnion{OfToolUse: &anthropic.ToolUseBlockParam{
					ID:    c.ID,
					Name:  c.Name,
					Input: args,
				}})
			}
			if len(blocks) > 0 {
				out = append(out, anthropic.NewAssistantMessage(blocks...))
			}
		case RoleTool:
			blocks := make([]anthropic.ContentBlockParamUnion, 0, len(m.ToolResults))
			for _, r := range m.ToolResults {
				blocks = append(blocks, anthropic.NewToolResultBlock(r.CallID, r.Content, r.IsError))
			}
			if len(blocks) > 0 {
				out = append(out, anthropic.NewUserMessage(blocks...))
			}
		}
	}
	return out
}
