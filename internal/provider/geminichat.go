package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	chatgenai "github.com/google/generative-ai-go/genai"
	"github.com/petasbytes/todo-agent/tools"
	"google.golang.org/api/option"
)

// GeminiChatGateway drives Gemini through the chat-session client. The whole
// conversation is replayed as session history on every Send.
type GeminiChatGateway struct {
	client *chatgenai.Client
	model  string
}

// NewGeminiChat returns a chat-session gateway for the Gemini API.
func NewGeminiChat(ctx context.Context, s Settings) (*GeminiChatGateway, error) {
	opts := []option.ClientOption{
		option.WithAPIKey(s.APIKey),
		option.WithHTTPClient(httpClient(s, "x-goog-api-key")),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(s.BaseURL))
	}
	client, err := chatgenai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini chat client: %w", err)
	}
	return &GeminiChatGateway{client: client, model: s.Model}, nil
}

func (g *GeminiChatGateway) Name() string { return GeminiChat }

// Close releases the underlying client.
func (g *GeminiChatGateway) Close() error {
	return g.client.Close()
}

func (g *GeminiChatGateway) Send(ctx context.Context, system string, conv []Message, defs []tools.ToolDefinition) (*Response, error) {
	history := chatContents(system, conv)
	if len(history) == 0 {
		return nil, fmt.Errorf("gemini-chat: empty conversation")
	}

	gm := g.client.GenerativeModel(g.model)
	if len(defs) > 0 {
		gm.Tools = chatTools(defs)
	}

	cs := gm.StartChat()
	cs.History = history[:len(history)-1]
	last := history[len(history)-1]

	slog.Debug("gemini-chat request", "model", g.model, "history", len(cs.History), "tools", len(defs))
	res, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini-chat: %w", err)
	}
	return chatResponse(res), nil
}

func chatTools(defs []tools.ToolDefinition) []*chatgenai.Tool {
	decls := make([]*chatgenai.FunctionDeclaration, 0, len(defs))
	for _, d := range defs {
		params := &chatgenai.Schema{
			Type:       chatgenai.TypeObject,
			Properties: map[string]*chatgenai.Schema{},
			Required:   d.Required(),
		}
		for _, p := range d.Properties() {
			params.Properties[p.Name] = &chatgenai.Schema{
				Type:        chatType(p.Type),
				Description: p.Description,
			}
		}
		decls = append(decls, &chatgenai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  params,
		})
	}
	return []*chatgenai.Tool{{FunctionDeclarations: decls}}
}

func chatType(t string) chatgenai.Type {
	switch t {
	case "string":
		return chatgenai.TypeString
	case "boolean":
		return chatgenai.TypeBoolean
	case "integer":
		return chatgenai.TypeInteger
	case "number":
		return chatgenai.TypeNumber
	case "array":
		return chatgenai.TypeArray
	default:
		return chatgenai.TypeObject
	}
}

// chatContents converts turns into chat contents. The chat client has no
// system slot, so the system prompt is prefixed to the first user text.
func chatContents(system string, conv []Message) []*chatgenai.Content {
	var out []*chatgenai.Content
	prefixed := system == ""
	for _, m := range conv {
		var (
			parts []chatgenai.Part
			role  = "user"
		)
		switch m.Role {
		case RoleUser:
			text := m.Text
			if !prefixed {
				text = system + "\n\n" + text
				prefixed = true
			}
			parts = append(parts, chatgenai.Text(text))
		case RoleModel:
			role = "model"
			if m.Text != "" {
				parts = append(parts, chatgenai.Text(m.Text))
			}
			for _, c := range m.ToolCalls {
				parts = append(parts, chatgenai.FunctionCall{Name: c.Name, Args: argsMap(c.Args)})
			}
		case RoleTool:
			for _, r := range m.ToolResults {
				parts = append(parts, chatgenai.FunctionResponse{Name: r.Name, Response: resultMap(r.Content)})
			}
		}
		if len(parts) > 0 {
			out = append(out, &chatgenai.Content{Role: role, Parts: parts})
		}
	}
	return out
}

func chatResponse(res *chatgenai.GenerateContentResponse) *Response {
	var (
		resp  Response
		texts []string
	)
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return &resp
	}
	for _, part := range res.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case chatgenai.Text:
			if v != "" {
				texts = append(texts, string(v))
			}
		case chatgenai.FunctionCall:
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{ID: newCallID(), Name: v.Name, Args: rawArgs(v.Args)})
		}
	}
	resp.Text = strings.Join(texts, "")
	return &resp
}
