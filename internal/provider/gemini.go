package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/petasbytes/todo-agent/tools"
	"google.golang.org/genai"
)

// GeminiGateway talks to the Gemini API through the Google Gen AI SDK.
type GeminiGateway struct {
	client *genai.Client
	model  string
}

// NewGemini returns a gateway for the Gemini developer API.
func NewGemini(ctx context.Context, s Settings) (*GeminiGateway, error) {
	cfg := &genai.ClientConfig{
		APIKey:     s.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient(s, ""),
	}
	if s.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: s.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiGateway{client: client, model: s.Model}, nil
}

func (g *GeminiGateway) Name() string { return Gemini }

func (g *GeminiGateway) Send(ctx context.Context, system string, conv []Message, defs []tools.ToolDefinition) (*Response, error) {
	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if len(defs) > 0 {
		config.Tools = geminiTools(defs)
	}

	contents := geminiContents(conv)
	slog.Debug("gemini request", "model", g.model, "contents", len(contents), "tools", len(defs))
	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return geminiResponse(res), nil
}

func geminiTools(defs []tools.ToolDefinition) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, d := range defs {
		params := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
			Required:   d.Required(),
		}
		for _, p := range d.Properties() {
			params.Properties[p.Name] = &genai.Schema{
				Type:        geminiType(p.Type),
				Description: p.Description,
			}
			params.PropertyOrdering = append(params.PropertyOrdering, p.Name)
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  params,
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func geminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "boolean":
		return genai.TypeBoolean
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeObject
	}
}

// geminiContents maps turns onto user/model contents. Function responses
// travel in a user content, matched to their call by ID and name.
func geminiContents(conv []Message) []*genai.Content {
	var out []*genai.Content
	for _, m := range conv {
		var (
			parts []*genai.Part
			role  = "user"
		)
		switch m.Role {
		case RoleUser:
			parts = append(parts, &genai.Part{Text: m.Text})
		case RoleModel:
			role = "model"
			if m.Text != "" {
				parts = append(parts, &genai.Part{Text: m.Text})
			}
			for _, c := range m.ToolCalls {
				parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{
					ID:   c.ID,
					Name: c.Name,
					Args: argsMap(c.Args),
				}})
			}
		case RoleTool:
			for _, r := range m.ToolResults {
				parts = append(parts, &genai.Part{FunctionResponse: &genai.FunctionResponse{
					ID:       r.CallID,
					Name:     r.Name,
					Response: resultMap(r.Content),
				}})
			}
		}
		if len(parts) > 0 {
			out = append(out, &genai.Content{Role: role, Parts: parts})
		}
	}
	return out
}

func geminiResponse(res *genai.GenerateContentResponse) *Response {
	var (
		resp  Response
		texts []string
	)
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return &resp
	}
	for _, part := range res.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
		if fc := part.FunctionCall; fc != nil {
			id := fc.ID
			if id == "" {
				id = newCallID()
			}
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{ID: id, Name: fc.Name, Args: rawArgs(fc.Args)})
		}
	}
	resp.Text = strings.Join(texts, "")
	return &resp
}
