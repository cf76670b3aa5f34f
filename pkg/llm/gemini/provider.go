// Package gemini adapts the Google GenAI client to llm.LLMProvider,
// including function calling for the tool agent.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ai-recruiter-be/pkg/llm"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

type Provider struct {
	client *genai.Client
	model  string
}

var _ llm.LLMProvider = &Provider{}

func NewProvider(ctx context.Context, apiKey, model string) (*Provider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Provider{client: client, model: model}, nil
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Message, error) {
	opts := llm.Apply(llm.Options{Model: p.model, Temperature: 0.7}, options...)

	system, contents, err := toContents(history)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Models.GenerateContent(ctx, opts.Model, contents, generateConfig(system, opts))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	return fromResponse(resp)
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	msg, err := p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

func generateConfig(system *genai.Content, opts *llm.Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       genai.Ptr(float32(opts.Temperature)),
		ThinkingConfig:    &genai.ThinkingConfig{IncludeThoughts: true},
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if len(opts.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, len(opts.Tools))
		for i, t := range opts.Tools {
			decls[i] = &genai.FunctionDeclaration{
				Name:                 t.Name,
				Description:          t.Description,
				ParametersJsonSchema: t.Parameters,
			}
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}
	return cfg
}

// toContents splits out the system prompt and maps the rest of the history.
// Tool results become function responses keyed by the name of the call they
// answer.
func toContents(history []llm.Message) (*genai.Content, []*genai.Content, error) {
	var system []string
	callNames := make(map[string]string)
	contents := make([]*genai.Content, 0, len(history))

	for _, m := range history {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, m.Content)

		case llm.RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))

		case llm.RoleAssistant:
			c := &genai.Content{Role: string(genai.RoleModel)}
			if m.Content != "" {
				c.Parts = append(c.Parts, &genai.Part{Text: m.Content})
			}
			for _, tc := range m.ToolCalls {
				args := map[string]any{}
				if tc.Arguments != "" {
					if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
						return nil, nil, fmt.Errorf("tool call %s arguments: %w", tc.Name, err)
					}
				}
				callNames[tc.ID] = tc.Name
				c.Parts = append(c.Parts, &genai.Part{FunctionCall: &genai.FunctionCall{ID: tc.ID, Name: tc.Name, Args: args}})
			}
			if len(c.Parts) > 0 {
				contents = append(contents, c)
			}

		case llm.RoleTool:
			name := m.Name
			if name == "" {
				name = callNames[m.ToolCallID]
			}
			contents = append(contents, &genai.Content{
				Role: string(genai.RoleUser),
				Parts: []*genai.Part{{FunctionResponse: &genai.FunctionResponse{
					ID:       m.ToolCallID,
					Name:     name,
					Response: map[string]any{"output": m.Content},
				}}},
			})
		}
	}

	if len(system) == 0 {
		return nil, contents, nil
	}
	return genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser), contents, nil
}

// fromResponse reads the first candidate. Thought parts go to Reasoning.
func fromResponse(resp *genai.GenerateContentResponse) (*llm.Message, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return nil, errors.New("gemini api returned no candidates")
	}

	var content, reasoning strings.Builder
	msg := &llm.Message{Role: llm.RoleAssistant}
	for i, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		switch {
		case part.FunctionCall != nil:
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return nil, fmt.Errorf("encode %s arguments: %w", part.FunctionCall.Name, err)
			}
			id := part.FunctionCall.ID
			if id == "" {
				id = fmt.Sprintf("call_%d", i)
			}
			msg.ToolCalls = append(msg.ToolCalls, llm.ToolCall{ID: id, Name: part.FunctionCall.Name, Arguments: string(args)})
		case part.Thought:
			reasoning.WriteString(part.Text)
		default:
			content.WriteString(part.Text)
		}
	}

	msg.Content = strings.TrimSpace(content.String())
	msg.Reasoning = strings.TrimSpace(reasoning.String())
	return msg, nil
}
