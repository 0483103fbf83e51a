package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leasing_crm_backend/internal/leads"

	"google.golang.org/genai"
)

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// GeminiAssistant answers with a Gemini model grounded on the current pipeline.
type GeminiAssistant struct {
	generate  generateFunc
	model     string
	directory leads.Directory
	now       func() time.Time
}

func NewGeminiAssistant(ctx context.Context, apiKey, model string, directory leads.Directory) (*GeminiAssistant, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return newGeminiAssistant(client.Models.GenerateContent, model, directory), nil
}

func newGeminiAssistant(generate generateFunc, model string, directory leads.Directory) *GeminiAssistant {
	return &GeminiAssistant{
		generate:  generate,
		model:     model,
		directory: directory,
		now:       time.Now,
	}
}

func (a *GeminiAssistant) Ask(ctx context.Context, question string, history []Message) (string, error) {
	all, err := a.directory.ListLeads(ctx)
	if err != nil {
		return "", fmt.Errorf("load pipeline: %w", err)
	}
	summary := Summarize(all, a.now())

	temperature := float32(0.2)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: summary.Prompt()}},
		},
		Temperature: &temperature,
	}

	resp, err := a.generate(ctx, a.model, buildContents(question, history), config)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", fmt.Errorf("model returned an empty answer")
	}
	return answer, nil
}

func buildContents(question string, history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		role := genai.Role(genai.RoleUser)
		if msg.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	return append(contents, genai.NewContentFromText(question, genai.RoleUser))
}
