package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiClient implements CompletionClient using Google's Gemini models.
// Kept as an alternate provider so the pipeline can run where no Groq key is
// available; audio transcription is Groq-only.
type geminiClient struct {
	client *genai.Client
}

func newGeminiClient(ctx context.Context, apiKey string) (*geminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &geminiClient{client: client}, nil
}

func (g *geminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	// GenerativeModel returns a fresh handle, so per-request settings do not
	// race across concurrent calls.
	model := g.client.GenerativeModel(req.Model)
	if req.JSONResponse {
		// Force JSON response for structured parsing.
		model.ResponseMIMEType = "application/json"
	}
	model.SetTemperature(0.4)

	resp, err := model.GenerateContent(ctx, genai.Text(flattenMessages(req.Messages)))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned no candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}
	if req.JSONResponse {
		return cleanJSONString(text.String()), nil
	}
	return text.String(), nil
}

func (g *geminiClient) Transcribe(ctx context.Context, req TranscriptionRequest) (string, error) {
	return "", fmt.Errorf("gemini: audio transcription not supported; use the groq provider")
}

// flattenMessages folds a chat transcript into a single prompt. The Gemini SDK
// accepts a system instruction, but inlining the whole transcript binds the
// context more reliably for single-shot structured extraction.
func flattenMessages(messages []Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch m.Role {
		case RoleSystem:
			b.WriteString(m.Content)
		case RoleAssistant:
			b.WriteString("Assistant: ")
			b.WriteString(m.Content)
		default:
			b.WriteString("User: ")
			b.WriteString(m.Content)
		}
	}
	return b.String()
}

// cleanJSONString removes markdown code fences if present (e.g. ```json ... ```).
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
