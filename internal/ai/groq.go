package ai

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/n3utr7no/Kaze-AI/internal/config"
)

// groqClient talks to Groq's OpenAI-compatible API. The underlying client is
// stateless and safe for concurrent use by multiple in-flight requests.
type groqClient struct {
	client *openai.Client
}

func newGroqClient(cfg config.AIConfig) *groqClient {
	oc := openai.DefaultConfig(cfg.GroqKey)
	oc.BaseURL = cfg.GroqBaseURL
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &groqClient{client: openai.NewClientWithConfig(oc)}
}

func (g *groqClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	}
	if req.JSONResponse {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("groq: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq: API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *groqClient) Transcribe(ctx context.Context, req TranscriptionRequest) (string, error) {
	resp, err := g.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    req.Model,
		FilePath: req.Filename,
		Reader:   bytes.NewReader(req.Data),
		Language: req.Language,
		Prompt:   req.Prompt,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("groq: transcription: %w", err)
	}
	return resp.Text, nil
}
