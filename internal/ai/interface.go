package ai

import (
	"context"
	"fmt"

	"github.com/n3utr7no/Kaze-AI/internal/config"
)

// CompletionClient defines the contract for the hosted language-model service.
// This interface allows for swapping providers (Groq, Gemini, etc.) without
// touching the pipeline stages, and for stubbing the service in tests.
type CompletionClient interface {
	// Complete sends a chat-style message list and returns the raw completion
	// text (JSON text when the request asked for a structured response).
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Transcribe sends an audio payload to the speech-to-text model and
	// returns the transcript. Not every provider supports audio.
	Transcribe(ctx context.Context, req TranscriptionRequest) (string, error)
}

// NewClient builds the provider selected by configuration.
func NewClient(ctx context.Context, cfg config.AIConfig) (CompletionClient, error) {
	switch cfg.Provider {
	case config.ProviderGroq:
		return newGroqClient(cfg), nil
	case config.ProviderGemini:
		return newGeminiClient(ctx, cfg.GeminiKey)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
