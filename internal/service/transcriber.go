// README: Speech-to-text plus translation for the /transcribe endpoint.
package service

import (
	"context"

	"github.com/n3utr7no/Kaze-AI/internal/ai"
)

const transcribeTranslatePrompt = "Translate Japanese to English only. Output only the translation."

// Transcriber turns an audio clip into a Japanese transcript and its English
// translation: one speech-to-text call, then one completion call on the
// small model. It shares the retrying completion client with the planner.
type Transcriber struct {
	client          ai.CompletionClient
	transcribeModel string
	translateModel  string
}

func NewTranscriber(client ai.CompletionClient, transcribeModel, translateModel string) *Transcriber {
	return &Transcriber{
		client:          client,
		transcribeModel: transcribeModel,
		translateModel:  translateModel,
	}
}

// Transcription is the /transcribe response body.
type Transcription struct {
	Transcript  string `json:"transcript"`
	Translation string `json:"translation"`
}

// Transcribe recognizes the audio and translates the transcript. The
// filename travels along so the decoder can read the container format from
// its extension; the audio itself never touches disk.
func (t *Transcriber) Transcribe(ctx context.Context, filename string, audio []byte) (Transcription, error) {
	transcript, err := t.client.Transcribe(ctx, ai.TranscriptionRequest{
		Filename: filename,
		Data:     audio,
		Model:    t.transcribeModel,
		Language: "ja",
		// Biases the recognizer toward Japanese on short clips.
		Prompt: "こんにちは",
	})
	if err != nil {
		return Transcription{}, &ai.GenerationError{Stage: "transcription", Err: err}
	}

	translation, err := t.client.Complete(ctx, ai.CompletionRequest{
		Model: t.translateModel,
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: transcribeTranslatePrompt},
			{Role: ai.RoleUser, Content: transcript},
		},
	})
	if err != nil {
		return Transcription{}, &ai.GenerationError{Stage: "transcription", Err: err}
	}

	return Transcription{Transcript: transcript, Translation: translation}, nil
}
