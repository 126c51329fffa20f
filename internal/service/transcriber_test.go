package service

import (
	"context"
	"errors"
	"testing"

	"github.com/n3utr7no/Kaze-AI/internal/ai"
)

// audioClient is a test double for the two-call transcription flow.
type audioClient struct {
	transcribeReq ai.TranscriptionRequest
	transcribeOut string
	transcribeErr error
	completeReq   ai.CompletionRequest
	completeOut   string
	completeErr   error
}

func (a *audioClient) Transcribe(_ context.Context, req ai.TranscriptionRequest) (string, error) {
	a.transcribeReq = req
	return a.transcribeOut, a.transcribeErr
}

func (a *audioClient) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	a.completeReq = req
	return a.completeOut, a.completeErr
}

func TestTranscribeHappyPath(t *testing.T) {
	client := &audioClient{
		transcribeOut: "京都に行きたいです",
		completeOut:   "I want to go to Kyoto",
	}
	tr := NewTranscriber(client, "whisper-large-v3", "small-model")

	got, err := tr.Transcribe(context.Background(), "clip.webm", []byte{0x1a, 0x45})
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if got.Transcript != "京都に行きたいです" || got.Translation != "I want to go to Kyoto" {
		t.Errorf("result = %+v", got)
	}

	if client.transcribeReq.Filename != "clip.webm" {
		t.Errorf("filename = %q", client.transcribeReq.Filename)
	}
	if client.transcribeReq.Language != "ja" || client.transcribeReq.Prompt != "こんにちは" {
		t.Errorf("transcription request = %+v", client.transcribeReq)
	}
	if client.transcribeReq.Model != "whisper-large-v3" {
		t.Errorf("model = %q", client.transcribeReq.Model)
	}

	if client.completeReq.Model != "small-model" {
		t.Errorf("translation model = %q", client.completeReq.Model)
	}
	if client.completeReq.Messages[1].Content != "京都に行きたいです" {
		t.Errorf("expected transcript forwarded, got %q", client.completeReq.Messages[1].Content)
	}
}

func TestTranscribeFailuresAreGenerationErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *audioClient
	}{
		{"speech-to-text fails", &audioClient{transcribeErr: errors.New("audio rejected")}},
		{"translation fails", &audioClient{transcribeOut: "text", completeErr: errors.New("exhausted retries")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranscriber(tt.client, "whisper", "small")
			_, err := tr.Transcribe(context.Background(), "clip.webm", nil)
			var genErr *ai.GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("expected GenerationError, got %v", err)
			}
			if genErr.Stage != "transcription" {
				t.Errorf("stage = %q", genErr.Stage)
			}
		})
	}
}
