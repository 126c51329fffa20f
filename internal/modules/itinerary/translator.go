// README: Translation stage; re-expresses generated content in another language.
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/n3utr7no/Kaze-AI/internal/ai"
)

const translatePromptTemplate = `You are a translation engine. Translate every natural-language VALUE in the
JSON object the user provides into %s.

Strict rules:
- Do NOT change, add, remove, or translate any KEY.
- Do NOT alter numbers. Coordinates must stay byte-identical.
- Keep the exact same JSON structure, including empty strings and arrays.
- Output ONLY the translated JSON object.`

// Translator runs the translation stage: one completion call that mirrors
// the generated content into a second language. Keys and numbers must
// survive untouched; a garbled translation is a data-quality risk, but a
// structurally malformed response is fatal to the request.
type Translator struct {
	client ai.CompletionClient
	model  string
}

func NewTranslator(client ai.CompletionClient, model string) *Translator {
	return &Translator{client: client, model: model}
}

func (t *Translator) Translate(ctx context.Context, content Content, targetLanguage string) (Content, error) {
	payload, err := json.Marshal(content)
	if err != nil {
		return Content{}, &ai.GenerationError{Stage: "translation", Err: fmt.Errorf("marshal content: %w", err)}
	}

	out, err := t.client.Complete(ctx, ai.CompletionRequest{
		Model: t.model,
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: fmt.Sprintf(translatePromptTemplate, targetLanguage)},
			{Role: ai.RoleUser, Content: string(payload)},
		},
		JSONResponse: true,
	})
	if err != nil {
		return Content{}, &ai.GenerationError{Stage: "translation", Err: err}
	}

	var translated Content
	if err := json.Unmarshal([]byte(out), &translated); err != nil {
		return Content{}, &ai.GenerationError{Stage: "translation", Err: fmt.Errorf("unparseable translation output: %w", err)}
	}
	return translated, nil
}
