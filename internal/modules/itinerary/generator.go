// README: Generation stage; one completion call producing greeting-or-itinerary JSON.
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/n3utr7no/Kaze-AI/internal/ai"
	"github.com/n3utr7no/Kaze-AI/internal/modules/intake"
	"github.com/n3utr7no/Kaze-AI/internal/weather"
)

const generatePromptTemplate = `You are a %s concierge. Respond strictly within the "%s" category,
even if the earlier conversation drifted to other topics. Respond in %s.

Context for the plan:
- Location: %s
- Date: %s
- Weather: %s, %s°C

Decide the response mode:
- "greeting" when the user is only greeting or making small talk. Ignore the weather.
  "intro" welcomes the user, and "timeline_data" holds exactly three SPECIFIC suggested
  next actions relevant to the %s category (concrete suggestions, not generic placeholders).
  "title" and "weather_report" are empty strings.
- "itinerary" when the user asks for a plan or follows up on one. Produce:
  - "title": a short catchy title for the day.
  - "weather_report": one sentence that works the weather above into the plan.
  - "timeline_data": exactly three chronological entries. Each entry is an object:
    {"time": "HH:MM", "activity": ..., "description": ..., "coordinates": [lat, lon]}.
    Name real, concrete places and activities, never generic categories.
    "coordinates" may be omitted when unknown.

Formatting rules:
- "activity" and "description" must NOT begin with a bullet, dash, number, or semicolon.
- Output ONLY a JSON object with keys: mode, intro, title, weather_report, timeline_data.`

// Generator runs the generation stage. Unlike routing it feeds the model the
// FULL conversation history: plan quality depends on longer-range context
// than slot extraction does.
type Generator struct {
	client ai.CompletionClient
	model  string
}

func NewGenerator(client ai.CompletionClient, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Generate produces the primary-language content for the request. The
// snapshot's sentinel values ("--", "Not Found", "Error") interpolate into
// the prompt as-is; the model is expected to write around missing weather
// rather than the pipeline special-casing it.
func (g *Generator) Generate(ctx context.Context, category, language string, snap weather.Snapshot, history []intake.HistoryTurn, userText string) (Content, error) {
	system := fmt.Sprintf(generatePromptTemplate,
		category, category, language,
		snap.CityName, snap.Date, snap.Cond, snap.Temp,
		category)

	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: system})
	for _, turn := range history {
		role := ai.RoleUser
		if turn.Role == "assistant" {
			role = ai.RoleAssistant
		}
		messages = append(messages, ai.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: "User Input: " + userText})

	out, err := g.client.Complete(ctx, ai.CompletionRequest{
		Model:        g.model,
		Messages:     messages,
		JSONResponse: true,
	})
	if err != nil {
		return Content{}, &ai.GenerationError{Stage: "generation", Err: err}
	}

	var content Content
	if err := json.Unmarshal([]byte(out), &content); err != nil {
		return Content{}, &ai.GenerationError{Stage: "generation", Err: fmt.Errorf("unparseable generation output: %w", err)}
	}
	return content, nil
}
