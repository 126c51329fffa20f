// README: Single-call semantic router (intent validity + slot extraction).
package routing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/n3utr7no/Kaze-AI/internal/ai"
	"github.com/n3utr7no/Kaze-AI/internal/modules/intake"
)

const systemPrompt = `You are the request router for a travel and lifestyle concierge.
Analyze the user's latest message and output ONLY a JSON object with exactly these keys:
{
  "status": "valid" or "invalid",
  "city": string,
  "day_offset": integer,
  "translation": string
}

Rules:
1. "status": "valid" when the message is about travel, lifestyle, food, culture, weather, or greetings.
   "invalid" for anything else (programming, homework, politics, unrelated topics).
2. "city": the city the user is asking about. If the user implies their current place
   ("here", "nearby", "around me") without naming a city, output exactly "CURRENT_LOCATION".
   If the user says "there" or similar, resolve it from the recent conversation.
   If no city can be determined, output "Tokyo".
3. "day_offset": the number of days from today the user is asking about. 0 means today,
   1 means tomorrow. Never negative.
4. "translation": the user's message translated to the opposite language.
   Japanese input -> English translation. Any other input -> Japanese translation.

Output only the JSON object, no commentary.`

// Service performs the routing stage: one completion call that classifies
// the request and extracts city, day offset, and a translated echo.
type Service struct {
	client ai.CompletionClient
	model  string
}

func NewService(client ai.CompletionClient, model string) *Service {
	return &Service{client: client, model: model}
}

// routedAnalysis is the model's wire shape. day_offset is a json.Number so a
// "1" emitted as 1.0 still parses.
type routedAnalysis struct {
	Status      string      `json:"status"`
	City        string      `json:"city"`
	DayOffset   json.Number `json:"day_offset"`
	Translation string      `json:"translation"`
}

// Route classifies userText and extracts its slots. Only the last two
// history turns travel with the request: anaphora like "what about
// tomorrow?" resolves from immediate context, and anything older just costs
// tokens. Failures surface as a GenerationError for the routing stage.
func (s *Service) Route(ctx context.Context, userText string, history []intake.HistoryTurn) (Analysis, error) {
	messages := make([]ai.Message, 0, 4)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: systemPrompt})
	for _, turn := range lastTurns(history, 2) {
		role := ai.RoleUser
		if turn.Role == "assistant" {
			role = ai.RoleAssistant
		}
		messages = append(messages, ai.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: userText})

	out, err := s.client.Complete(ctx, ai.CompletionRequest{
		Model:        s.model,
		Messages:     messages,
		JSONResponse: true,
	})
	if err != nil {
		return Analysis{}, &ai.GenerationError{Stage: "routing", Err: err}
	}

	var raw routedAnalysis
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return Analysis{}, &ai.GenerationError{Stage: "routing", Err: fmt.Errorf("unparseable router output: %w", err)}
	}

	analysis := Analysis{
		Status:      raw.Status,
		City:        raw.City,
		Translation: raw.Translation,
	}
	// Missing status in otherwise well-formed output means the model skipped
	// the classification, not that it rejected the request.
	if analysis.Status == "" {
		analysis.Status = StatusValid
	}
	if analysis.City == "" {
		analysis.City = DefaultCity
	}
	if offset := dayOffset(raw.DayOffset); offset > 0 {
		analysis.DayOffset = offset
	}
	return analysis, nil
}

// dayOffset reads the model's day_offset defensively: integers and whole
// floats count, anything else (absent, negative, garbage) clamps to 0.
func dayOffset(n json.Number) int {
	if v, err := n.Int64(); err == nil {
		return int(v)
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return 0
}

func lastTurns(history []intake.HistoryTurn, n int) []intake.HistoryTurn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
