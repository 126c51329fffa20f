// README: Inbound plan-request model; immutable after validation.
package intake

import "github.com/n3utr7no/Kaze-AI/internal/types"

// Defaults applied when the caller omits optional fields.
const (
	DefaultCategory = "Travel"
	DefaultLanguage = "English"
)

// HistoryTurn is one prior turn of the conversation. Content arrives as any
// JSON value and is coerced to a string during validation; the server never
// mutates or stores history.
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PlanRequest is the validated inbound request. Construct it through
// ParseRequest only; handlers and services treat it as read-only.
type PlanRequest struct {
	Text         string
	Category     string
	Language     string
	History      []HistoryTurn
	UserLocation *types.Point
}
