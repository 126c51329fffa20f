// README: Request validation with per-field violation reporting.
package intake

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/n3utr7no/Kaze-AI/internal/types"
)

// SchemaError reports every violated field of an inbound request, not just
// the first one, so a client can fix its payload in one round trip.
type SchemaError struct {
	Fields map[string]string
}

func (e *SchemaError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "intake: invalid request fields: " + strings.Join(names, ", ")
}

// rawRequest keeps every field undecoded so type violations can be reported
// per field instead of failing the whole decode.
type rawRequest struct {
	Text         json.RawMessage `json:"text"`
	Category     json.RawMessage `json:"category"`
	Language     json.RawMessage `json:"language"`
	History      json.RawMessage `json:"history"`
	UserLocation json.RawMessage `json:"user_location"`
}

type rawTurn struct {
	Role    json.RawMessage `json:"role"`
	Content json.RawMessage `json:"content"`
}

// ParseRequest validates a raw JSON body into a PlanRequest, applying
// defaults for category, language, history, and user_location. It performs no
// external calls. On failure it returns a SchemaError listing every violated
// field.
func ParseRequest(body []byte) (PlanRequest, error) {
	var raw rawRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		return PlanRequest{}, &SchemaError{Fields: map[string]string{"body": "must be a JSON object"}}
	}

	fields := map[string]string{}
	req := PlanRequest{Category: DefaultCategory, Language: DefaultLanguage}

	var text string
	if isAbsent(raw.Text) {
		fields["text"] = "required"
	} else if err := json.Unmarshal(raw.Text, &text); err != nil {
		fields["text"] = "must be a string"
	} else if strings.TrimSpace(text) == "" {
		fields["text"] = "must not be empty"
	} else {
		req.Text = text
	}

	if !isAbsent(raw.Category) {
		if err := json.Unmarshal(raw.Category, &req.Category); err != nil {
			fields["category"] = "must be a string"
		}
	}
	if !isAbsent(raw.Language) {
		if err := json.Unmarshal(raw.Language, &req.Language); err != nil {
			fields["language"] = "must be a string"
		}
	}

	if !isAbsent(raw.History) {
		var turns []rawTurn
		if err := json.Unmarshal(raw.History, &turns); err != nil {
			fields["history"] = "must be an array of {role, content} objects"
		} else {
			req.History = make([]HistoryTurn, 0, len(turns))
			for _, t := range turns {
				var role string
				if isAbsent(t.Role) || json.Unmarshal(t.Role, &role) != nil {
					fields["history"] = "entries must carry a string role"
					break
				}
				req.History = append(req.History, HistoryTurn{Role: role, Content: coerceContent(t.Content)})
			}
		}
	}

	if !isAbsent(raw.UserLocation) {
		var loc struct {
			Lat json.RawMessage `json:"lat"`
			Lon json.RawMessage `json:"lon"`
		}
		var p types.Point
		if err := json.Unmarshal(raw.UserLocation, &loc); err != nil {
			fields["user_location"] = "must be a {lat, lon} object"
		} else if isAbsent(loc.Lat) || isAbsent(loc.Lon) ||
			json.Unmarshal(loc.Lat, &p.Lat) != nil || json.Unmarshal(loc.Lon, &p.Lon) != nil {
			fields["user_location"] = "lat and lon must be numbers"
		} else {
			req.UserLocation = &p
		}
	}

	if len(fields) > 0 {
		return PlanRequest{}, &SchemaError{Fields: fields}
	}
	return req, nil
}

// coerceContent renders any JSON value as a string: strings verbatim, every
// other value as its JSON text.
func coerceContent(v json.RawMessage) string {
	if isAbsent(v) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// isAbsent treats both a missing key and an explicit null as "not provided".
func isAbsent(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}
