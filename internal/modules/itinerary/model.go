// README: Generated-content model; timeline entries are a tagged variant.
package itinerary

import (
	"encoding/json"

	"github.com/n3utr7no/Kaze-AI/internal/types"
)

// Content modes.
const (
	ModeGreeting  = "greeting"
	ModeItinerary = "itinerary"
)

// Content is the generated payload for one language, in the model's wire
// shape. The timeline stays raw here; normalization happens per language
// after translation so both blocks go through the same path.
type Content struct {
	Mode     string      `json:"mode"`
	Intro    string      `json:"intro"`
	Title    string      `json:"title"`
	Report   string      `json:"weather_report"`
	Timeline RawTimeline `json:"timeline_data"`
}

// EntryKind discriminates the timeline variant cases.
type EntryKind int

const (
	// EntryUnknown marks an element shape the model was never asked for
	// (numbers, booleans, nested arrays). Normalization skips it.
	EntryUnknown EntryKind = iota
	EntryStructured
	EntryText
)

// StructuredEntry is the shape the generation prompt asks for. Coordinates
// stay a raw float slice here; validation to an exact pair happens during
// normalization.
type StructuredEntry struct {
	Time        string
	Activity    string
	Description string
	Coordinates []float64
}

// RawEntry is one timeline element as emitted by the model: a structured
// entry, or a bare string when the model fails to produce structure. The
// variant is resolved once at decode time; downstream code switches on Kind
// and never probes fields.
type RawEntry struct {
	Kind       EntryKind
	Structured StructuredEntry
	Text       string
}

func (e *RawEntry) UnmarshalJSON(data []byte) error {
	// A JSON null unmarshals as a no-op into both cases below; classify it
	// as unknown up front so it gets skipped.
	if string(data) == "null" {
		*e = RawEntry{Kind: EntryUnknown}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = RawEntry{Kind: EntryText, Text: s}
		return nil
	}

	var obj struct {
		Time        string          `json:"time"`
		Activity    string          `json:"activity"`
		Description string          `json:"description"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		entry := RawEntry{Kind: EntryStructured, Structured: StructuredEntry{
			Time:        obj.Time,
			Activity:    obj.Activity,
			Description: obj.Description,
		}}
		// A malformed coordinates value drops to nil, never fails the entry.
		var coords []float64
		if len(obj.Coordinates) > 0 && json.Unmarshal(obj.Coordinates, &coords) == nil {
			entry.Structured.Coordinates = coords
		}
		*e = entry
		return nil
	}

	*e = RawEntry{Kind: EntryUnknown}
	return nil
}

func (e RawEntry) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EntryText:
		return json.Marshal(e.Text)
	case EntryStructured:
		out := map[string]any{
			"time":        e.Structured.Time,
			"activity":    e.Structured.Activity,
			"description": e.Structured.Description,
		}
		if e.Structured.Coordinates != nil {
			out["coordinates"] = e.Structured.Coordinates
		}
		return json.Marshal(out)
	default:
		return []byte("null"), nil
	}
}

// RawTimeline absorbs whatever the model put under timeline_data. A
// non-array value decodes to an empty timeline instead of failing the
// content parse.
type RawTimeline []RawEntry

func (t *RawTimeline) UnmarshalJSON(data []byte) error {
	var entries []RawEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		*t = nil
		return nil
	}
	*t = entries
	return nil
}

// NormalizedEntry is a client-renderable timeline item. Coords is absent or
// exactly two finite numbers; Text never begins with a list marker.
type NormalizedEntry struct {
	Text   string       `json:"text"`
	Coords *types.Point `json:"coords,omitempty"`
	Name   string       `json:"name"`
}
