// README: Defensive timeline normalization for client rendering.
package itinerary

import (
	"regexp"
	"strings"

	"github.com/n3utr7no/Kaze-AI/internal/types"
)

// markerPattern matches a leading list-marker run (dashes, bullets, digits,
// periods, semicolons) followed by whitespace. Requiring the whitespace
// keeps times like "09:00: ..." intact, which makes normalization idempotent
// on already-clean text.
var markerPattern = regexp.MustCompile(`^[-•\d.;]+\s+`)

const previewRunes = 20

// Normalize turns the model's raw timeline into renderable entries. It is a
// total function: malformed elements are skipped, malformed coordinates are
// dropped, and a nil timeline yields an empty slice.
func Normalize(raw RawTimeline) []NormalizedEntry {
	out := make([]NormalizedEntry, 0, len(raw))
	for _, entry := range raw {
		switch entry.Kind {
		case EntryStructured:
			out = append(out, normalizeStructured(entry.Structured))
		case EntryText:
			text := stripMarker(entry.Text)
			out = append(out, NormalizedEntry{Text: text, Name: preview(text)})
		}
	}
	return out
}

func normalizeStructured(s StructuredEntry) NormalizedEntry {
	activity := stripMarker(s.Activity)
	description := stripMarker(s.Description)

	text := activity + " - " + description
	if t := strings.TrimSpace(s.Time); !timeMissing(t) {
		text = t + ": " + text
	}

	item := NormalizedEntry{Text: text, Name: activity}
	if p, ok := coordsPair(s.Coordinates); ok {
		item.Coords = &p
	}
	return item
}

func stripMarker(s string) string {
	return markerPattern.ReplaceAllString(strings.TrimSpace(s), "")
}

// timeMissing reports whether the model emitted a literal placeholder
// instead of a time.
func timeMissing(t string) bool {
	switch strings.ToLower(t) {
	case "", "null", "none":
		return true
	}
	return false
}

// coordsPair accepts only an exactly-two-element finite pair.
func coordsPair(coords []float64) (types.Point, bool) {
	if len(coords) != 2 {
		return types.Point{}, false
	}
	p := types.Point{Lat: coords[0], Lon: coords[1]}
	if !p.Finite() {
		return types.Point{}, false
	}
	return p, true
}

// preview truncates a bare-string entry to a short label.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes])
}
