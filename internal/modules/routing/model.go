// README: Semantic routing result model.
package routing

import "errors"

// CurrentLocation is the city sentinel the model emits when the user means
// "here" without naming a place; the planner resolves it from the caller's
// coordinates when present.
const CurrentLocation = "CURRENT_LOCATION"

// DefaultCity is used when the model extracts no city at all.
const DefaultCity = "Tokyo"

const (
	StatusValid   = "valid"
	StatusInvalid = "invalid"
)

// ErrOffDomain marks a request the router classified as outside the
// supported domains (travel/lifestyle/food/culture/weather). It is a
// rejection of the request, never coerced to a default itinerary.
var ErrOffDomain = errors.New("routing: request outside supported domains")

// Analysis is the routed interpretation of one utterance. Consumed once by
// the planner; never persisted.
type Analysis struct {
	Status      string
	City        string
	DayOffset   int
	Translation string
}

// Valid reports whether the router accepted the request as in-domain.
func (a Analysis) Valid() bool { return a.Status != StatusInvalid }
