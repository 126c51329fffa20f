// README: Forecast snapshot model with graceful-degradation sentinels.
package weather

import (
	"encoding/json"
	"strconv"
)

// Sentinel values signaling degraded resolution. Downstream stages never
// special-case a missing snapshot, only these values.
const (
	TempUnknown  = "--"
	CondNotFound = "Not Found"
	CondError    = "Error"
	DateUnknown  = "Unknown"
)

// Temperature is a whole-degree Celsius reading that may be unknown. It
// marshals as a bare number when known and as the "--" sentinel string
// otherwise, and always renders a non-empty string for prompt interpolation.
type Temperature struct {
	Value int
	Known bool
}

func (t Temperature) String() string {
	if !t.Known {
		return TempUnknown
	}
	return strconv.Itoa(t.Value)
}

func (t Temperature) MarshalJSON() ([]byte, error) {
	if !t.Known {
		return json.Marshal(TempUnknown)
	}
	return json.Marshal(t.Value)
}

func (t *Temperature) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		t.Value, t.Known = n, true
		return nil
	}
	t.Value, t.Known = 0, false
	return nil
}

// Snapshot is the always-populated forecast result for one target day.
// Failure modes degrade to sentinel values; a Snapshot is never absent.
type Snapshot struct {
	Temp     Temperature `json:"temp"`
	Cond     string      `json:"cond"`
	IconCode string      `json:"icon_code"`
	Date     string      `json:"date"`
	CityName string      `json:"city_name"`
}

// notFoundSnapshot marks a geocoding miss; the input city is echoed back.
func notFoundSnapshot(city string) Snapshot {
	return Snapshot{Cond: CondNotFound, Date: DateUnknown, CityName: city}
}

// errorSnapshot marks any other resolution failure.
func errorSnapshot(city string) Snapshot {
	return Snapshot{Cond: CondError, Date: DateUnknown, CityName: city}
}
