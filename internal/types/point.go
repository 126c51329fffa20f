// README: Common geographic coordinate value object used across modules.
package types

import "math"

// Point is a WGS84 coordinate pair. The JSON field names match the request
// and response wire format ("lat"/"lon").
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Finite reports whether both coordinates are real numbers (no NaN/Inf).
func (p Point) Finite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0)
}
