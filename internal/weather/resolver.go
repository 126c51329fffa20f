// README: Weather resolution with timestamp slot selection and sentinel fallbacks.
package weather

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/n3utr7no/Kaze-AI/internal/types"
)

// Resolver turns a city name or coordinate pair into a forecast Snapshot for
// a target day. Resolve never fails: geocoding misses and upstream errors
// degrade to sentinel snapshots, so the pipeline always has values to work
// with. Weather calls are single-attempt — a missing forecast should not
// block the conversational response.
type Resolver struct {
	client *Client
	now    func() time.Time
}

func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client, now: time.Now}
}

// Resolve fetches the snapshot for today+dayOffset. When coords are given
// they take priority over the city text; the display name then comes from
// reverse geocoding (best-effort).
func (r *Resolver) Resolve(ctx context.Context, city string, dayOffset int, coords *types.Point) Snapshot {
	var lat, lon float64
	displayName := city

	if coords != nil {
		lat, lon = coords.Lat, coords.Lon
		if places, err := r.client.reverseGeocode(ctx, lat, lon); err == nil && len(places) > 0 {
			displayName = places[0].Name
		} else {
			displayName = "Current Location"
		}
	} else {
		places, err := r.client.geocode(ctx, city)
		if err != nil {
			return errorSnapshot(city)
		}
		if len(places) == 0 {
			return notFoundSnapshot(city)
		}
		lat, lon = places[0].Lat, places[0].Lon
		displayName = places[0].Name
	}

	fc, err := r.client.forecast(ctx, lat, lon)
	if err != nil || len(fc.List) == 0 {
		return errorSnapshot(displayName)
	}

	targetDate := r.now().AddDate(0, 0, dayOffset).Format("2006-01-02")
	entry := selectEntry(fc.List, targetDate)
	if entry == nil || len(entry.Weather) == 0 {
		return errorSnapshot(displayName)
	}

	return Snapshot{
		Temp:     Temperature{Value: int(math.Round(entry.Main.Temp)), Known: true},
		Cond:     entry.Weather[0].Description,
		IconCode: entry.Weather[0].Icon,
		Date:     targetDate,
		CityName: displayName,
	}
}

// selectEntry picks one representative reading for the target date from the
// 3-hour series: the exact-noon slot wins, then the first same-date entry
// (the upstream list is chronological), and when no entry matches the date
// at all — late-night requests where "today" is already over upstream — the
// chronologically last entry of the whole list.
func selectEntry(list []forecastEntry, targetDate string) *forecastEntry {
	var firstSameDay *forecastEntry
	for i := range list {
		if !strings.HasPrefix(list[i].DtTxt, targetDate) {
			continue
		}
		if strings.Contains(list[i].DtTxt, "12:00:00") {
			return &list[i]
		}
		if firstSameDay == nil {
			firstSameDay = &list[i]
		}
	}
	if firstSameDay != nil {
		return firstSameDay
	}
	if len(list) == 0 {
		return nil
	}
	return &list[len(list)-1]
}
