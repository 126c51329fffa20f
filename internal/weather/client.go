// README: OpenWeatherMap REST client (geocoding + 5-day/3-hour forecast).
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/n3utr7no/Kaze-AI/internal/config"
)

// Client is a thin wrapper over the OpenWeatherMap HTTP API. It is stateless
// and safe for concurrent use; construct one and share it across requests.
type Client struct {
	apiKey  string
	baseURL string
	lang    string
	httpc   *http.Client
}

func NewClient(cfg config.WeatherConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		lang:    cfg.Lang,
		httpc:   &http.Client{Timeout: cfg.Timeout},
	}
}

type geoResult struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type weatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type forecastEntry struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []weatherCondition `json:"weather"`
	DtTxt   string             `json:"dt_txt"`
}

type forecastResponse struct {
	List []forecastEntry `json:"list"`
}

// geocode resolves free-text city input to coordinates (at most one result).
func (c *Client) geocode(ctx context.Context, city string) ([]geoResult, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("limit", "1")
	q.Set("appid", c.apiKey)
	var out []geoResult
	if err := c.getJSON(ctx, "/geo/1.0/direct", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// reverseGeocode resolves coordinates to a human-readable place name.
func (c *Client) reverseGeocode(ctx context.Context, lat, lon float64) ([]geoResult, error) {
	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("limit", "1")
	q.Set("appid", c.apiKey)
	var out []geoResult
	if err := c.getJSON(ctx, "/geo/1.0/reverse", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// forecast fetches the 5-day forecast in 3-hour intervals, metric units.
func (c *Client) forecast(ctx context.Context, lat, lon float64) (*forecastResponse, error) {
	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", c.lang)
	var out forecastResponse
	if err := c.getJSON(ctx, "/data/2.5/forecast", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("weather: build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("weather: %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather: %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("weather: %s: decode response: %w", path, err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
