package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Place is one geocoding hit.
type Place struct {
	Label     string
	Latitude  float64
	Longitude float64
}

// Geocoder wraps a Nominatim-style geocoding service, scoped to one
// country.
type Geocoder struct {
	BaseURL     string
	CountryCode string
	HTTP        *http.Client
}

func NewGeocoder(baseURL, countryCode string, timeout time.Duration) *Geocoder {
	return &Geocoder{
		BaseURL:     baseURL,
		CountryCode: countryCode,
		HTTP:        &http.Client{Timeout: timeout},
	}
}

type nominatimHit struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Forward resolves a free-text address to candidate places. Zero hits
// is not an error.
func (g *Geocoder) Forward(ctx context.Context, query string) ([]Place, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "5")
	q.Set("countrycodes", g.CountryCode)

	var hits []nominatimHit
	if err := g.get(ctx, "/search?"+q.Encode(), &hits); err != nil {
		return nil, fmt.Errorf("forward geocode %q: %w", query, err)
	}

	places := make([]Place, 0, len(hits))
	for _, h := range hits {
		lat, err1 := strconv.ParseFloat(h.Lat, 64)
		lng, err2 := strconv.ParseFloat(h.Lon, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		places = append(places, Place{Label: h.DisplayName, Latitude: lat, Longitude: lng})
	}
	return places, nil
}

// Reverse resolves coordinates to a display label.
func (g *Geocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "json")

	var hit nominatimHit
	if err := g.get(ctx, "/reverse?"+q.Encode(), &hit); err != nil {
		return "", fmt.Errorf("reverse geocode %.5f,%.5f: %w", lat, lng, err)
	}
	return hit.DisplayName, nil
}

func (g *Geocoder) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "salonewatch-bot")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
