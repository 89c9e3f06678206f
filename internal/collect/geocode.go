package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agrosight/agrosight/internal/geo"
	"github.com/agrosight/agrosight/internal/httputil"
	"github.com/agrosight/agrosight/internal/models"
)

const defaultGeocodeBaseURL = "https://nominatim.openstreetmap.org"

// Geocoder resolves a models.LocationQuery into canonical LocationData using a
// Nominatim-compatible endpoint plus the local zone and soil tables.
type Geocoder struct {
	baseURL string
	client  *http.Client
}

func NewGeocoder(baseURL string) *Geocoder {
	if baseURL == "" {
		baseURL = defaultGeocodeBaseURL
	}
	return &Geocoder{baseURL: baseURL, client: httputil.NewClient()}
}

type nominatimResult struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
}

// Resolve turns the query into LocationData. Coordinates win over the
// address when both are present; the address is then only used as the
// display name.
func (g *Geocoder) Resolve(ctx context.Context, q models.LocationQuery) (*models.LocationData, error) {
	var coords models.Coordinates
	address := q.Address
	confidence := 0.9

	switch {
	case q.Coordinates != nil:
		coords = *q.Coordinates
		if address == "" {
			if name, err := g.reverse(ctx, coords); err == nil {
				address = name
			} else {
				address = fmt.Sprintf("%.4f, %.4f", coords.Lat, coords.Lon)
				confidence = 0.8
			}
		}
	case q.Address != "":
		hit, err := g.forward(ctx, q.Address)
		if err != nil {
			return nil, err
		}
		coords = hit.coords
		address = hit.name
		confidence = hit.confidence
	default:
		return nil, fmt.Errorf("location query has neither coordinates nor address")
	}

	if !coords.Valid() {
		return nil, fmt.Errorf("resolved coordinates out of range: %.4f, %.4f", coords.Lat, coords.Lon)
	}

	zone := geo.Zone(coords)
	return &models.LocationData{
		Coordinates:        coords,
		Address:            address,
		AgriculturalZone:   zone,
		SoilClassification: geo.SoilType(zone.Zone),
		Confidence:         confidence,
		Source:             "resolved",
	}, nil
}

type forwardHit struct {
	coords     models.Coordinates
	name       string
	confidence float64
}

func (g *Geocoder) forward(ctx context.Context, address string) (*forwardHit, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.baseURL, url.QueryEscape(address))
	body, err := g.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("unmarshal geocode response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no geocode result for %q", address)
	}

	lat, err1 := strconv.ParseFloat(results[0].Lat, 64)
	lon, err2 := strconv.ParseFloat(results[0].Lon, 64)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("bad coordinates in geocode result for %q", address)
	}

	confidence := results[0].Importance
	if confidence <= 0 || confidence > 1 {
		confidence = 0.6
	}
	return &forwardHit{
		coords:     models.Coordinates{Lat: lat, Lon: lon},
		name:       results[0].DisplayName,
		confidence: confidence,
	}, nil
}

func (g *Geocoder) reverse(ctx context.Context, c models.Coordinates) (string, error) {
	u := fmt.Sprintf("%s/reverse?lat=%.6f&lon=%.6f&format=json", g.baseURL, c.Lat, c.Lon)
	body, err := g.get(ctx, u)
	if err != nil {
		return "", err
	}
	var result nominatimResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal reverse geocode: %w", err)
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("empty reverse geocode result")
	}
	return result.DisplayName, nil
}

func (g *Geocoder) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
