package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/agrosight/agrosight/internal/httputil"
	"github.com/agrosight/agrosight/internal/models"
)

// SatelliteClient talks to the Earth-observation gateway that serves
// NDVI, land surface temperature and modelled soil properties per
// coordinate. The gateway URL is deployment configuration.
type SatelliteClient struct {
	baseURL string
	client  *http.Client
}

func NewSatelliteClient(baseURL string) *SatelliteClient {
	return &SatelliteClient{baseURL: baseURL, client: httputil.NewClient()}
}

type satelliteResponse struct {
	NDVI                   float64 `json:"ndvi"`
	LandSurfaceTemperature float64 `json:"lst"`
}

type soilResponse struct {
	Moisture      float64 `json:"soil_moisture"`
	PH            float64 `json:"ph"`
	Temperature   float64 `json:"soil_temperature"`
	OrganicCarbon float64 `json:"organic_carbon"`
	Texture       string  `json:"texture"`
}

// Satellite fetches the vegetation and surface temperature record.
func (s *SatelliteClient) Satellite(ctx context.Context, c models.Coordinates) (*models.SatelliteData, error) {
	url := fmt.Sprintf("%s/v1/satellite?lat=%.4f&lon=%.4f", s.baseURL, c.Lat, c.Lon)
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var data satelliteResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal satellite data: %w", err)
	}

	return &models.SatelliteData{
		NDVI: models.Measurement{
			Value: data.NDVI, Unit: "index",
			Interpretation: interpretNDVI(data.NDVI),
		},
		LandSurfaceTemperature: models.Measurement{Value: data.LandSurfaceTemperature, Unit: "°C"},
		Source:                 "live",
	}, nil
}

// Soil fetches modelled topsoil properties for the coordinate.
func (s *SatelliteClient) Soil(ctx context.Context, c models.Coordinates) (*models.SoilData, error) {
	url := fmt.Sprintf("%s/v1/soil?lat=%.4f&lon=%.4f", s.baseURL, c.Lat, c.Lon)
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var data soilResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal soil data: %w", err)
	}

	return &models.SoilData{
		SoilMoisture:      models.Measurement{Value: data.Moisture, Unit: "m³/m³"},
		SoilPH:            models.Measurement{Value: data.PH, Unit: "pH"},
		SoilTemperature:   models.Measurement{Value: data.Temperature, Unit: "°C"},
		SoilOrganicCarbon: models.Measurement{Value: data.OrganicCarbon, Unit: "%"},
		SoilTexture:       data.Texture,
		Source:            "live",
	}, nil
}

func (s *SatelliteClient) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch satellite data: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("satellite api status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("satellite api status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

func interpretNDVI(v float64) string {
	switch {
	case v > 0.6:
		return "Dense, healthy vegetation"
	case v > 0.4:
		return "Moderate vegetation cover"
	case v > 0.2:
		return "Sparse vegetation"
	default:
		return "Bare or stressed ground"
	}
}
