package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/agrosight/agrosight/internal/httputil"
	"github.com/agrosight/agrosight/internal/models"
)

const defaultWeatherBaseURL = "https://api.open-meteo.com/v1"

// OpenMeteo fetches current conditions and the daily forecast. Calls are
// rate limited so concurrent pipeline runs stay inside the free tier.
type OpenMeteo struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewOpenMeteo(baseURL string) *OpenMeteo {
	if baseURL == "" {
		baseURL = defaultWeatherBaseURL
	}
	return &OpenMeteo{
		baseURL: baseURL,
		client:  httputil.NewClient(),
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

type currentResponse struct {
	Current struct {
		Time        string  `json:"time"`
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

type dailyResponse struct {
	Daily models.DailyForecast `json:"daily"`
}

// Current fetches the latest observed conditions for a coordinate.
func (o *OpenMeteo) Current(ctx context.Context, c models.Coordinates) (*models.CurrentWeather, error) {
	url := fmt.Sprintf("%s/forecast?latitude=%.4f&longitude=%.4f&current=temperature_2m,relative_humidity_2m,wind_speed_10m",
		o.baseURL, c.Lat, c.Lon)

	body, err := o.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var data currentResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal current weather: %w", err)
	}

	ts, err := time.Parse("2006-01-02T15:04", data.Current.Time)
	if err != nil {
		ts = time.Now().UTC()
	}
	return &models.CurrentWeather{
		Temperature: data.Current.Temperature,
		Humidity:    data.Current.Humidity,
		WindSpeed:   data.Current.WindSpeed,
		Timestamp:   ts,
	}, nil
}

// Daily fetches the 7-day forecast for a coordinate.
func (o *OpenMeteo) Daily(ctx context.Context, c models.Coordinates) (*models.DailyForecast, error) {
	url := fmt.Sprintf("%s/forecast?latitude=%.4f&longitude=%.4f&daily=temperature_2m_max,precipitation_sum&forecast_days=7&timezone=auto",
		o.baseURL, c.Lat, c.Lon)

	body, err := o.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var data dailyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal daily forecast: %w", err)
	}
	if len(data.Daily.Time) == 0 {
		return nil, fmt.Errorf("empty daily forecast for %.4f,%.4f", c.Lat, c.Lon)
	}
	return &data.Daily, nil
}

// get performs a rate-limited GET with retry on transient failures.
func (o *OpenMeteo) get(ctx context.Context, url string) ([]byte, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		resp, err := o.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch weather: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("weather api status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("weather api status %d: %s", resp.StatusCode, string(b)))
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
