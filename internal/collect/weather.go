package collect

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/agrosight/agrosight/internal/insight"
	"github.com/agrosight/agrosight/internal/models"
)

// Weather joins the current-conditions and daily-forecast fetches.
// Like the environmental collector the result is atomic per stage.
type Weather struct {
	meteo *OpenMeteo
}

func NewWeather(meteo *OpenMeteo) *Weather {
	return &Weather{meteo: meteo}
}

// Collect fetches current weather and the 7-day forecast concurrently
// and derives the agricultural impact summary.
func (w *Weather) Collect(ctx context.Context, c models.Coordinates) (*models.WeatherData, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		errs     *multierror.Error
		current  *models.CurrentWeather
		forecast *models.DailyForecast
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cur, err := w.meteo.Current(ctx, c)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = multierror.Append(errs, err)
			return
		}
		current = cur
	}()
	go func() {
		defer wg.Done()
		fc, err := w.meteo.Daily(ctx, c)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = multierror.Append(errs, err)
			return
		}
		forecast = fc
	}()
	wg.Wait()

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &models.WeatherData{
		Current:            *current,
		Forecast:           *forecast,
		AgriculturalImpact: insight.AgriculturalImpact(*current, *forecast),
		Source:             "live",
	}, nil
}
