package insight

import "github.com/agrosight/agrosight/internal/models"

// Forecast thresholds that trigger adaptation strategies.
const (
	heatwaveTempLimit  = 35.0 // max forecast temperature, °C
	heavyRainLimit     = 30.0 // single-day precipitation, mm
)

// ClimateAdaptation scans the forecast for heat and flood signals and
// adds zone-specific strategies.
func ClimateAdaptation(loc models.LocationData, weather models.WeatherData) *models.ClimateAdaptation {
	out := &models.ClimateAdaptation{
		Strategies:    []string{},
		Risks:         []string{},
		Opportunities: []string{},
	}

	heat := false
	for _, t := range weather.Forecast.TempMax {
		if t > heatwaveTempLimit {
			heat = true
			break
		}
	}
	if heat {
		out.Risks = append(out.Risks, "Forecast includes days above 35°C heat stress threshold")
		out.Strategies = append(out.Strategies,
			"Use shade nets during peak heat",
			"Prefer heat-tolerant varieties for the next sowing")
	}

	flood := false
	for _, p := range weather.Forecast.PrecipSum {
		if p > heavyRainLimit {
			flood = true
			break
		}
	}
	if flood {
		out.Risks = append(out.Risks, "Heavy rainfall expected this week")
		out.Strategies = append(out.Strategies,
			"Clear drainage channels before the rain arrives",
			"Prefer flood-tolerant varieties in low-lying plots")
	}

	switch loc.AgriculturalZone.Zone {
	case "Himalayan":
		out.Strategies = append(out.Strategies, "Choose cold-tolerant varieties suited to short seasons")
	case "Coastal":
		out.Strategies = append(out.Strategies, "Choose salt-tolerant varieties near the shoreline")
	}

	if !heat && !flood {
		out.Opportunities = append(out.Opportunities, "Stable forecast window suitable for field operations")
	}

	return out
}
