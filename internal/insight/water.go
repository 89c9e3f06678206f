package insight

import "github.com/agrosight/agrosight/internal/models"

// Soil moisture thresholds driving irrigation, drainage and risk levels.
const (
	moistureIrrigationHigh = 0.20
	moistureIrrigationMod  = 0.30
	moistureDrainageHigh   = 0.35

	floodPrecipLimit = 50.0 // mm in a single forecast day
)

// WaterManagement derives irrigation and drainage needs plus flood and
// drought risk from soil moisture and the precipitation forecast.
func WaterManagement(env models.EnvironmentalData, weather models.WeatherData) *models.WaterManagement {
	moisture := env.Soil.SoilMoisture.Value

	out := &models.WaterManagement{
		IrrigationNeeds: "Low",
		DrainageNeeds:   "Low",
		FloodRisk:       "Low",
		DroughtRisk:     "Low",
		WaterConservation: []string{
			"Mulch between rows to cut evaporation",
			"Prefer drip or furrow irrigation over flooding",
		},
	}

	switch {
	case moisture < moistureIrrigationHigh:
		out.IrrigationNeeds = "High"
		out.DroughtRisk = "High"
		out.WaterConservation = append(out.WaterConservation, "Harvest rainwater in farm ponds for dry spells")
	case moisture < moistureIrrigationMod:
		out.IrrigationNeeds = "Moderate"
		out.DroughtRisk = "Moderate"
	}

	if moisture > moistureDrainageHigh {
		out.DrainageNeeds = "High"
		out.FloodRisk = "Moderate"
	}

	for _, p := range weather.Forecast.PrecipSum {
		if p > floodPrecipLimit {
			out.FloodRisk = "High"
			break
		}
	}

	return out
}
