package insight

import "github.com/agrosight/agrosight/internal/models"

// AgriculturalImpact derives the coarse impact summary carried on the
// weather record. The weather collector and the fallback generator both
// use it so live and synthetic records stay comparable.
func AgriculturalImpact(current models.CurrentWeather, forecast models.DailyForecast) models.AgriculturalImpact {
	impact := models.AgriculturalImpact{
		Irrigation: "Normal schedule",
		PestRisk:   "Low",
		CropStress: "Low",
	}

	var weekRain float64
	for _, p := range forecast.PrecipSum {
		weekRain += p
	}
	switch {
	case weekRain < 5:
		impact.Irrigation = "Increase irrigation; little rain expected"
	case weekRain > 80:
		impact.Irrigation = "Suspend irrigation; heavy rain expected"
	}

	if current.Humidity > fungalHumidityLimit && current.Temperature > insectTempLimit {
		impact.PestRisk = "High"
	} else if current.Humidity > fungalHumidityLimit || current.Temperature > insectTempLimit {
		impact.PestRisk = "Moderate"
	}

	switch {
	case current.Temperature > tempHotLimit:
		impact.CropStress = "High heat stress"
	case current.Temperature < tempColdLimit:
		impact.CropStress = "High cold stress"
	}

	return impact
}
