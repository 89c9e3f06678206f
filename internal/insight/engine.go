package insight

import (
	"time"

	"github.com/agrosight/agrosight/internal/models"
)

// seasonLengthDays is the window the weekly precipitation forecast is
// projected over to estimate seasonal rainfall.
const seasonLengthDays = 90.0

// Engine turns collected data into the fixed Insights record. It is
// deterministic apart from the injected clock, which only feeds season
// detection.
type Engine struct {
	Clock func() time.Time
}

// NewEngine returns an engine on the real clock.
func NewEngine() *Engine {
	return &Engine{Clock: time.Now}
}

// Generate produces all seven sub-analyses, plus the crop-specific block
// when selectedCrop names a crop in the requirement table.
func (e *Engine) Generate(
	loc models.LocationData,
	env models.EnvironmentalData,
	weather models.WeatherData,
	images *models.ImageAnalysisBatch,
	selectedCrop string,
) *models.Insights {
	now := e.Clock()

	out := &models.Insights{
		SoilHealth:        SoilHealth(env.Soil),
		CropSuitability:   CropSuitability(loc, env, weather),
		WaterManagement:   WaterManagement(env, weather),
		PestRisk:          PestRisk(weather, images),
		YieldPotential:    YieldPotential(loc, env, weather),
		ClimateAdaptation: ClimateAdaptation(loc, weather),
		ImageInsights:     ImageInsights(images),
	}

	if selectedCrop == "" {
		return out
	}
	req, ok := CropRequirementsFor(selectedCrop)
	if !ok {
		return out
	}

	cond := models.ConditionReadings{
		Temperature:  weather.Current.Temperature,
		Rainfall:     SeasonalRainfallEstimate(weather.Forecast),
		SoilMoisture: env.Soil.SoilMoisture.Value,
		PH:           env.Soil.SoilPH.Value,
	}

	selected := SelectedCropSuitability(req, cond)
	out.CropSuitability.Selected = selected

	risks, remedies := conditionStatuses(req, cond)
	out.CropSpecific = &models.CropSpecific{
		CropName:          selectedCrop,
		Suitability:       selected.Rating,
		OptimalConditions: req,
		CurrentConditions: cond,
		YieldPotential:    out.YieldPotential.Overall,
		RiskFactors:       risks,
		SeasonalAnalysis:  seasonalAnalysis(selectedCrop, req.Season, now),
		Recommendations:   remedies,
	}

	return out
}

// SeasonalRainfallEstimate projects the forecast window's precipitation
// across a 90-day season so it can be compared with the per-season
// rainfall bands in the crop table.
func SeasonalRainfallEstimate(forecast models.DailyForecast) float64 {
	days := len(forecast.PrecipSum)
	if days == 0 {
		return 0
	}
	var total float64
	for _, p := range forecast.PrecipSum {
		total += p
	}
	return total * seasonLengthDays / float64(days)
}
