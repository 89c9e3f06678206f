package insight

import "github.com/agrosight/agrosight/internal/models"

// Yield potential adjustments around a baseline of 75.
const (
	yieldBaseline = 75

	ndviGoodFloor   = 0.6
	ndviPoorCeiling = 0.3
	ndviBonus       = 15
	ndviPenalty     = 20

	npkBonus = 10

	tempIdealMin = 20.0
	tempIdealMax = 30.0
	tempBonus    = 10
	tempHotLimit = 35.0
	tempColdLimit = 10.0
	tempPenalty  = 15
)

// YieldPotential scores expected productivity from vegetation index,
// macronutrient levels and temperature.
func YieldPotential(loc models.LocationData, env models.EnvironmentalData, weather models.WeatherData) *models.YieldPotential {
	score := yieldBaseline
	factors := []string{}
	limitations := []string{}

	ndvi := env.Satellite.NDVI.Value
	switch {
	case ndvi > ndviGoodFloor:
		score += ndviBonus
		factors = append(factors, "Dense, healthy vegetation cover (NDVI)")
	case ndvi < ndviPoorCeiling:
		score -= ndviPenalty
		limitations = append(limitations, "Sparse vegetation cover (low NDVI)")
	}

	npk := loc.SoilClassification.NPK
	if npk.N == "high" {
		score += npkBonus
		factors = append(factors, "High soil nitrogen")
	}
	if npk.P == "high" {
		score += npkBonus
		factors = append(factors, "High soil phosphorus")
	}

	temp := weather.Current.Temperature
	switch {
	case temp >= tempIdealMin && temp <= tempIdealMax:
		score += tempBonus
		factors = append(factors, "Temperature in the ideal growing range")
	case temp > tempHotLimit:
		score -= tempPenalty
		limitations = append(limitations, "Heat stress is likely at current temperatures")
	case temp < tempColdLimit:
		score -= tempPenalty
		limitations = append(limitations, "Cold stress is likely at current temperatures")
	}

	score = clampScore(score)
	return &models.YieldPotential{
		Overall:     ScoreBand(score),
		Score:       score,
		Factors:     factors,
		Limitations: limitations,
	}
}
