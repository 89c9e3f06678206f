package insight

import (
	"fmt"
	"math"
	"sort"

	"github.com/agrosight/agrosight/internal/geo"
	"github.com/agrosight/agrosight/internal/models"
)

// Generic suitability point values. A crop needs 5 points to be a best
// crop, 3 to be a good crop; zero or less puts it on the avoid list.
const (
	tempInRangePoints     = 3
	tempNearOptimalPoints = 2
	tempFarPenalty        = 1
	humidityPoints        = 2
	moisturePoints        = 2
	ndviPoints            = 1

	bestCropBar  = 5
	goodCropBar  = 3
	avoidCropBar = 0

	tempOptimalWindow = 5.0 // °C around the optimal
	ndviHealthyFloor  = 0.5
)

// wheatHeatLimit: above this temperature Wheat is always flagged as a
// crop to avoid, regardless of everything else.
const wheatHeatLimit = 30.0

// CropSuitability runs the generic requirement table for the location's
// region bucket against current conditions.
func CropSuitability(loc models.LocationData, env models.EnvironmentalData, weather models.WeatherData) *models.CropSuitability {
	region := geo.Region(loc.Coordinates)
	temp := weather.Current.Temperature
	humidity := weather.Current.Humidity
	moisture := env.Soil.SoilMoisture.Value
	ndvi := env.Satellite.NDVI.Value

	out := &models.CropSuitability{
		BestCrops:  []string{},
		GoodCrops:  []string{},
		AvoidCrops: []string{},
		Reasoning:  map[string]string{},
	}

	names := make([]string, 0, len(cropTable))
	for name := range cropTable {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		req := cropTable[name]
		if !regionMatches(req.Regions, region) {
			continue
		}

		score := 0
		if req.Temperature.Contains(temp) {
			score += tempInRangePoints
		}
		if math.Abs(temp-req.Temperature.Optimal) <= tempOptimalWindow {
			score += tempNearOptimalPoints
		} else {
			score -= tempFarPenalty
		}
		if req.Humidity.Contains(humidity) {
			score += humidityPoints
		}
		if req.Moisture.Contains(moisture) {
			score += moisturePoints
		}
		if ndvi > ndviHealthyFloor {
			score += ndviPoints
		}

		switch {
		case score >= bestCropBar:
			out.BestCrops = append(out.BestCrops, name)
			out.Reasoning[name] = fmt.Sprintf("Conditions closely match %s requirements (score %d)", name, score)
		case score >= goodCropBar:
			out.GoodCrops = append(out.GoodCrops, name)
			out.Reasoning[name] = fmt.Sprintf("Conditions are workable for %s (score %d)", name, score)
		case score <= avoidCropBar:
			out.AvoidCrops = append(out.AvoidCrops, name)
			out.Reasoning[name] = fmt.Sprintf("Current conditions are unfavourable for %s (score %d)", name, score)
		}
	}

	// Wheat is heat-sensitive: above 30°C it is always flagged.
	if temp > wheatHeatLimit && !contains(out.AvoidCrops, "Wheat") {
		out.AvoidCrops = append(out.AvoidCrops, "Wheat")
		out.Reasoning["Wheat"] = fmt.Sprintf("High temperature (%.0f°C) exceeds wheat tolerance", temp)
	}

	// When nothing clears the bar, fall back to the zone (or soil type)
	// recommendation table so the farmer always gets a suggestion.
	if len(out.BestCrops) == 0 {
		if crops, ok := zoneFallbackCrops[loc.AgriculturalZone.Zone]; ok {
			out.BestCrops = append(out.BestCrops, crops...)
			for _, c := range crops {
				out.Reasoning[c] = fmt.Sprintf("Traditionally grown in the %s zone", loc.AgriculturalZone.Zone)
			}
		} else if crops, ok := soilFallbackCrops[loc.SoilClassification.Type]; ok {
			out.BestCrops = append(out.BestCrops, crops...)
			for _, c := range crops {
				out.Reasoning[c] = fmt.Sprintf("Well suited to %s soil", loc.SoilClassification.Type)
			}
		}
	}

	return out
}

func regionMatches(regions []string, region string) bool {
	for _, r := range regions {
		if r == region {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Per-factor point allocation for the crop-specific score. Each of the
// four factors is worth 25 points; rainfall earns partial credit when at
// least half the crop's minimum is expected.
const (
	factorPoints          = 25
	rainfallPartialPoints = 15
)

// SelectedCropSuitability scores one named crop against current readings.
func SelectedCropSuitability(req models.CropRequirements, cond models.ConditionReadings) *models.SelectedCropSuitability {
	score := 0
	factors := []string{}

	if req.Temperature.Contains(cond.Temperature) {
		score += factorPoints
		factors = append(factors, fmt.Sprintf("Temperature %.1f°C is within the optimal band", cond.Temperature))
	} else {
		factors = append(factors, fmt.Sprintf("Temperature %.1f°C is outside the optimal band (%.0f-%.0f°C)",
			cond.Temperature, req.Temperature.Min, req.Temperature.Max))
	}

	if req.Rainfall.Contains(cond.Rainfall) {
		score += factorPoints
		factors = append(factors, fmt.Sprintf("Expected rainfall %.0fmm is within the optimal band", cond.Rainfall))
	} else if cond.Rainfall >= req.Rainfall.Min*0.5 {
		score += rainfallPartialPoints
		factors = append(factors, fmt.Sprintf("Expected rainfall %.0fmm is below optimal but workable with irrigation", cond.Rainfall))
	} else {
		factors = append(factors, fmt.Sprintf("Expected rainfall %.0fmm is far from the required %.0f-%.0fmm",
			cond.Rainfall, req.Rainfall.Min, req.Rainfall.Max))
	}

	if req.Moisture.Contains(cond.SoilMoisture) {
		score += factorPoints
		factors = append(factors, fmt.Sprintf("Soil moisture %.2f m³/m³ is within the optimal band", cond.SoilMoisture))
	} else {
		factors = append(factors, fmt.Sprintf("Soil moisture %.2f m³/m³ is outside the optimal band (%.2f-%.2f)",
			cond.SoilMoisture, req.Moisture.Min, req.Moisture.Max))
	}

	if req.PH.Contains(cond.PH) {
		score += factorPoints
		factors = append(factors, fmt.Sprintf("Soil pH %.1f is within the optimal band", cond.PH))
	} else {
		factors = append(factors, fmt.Sprintf("Soil pH %.1f is outside the optimal band (%.1f-%.1f)",
			cond.PH, req.PH.Min, req.PH.Max))
	}

	score = clampScore(score)
	return &models.SelectedCropSuitability{
		Score:             score,
		Rating:            ScoreBand(score),
		Factors:           factors,
		Requirements:      req,
		CurrentConditions: cond,
	}
}

// factorStatus labels one factor: within ±20% of the optimal value is
// "optimal", still inside the [min,max] band is "acceptable", otherwise
// "poor".
func factorStatus(value float64, r models.Range) string {
	if r.Optimal != 0 && math.Abs(value-r.Optimal) <= 0.2*math.Abs(r.Optimal) {
		return "optimal"
	}
	if r.Contains(value) {
		return "acceptable"
	}
	return "poor"
}

// conditionStatuses classifies each of the four factors and returns the
// poor ones with a targeted remediation sentence.
func conditionStatuses(req models.CropRequirements, cond models.ConditionReadings) (risks, remedies []string) {
	if factorStatus(cond.Temperature, req.Temperature) == "poor" {
		if cond.Temperature > req.Temperature.Optimal {
			risks = append(risks, "Temperature well above crop tolerance")
			remedies = append(remedies, "Provide shade cover or adjust sowing to a cooler window")
		} else {
			risks = append(risks, "Temperature well below crop tolerance")
			remedies = append(remedies, "Delay sowing until temperatures rise")
		}
	}
	if factorStatus(cond.Rainfall, req.Rainfall) == "poor" {
		if cond.Rainfall > req.Rainfall.Optimal {
			risks = append(risks, "Excess rainfall expected for this crop")
			remedies = append(remedies, "Prepare drainage and raised beds")
		} else {
			risks = append(risks, "Rainfall deficit for this crop")
			remedies = append(remedies, "Plan supplemental irrigation")
		}
	}
	if factorStatus(cond.SoilMoisture, req.Moisture) == "poor" {
		if cond.SoilMoisture > req.Moisture.Optimal {
			risks = append(risks, "Soil wetter than the crop prefers")
			remedies = append(remedies, "Reduce irrigation frequency and improve drainage")
		} else {
			risks = append(risks, "Soil drier than the crop prefers")
			remedies = append(remedies, "Irrigate before sowing and mulch to retain moisture")
		}
	}
	if factorStatus(cond.PH, req.PH) == "poor" {
		if cond.PH < req.PH.Optimal {
			risks = append(risks, "Soil too acidic for this crop")
			remedies = append(remedies, "Apply lime to raise soil pH")
		} else {
			risks = append(risks, "Soil too alkaline for this crop")
			remedies = append(remedies, "Apply sulfur to lower soil pH")
		}
	}
	return risks, remedies
}
