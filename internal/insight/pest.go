package insight

import (
	"fmt"

	"github.com/agrosight/agrosight/internal/models"
)

// Pest pressure thresholds.
const (
	fungalHumidityLimit   = 80.0
	insectTempLimit       = 25.0
	diseaseConfidenceBar  = 0.7
	pestHighFactorCount   = 3
	pestModerateThreshold = 1
)

// PestRisk accumulates qualitative risk factors from weather and any
// image-derived disease detections, then bands by factor count.
func PestRisk(weather models.WeatherData, images *models.ImageAnalysisBatch) *models.PestRisk {
	factors := []string{}
	recs := []string{}

	if weather.Current.Humidity > fungalHumidityLimit {
		factors = append(factors, "High humidity favours fungal disease")
		recs = append(recs, "Scout for fungal symptoms and keep canopy ventilated")
	}
	if weather.Current.Temperature > insectTempLimit {
		factors = append(factors, "Warm temperatures accelerate insect breeding")
		recs = append(recs, "Set up pheromone traps and monitor weekly")
	}

	if images != nil {
		for _, img := range images.Results {
			d := img.Disease
			if d != nil && d.DiseaseDetected && d.Confidence > diseaseConfidenceBar {
				name := d.DiseaseName
				if name == "" {
					name = "unidentified disease"
				}
				factors = append(factors, fmt.Sprintf("Image analysis detected %s (confidence %.0f%%)", name, d.Confidence*100))
				recs = append(recs, "Confirm the detection in the field and treat the affected patch")
			}
		}
	}

	overall := "Low"
	switch {
	case len(factors) >= pestHighFactorCount:
		overall = "High"
	case len(factors) >= pestModerateThreshold:
		overall = "Moderate"
	}

	return &models.PestRisk{
		Overall:         overall,
		Factors:         factors,
		Recommendations: recs,
	}
}
