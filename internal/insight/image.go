package insight

import "github.com/agrosight/agrosight/internal/models"

// ImageInsights condenses the per-image analysis batch into the fixed
// insight shape. With no images every field stays at "Unknown".
func ImageInsights(images *models.ImageAnalysisBatch) *models.ImageInsights {
	out := &models.ImageInsights{
		CropHealth:      "Unknown",
		SoilConditions:  "Unknown",
		DiseasePresence: "Unknown",
		WeedInfestation: "Unknown",
		Recommendations: []string{},
	}
	if images == nil || len(images.Results) == 0 {
		return out
	}

	diseaseFound := false
	weedsFound := false
	for _, img := range images.Results {
		if img.CropHealth != nil && img.CropHealth.OverallHealth != "" {
			out.CropHealth = img.CropHealth.OverallHealth
		}
		if img.Soil != nil && img.Soil.SoilType != "" {
			out.SoilConditions = img.Soil.SoilType
		}
		if img.Disease != nil && img.Disease.DiseaseDetected {
			diseaseFound = true
		}
		if img.Comprehensive != nil {
			if img.Comprehensive.WeedsDetected {
				weedsFound = true
			}
			out.Recommendations = append(out.Recommendations, img.Comprehensive.Recommendations...)
		}
	}

	if diseaseFound {
		out.DiseasePresence = "Detected"
		out.Recommendations = append(out.Recommendations, "Inspect the affected area and confirm the disease before treatment")
	} else {
		out.DiseasePresence = "Not detected"
	}
	if weedsFound {
		out.WeedInfestation = "Present"
		out.Recommendations = append(out.Recommendations, "Plan weeding before the weeds set seed")
	} else {
		out.WeedInfestation = "Not observed"
	}

	return out
}
