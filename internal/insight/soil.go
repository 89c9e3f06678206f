package insight

import "github.com/agrosight/agrosight/internal/models"

// Soil health scoring: a neutral baseline, minus 15 per detected issue,
// plus 10 per detected strength, clamped to [0,100].
const (
	soilBaselineScore = 70
	issuePenalty      = 15
	strengthBonus     = 10
)

// Moisture and pH tolerance thresholds for issue detection (m³/m³ and pH).
const (
	moistureDryLimit = 0.15
	moistureWetLimit = 0.40
	phAcidicLimit    = 5.5
	phAlkalineLimit  = 8.5
)

// ScoreBand maps a 0-100 score to its textual band.
func ScoreBand(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// SoilHealth assesses the soil sub-record of the environmental data.
func SoilHealth(soil models.SoilData) *models.SoilHealth {
	score := soilBaselineScore
	issues := []string{}
	strengths := []string{}
	recs := []string{}

	moisture := soil.SoilMoisture.Value
	ph := soil.SoilPH.Value
	organicCarbon := soil.SoilOrganicCarbon.Value

	switch {
	case moisture < moistureDryLimit:
		score -= issuePenalty
		issues = append(issues, "Soil moisture is critically low")
		recs = append(recs, "Irrigate and apply mulch to retain moisture")
	case moisture > moistureWetLimit:
		score -= issuePenalty
		issues = append(issues, "Soil is waterlogged")
		recs = append(recs, "Improve field drainage before the next irrigation")
	default:
		score += strengthBonus
		strengths = append(strengths, "Soil moisture is in the healthy range")
	}

	switch {
	case ph < phAcidicLimit:
		score -= issuePenalty
		issues = append(issues, "Soil is strongly acidic")
		recs = append(recs, "Apply agricultural lime to raise soil pH")
	case ph > phAlkalineLimit:
		score -= issuePenalty
		issues = append(issues, "Soil is strongly alkaline")
		recs = append(recs, "Apply gypsum or elemental sulfur to lower soil pH")
	default:
		score += strengthBonus
		strengths = append(strengths, "Soil pH is within the cultivable range")
	}

	if organicCarbon >= 0.75 {
		score += strengthBonus
		strengths = append(strengths, "Good organic carbon content")
	} else if organicCarbon > 0 && organicCarbon < 0.4 {
		score -= issuePenalty
		issues = append(issues, "Organic carbon is depleted")
		recs = append(recs, "Incorporate compost or green manure")
	}

	score = clampScore(score)
	return &models.SoilHealth{
		Overall:         ScoreBand(score),
		Score:           score,
		Issues:          issues,
		Strengths:       strengths,
		Recommendations: recs,
	}
}
