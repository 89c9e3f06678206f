// Package recommend turns an Insights record into a prioritized list of
// actionable recommendations using fixed rule tables.
package recommend

import (
	"fmt"
	"sort"

	"github.com/agrosight/agrosight/internal/models"
)

// Generate emits recommendations for every populated insight sub-record
// and returns them sorted by priority, ties broken by impact.
func Generate(insights *models.Insights) []models.Recommendation {
	if insights == nil {
		return nil
	}

	var recs []models.Recommendation
	recs = append(recs, soilRules(insights.SoilHealth)...)
	recs = append(recs, waterRules(insights.WaterManagement)...)
	recs = append(recs, pestRules(insights.PestRisk)...)
	recs = append(recs, imageRules(insights.ImageInsights)...)
	recs = append(recs, yieldRules(insights.YieldPotential)...)
	recs = append(recs, cropRules(insights.CropSuitability, insights.CropSpecific)...)
	recs = append(recs, climateRules(insights.ClimateAdaptation)...)

	Sort(recs)
	return recs
}

// Sort orders recommendations by priority descending, then impact
// descending. The sort is stable so rule order breaks remaining ties.
func Sort(recs []models.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority.Rank() != recs[j].Priority.Rank() {
			return recs[i].Priority.Rank() > recs[j].Priority.Rank()
		}
		return recs[i].Impact.Rank() > recs[j].Impact.Rank()
	})
}

func soilRules(sh *models.SoilHealth) []models.Recommendation {
	if sh == nil {
		return nil
	}
	var recs []models.Recommendation
	switch sh.Overall {
	case "Poor":
		recs = append(recs, models.Recommendation{
			Category:  "Soil",
			Priority:  models.LevelHigh,
			Action:    "Begin a soil improvement program with compost and green manure",
			Impact:    models.LevelHigh,
			Timeframe: "3-6 months",
			Reasoning: "Soil health scored in the Poor band",
		})
	case "Fair":
		recs = append(recs, models.Recommendation{
			Category:  "Soil",
			Priority:  models.LevelMedium,
			Action:    "Get a laboratory soil test and correct the flagged deficiencies",
			Impact:    models.LevelMedium,
			Timeframe: "1 month",
		})
	}
	for _, r := range sh.Recommendations {
		recs = append(recs, models.Recommendation{
			Category:  "Soil",
			Priority:  models.LevelMedium,
			Action:    r,
			Impact:    models.LevelMedium,
			Timeframe: "2-4 weeks",
		})
	}
	return recs
}

func waterRules(wm *models.WaterManagement) []models.Recommendation {
	if wm == nil {
		return nil
	}
	var recs []models.Recommendation
	if wm.IrrigationNeeds == "High" {
		recs = append(recs, models.Recommendation{
			Category:  "Water",
			Priority:  models.LevelHigh,
			Action:    "Irrigate within the next two days; soil moisture is critically low",
			Impact:    models.LevelHigh,
			Timeframe: "Immediate",
		})
	}
	if wm.DrainageNeeds == "High" {
		recs = append(recs, models.Recommendation{
			Category:  "Water",
			Priority:  models.LevelMedium,
			Action:    "Open field drains to shed excess water",
			Impact:    models.LevelMedium,
			Timeframe: "This week",
		})
	}
	if wm.FloodRisk == "High" {
		recs = append(recs, models.Recommendation{
			Category:  "Water",
			Priority:  models.LevelHigh,
			Action:    "Prepare drainage channels and move stored produce off the ground",
			Impact:    models.LevelHigh,
			Timeframe: "This week",
			Reasoning: "Heavy rainfall in the forecast",
		})
	}
	return recs
}

func pestRules(pr *models.PestRisk) []models.Recommendation {
	if pr == nil {
		return nil
	}
	var recs []models.Recommendation
	switch pr.Overall {
	case "High":
		recs = append(recs, models.Recommendation{
			Category:  "Crop Protection",
			Priority:  models.LevelHigh,
			Action:    "Start integrated pest management: traps, scouting and targeted spraying",
			Impact:    models.LevelHigh,
			Timeframe: "This week",
		})
	case "Moderate":
		recs = append(recs, models.Recommendation{
			Category:  "Crop Protection",
			Priority:  models.LevelMedium,
			Action:    "Scout fields twice a week for early pest signs",
			Impact:    models.LevelMedium,
			Timeframe: "Ongoing",
		})
	}
	return recs
}

func imageRules(ii *models.ImageInsights) []models.Recommendation {
	if ii == nil {
		return nil
	}
	var recs []models.Recommendation
	if ii.DiseasePresence == "Detected" {
		recs = append(recs, models.Recommendation{
			Category:  "Crop Protection",
			Priority:  models.LevelHigh,
			Action:    "Schedule a field inspection to confirm and treat the detected disease",
			Impact:    models.LevelHigh,
			Timeframe: "1-2 weeks",
			Reasoning: "Disease signs found in uploaded field images",
		})
	}
	if ii.WeedInfestation == "Present" {
		recs = append(recs, models.Recommendation{
			Category:  "Crop Protection",
			Priority:  models.LevelMedium,
			Action:    "Weed the affected rows before flowering",
			Impact:    models.LevelMedium,
			Timeframe: "2 weeks",
		})
	}
	return recs
}

func yieldRules(yp *models.YieldPotential) []models.Recommendation {
	if yp == nil {
		return nil
	}
	if yp.Overall == "Poor" || yp.Overall == "Fair" {
		return []models.Recommendation{{
			Category:  "Nutrition",
			Priority:  models.LevelMedium,
			Action:    "Apply balanced NPK fertilizer per soil test dose to lift yield potential",
			Impact:    models.LevelHigh,
			Timeframe: "This season",
		}}
	}
	return nil
}

func cropRules(cs *models.CropSuitability, specific *models.CropSpecific) []models.Recommendation {
	var recs []models.Recommendation
	if specific != nil && specific.Suitability == "Poor" {
		recs = append(recs, models.Recommendation{
			Category:  "Crop Selection",
			Priority:  models.LevelHigh,
			Action:    fmt.Sprintf("Reconsider growing %s under current conditions", specific.CropName),
			Impact:    models.LevelHigh,
			Timeframe: "Before sowing",
			Reasoning: "Selected crop scored in the Poor suitability band",
		})
	}
	if cs != nil && specific == nil && len(cs.BestCrops) > 0 {
		recs = append(recs, models.Recommendation{
			Category:  "Crop Selection",
			Priority:  models.LevelLow,
			Action:    fmt.Sprintf("Consider planting %s this season", cs.BestCrops[0]),
			Impact:    models.LevelMedium,
			Timeframe: "Next sowing window",
		})
	}
	return recs
}

func climateRules(ca *models.ClimateAdaptation) []models.Recommendation {
	if ca == nil {
		return nil
	}
	var recs []models.Recommendation
	for _, s := range ca.Strategies {
		recs = append(recs, models.Recommendation{
			Category:  "Climate",
			Priority:  models.LevelLow,
			Action:    s,
			Impact:    models.LevelMedium,
			Timeframe: "This season",
		})
	}
	return recs
}
