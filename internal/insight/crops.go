package insight

import (
	"github.com/agrosight/agrosight/internal/geo"
	"github.com/agrosight/agrosight/internal/models"
)

// cropTable holds the per-crop requirement rows the suitability scoring
// runs against. Temperature in °C, humidity in %, moisture in m³/m³,
// rainfall in mm per season.
var cropTable = map[string]models.CropRequirements{
	"Rice": {
		Temperature: models.Range{Min: 20, Max: 35, Optimal: 27},
		Humidity:    models.Range{Min: 60, Max: 90, Optimal: 75},
		Moisture:    models.Range{Min: 0.30, Max: 0.85, Optimal: 0.50},
		Rainfall:    models.Range{Min: 100, Max: 200, Optimal: 150},
		PH:          models.Range{Min: 5.5, Max: 7.5, Optimal: 6.5},
		Season:      "Kharif",
		Regions:     []string{geo.RegionNorthern, geo.RegionCentral, geo.RegionSouthern, geo.RegionEastern},
	},
	"Wheat": {
		Temperature: models.Range{Min: 10, Max: 25, Optimal: 20},
		Humidity:    models.Range{Min: 50, Max: 70, Optimal: 60},
		Moisture:    models.Range{Min: 0.20, Max: 0.40, Optimal: 0.30},
		Rainfall:    models.Range{Min: 50, Max: 100, Optimal: 75},
		PH:          models.Range{Min: 6.0, Max: 7.5, Optimal: 6.8},
		Season:      "Rabi",
		Regions:     []string{geo.RegionNorthern, geo.RegionCentral},
	},
	"Cotton": {
		Temperature: models.Range{Min: 21, Max: 35, Optimal: 28},
		Humidity:    models.Range{Min: 50, Max: 80, Optimal: 65},
		Moisture:    models.Range{Min: 0.20, Max: 0.40, Optimal: 0.30},
		Rainfall:    models.Range{Min: 60, Max: 120, Optimal: 90},
		PH:          models.Range{Min: 5.8, Max: 8.0, Optimal: 7.0},
		Season:      "Kharif",
		Regions:     []string{geo.RegionCentral, geo.RegionWestern, geo.RegionSouthern},
	},
	"Sugarcane": {
		Temperature: models.Range{Min: 20, Max: 35, Optimal: 30},
		Humidity:    models.Range{Min: 70, Max: 85, Optimal: 78},
		Moisture:    models.Range{Min: 0.30, Max: 0.60, Optimal: 0.45},
		Rainfall:    models.Range{Min: 150, Max: 250, Optimal: 200},
		PH:          models.Range{Min: 6.0, Max: 7.5, Optimal: 6.8},
		Season:      "Year-round",
		Regions:     []string{geo.RegionNorthern, geo.RegionWestern, geo.RegionSouthern},
	},
	"Maize": {
		Temperature: models.Range{Min: 18, Max: 32, Optimal: 25},
		Humidity:    models.Range{Min: 50, Max: 80, Optimal: 65},
		Moisture:    models.Range{Min: 0.25, Max: 0.45, Optimal: 0.35},
		Rainfall:    models.Range{Min: 60, Max: 110, Optimal: 85},
		PH:          models.Range{Min: 5.8, Max: 7.0, Optimal: 6.4},
		Season:      "Kharif",
		Regions:     []string{geo.RegionNorthern, geo.RegionCentral, geo.RegionSouthern, geo.RegionEastern, geo.RegionWestern},
	},
	"Pearl Millet": {
		Temperature: models.Range{Min: 25, Max: 35, Optimal: 30},
		Humidity:    models.Range{Min: 40, Max: 60, Optimal: 50},
		Moisture:    models.Range{Min: 0.10, Max: 0.25, Optimal: 0.18},
		Rainfall:    models.Range{Min: 35, Max: 65, Optimal: 50},
		PH:          models.Range{Min: 6.5, Max: 8.0, Optimal: 7.2},
		Season:      "Kharif",
		Regions:     []string{geo.RegionWestern, geo.RegionCentral},
	},
	"Chickpea": {
		Temperature: models.Range{Min: 15, Max: 25, Optimal: 21},
		Humidity:    models.Range{Min: 40, Max: 60, Optimal: 50},
		Moisture:    models.Range{Min: 0.15, Max: 0.30, Optimal: 0.22},
		Rainfall:    models.Range{Min: 40, Max: 70, Optimal: 55},
		PH:          models.Range{Min: 6.0, Max: 8.0, Optimal: 7.0},
		Season:      "Rabi",
		Regions:     []string{geo.RegionNorthern, geo.RegionCentral},
	},
	"Groundnut": {
		Temperature: models.Range{Min: 20, Max: 30, Optimal: 27},
		Humidity:    models.Range{Min: 50, Max: 75, Optimal: 62},
		Moisture:    models.Range{Min: 0.20, Max: 0.40, Optimal: 0.30},
		Rainfall:    models.Range{Min: 50, Max: 125, Optimal: 85},
		PH:          models.Range{Min: 6.0, Max: 7.0, Optimal: 6.5},
		Season:      "Kharif",
		Regions:     []string{geo.RegionSouthern, geo.RegionWestern},
	},
	"Soybean": {
		Temperature: models.Range{Min: 20, Max: 30, Optimal: 26},
		Humidity:    models.Range{Min: 60, Max: 80, Optimal: 70},
		Moisture:    models.Range{Min: 0.25, Max: 0.45, Optimal: 0.35},
		Rainfall:    models.Range{Min: 60, Max: 100, Optimal: 80},
		PH:          models.Range{Min: 6.0, Max: 7.5, Optimal: 6.8},
		Season:      "Kharif",
		Regions:     []string{geo.RegionCentral},
	},
	"Mustard": {
		Temperature: models.Range{Min: 10, Max: 25, Optimal: 18},
		Humidity:    models.Range{Min: 40, Max: 60, Optimal: 50},
		Moisture:    models.Range{Min: 0.15, Max: 0.30, Optimal: 0.22},
		Rainfall:    models.Range{Min: 30, Max: 60, Optimal: 45},
		PH:          models.Range{Min: 6.0, Max: 7.5, Optimal: 6.8},
		Season:      "Rabi",
		Regions:     []string{geo.RegionNorthern, geo.RegionEastern},
	},
}

// zoneFallbackCrops is used when nothing in the table clears the
// best-crop bar for the current conditions.
var zoneFallbackCrops = map[string][]string{
	"Himalayan":           {"Wheat", "Maize", "Mustard"},
	"Indo-Gangetic Plain": {"Rice", "Wheat", "Sugarcane"},
	"Coastal":             {"Rice", "Groundnut"},
	"Western Arid":        {"Pearl Millet", "Chickpea", "Mustard"},
	"Central Plateau":     {"Cotton", "Soybean", "Chickpea"},
}

// soilFallbackCrops keys on soil classification type, used when the zone
// has no entry.
var soilFallbackCrops = map[string][]string{
	"Alluvial": {"Rice", "Wheat", "Sugarcane"},
	"Black":    {"Cotton", "Soybean"},
	"Laterite": {"Rice", "Groundnut"},
	"Desert":   {"Pearl Millet", "Chickpea"},
	"Mountain": {"Wheat", "Maize"},
	"Loam":     {"Maize", "Soybean", "Wheat"},
}

// CropRequirementsFor looks up the requirement row for a crop name.
func CropRequirementsFor(name string) (models.CropRequirements, bool) {
	req, ok := cropTable[name]
	return req, ok
}
