package insight

import (
	"strings"
	"testing"

	"github.com/agrosight/agrosight/internal/models"
)

func testLocation(lat, lon float64) models.LocationData {
	return models.LocationData{
		Coordinates: models.Coordinates{Lat: lat, Lon: lon},
		AgriculturalZone: models.AgriculturalZone{
			Zone: "Central Plateau",
		},
		SoilClassification: models.SoilClassification{Type: "Black"},
	}
}

func testEnv(moisture, ph, ndvi float64) models.EnvironmentalData {
	return models.EnvironmentalData{
		Satellite: models.SatelliteData{NDVI: models.Measurement{Value: ndvi}},
		Soil: models.SoilData{
			SoilMoisture: models.Measurement{Value: moisture},
			SoilPH:       models.Measurement{Value: ph},
		},
	}
}

func testWeather(temp, humidity float64) models.WeatherData {
	return models.WeatherData{
		Current: models.CurrentWeather{Temperature: temp, Humidity: humidity},
	}
}

func TestSelectedCropSuitability_AllOptimal(t *testing.T) {
	// Rice with every factor inside its optimal band scores 100.
	req, ok := CropRequirementsFor("Rice")
	if !ok {
		t.Fatal("Rice missing from crop table")
	}
	cond := models.ConditionReadings{Temperature: 25, Rainfall: 150, SoilMoisture: 0.8, PH: 6.5}

	got := SelectedCropSuitability(req, cond)
	if got.Score != 100 {
		t.Errorf("score = %d, want 100", got.Score)
	}
	if got.Rating != "Excellent" {
		t.Errorf("rating = %q, want Excellent", got.Rating)
	}
}

func TestSelectedCropSuitability_PartialRainfall(t *testing.T) {
	req, _ := CropRequirementsFor("Rice")
	tests := []struct {
		name     string
		rainfall float64
		want     int
	}{
		{"rainfall in band", 150, 100},
		{"rainfall at half minimum earns partial credit", 50, 90},
		{"rainfall below half minimum earns nothing", 40, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := models.ConditionReadings{Temperature: 25, Rainfall: tt.rainfall, SoilMoisture: 0.5, PH: 6.5}
			got := SelectedCropSuitability(req, cond)
			if got.Score != tt.want {
				t.Errorf("score = %d, want %d", got.Score, tt.want)
			}
			if got.Score < 0 || got.Score > 100 {
				t.Errorf("score %d out of [0,100]", got.Score)
			}
		})
	}
}

func TestSelectedCropSuitability_RatingBands(t *testing.T) {
	req, _ := CropRequirementsFor("Wheat")
	tests := []struct {
		name string
		cond models.ConditionReadings
		want string
	}{
		{
			name: "all four factors poor",
			cond: models.ConditionReadings{Temperature: 40, Rainfall: 5, SoilMoisture: 0.6, PH: 4.0},
			want: "Poor",
		},
		{
			name: "two factors in band",
			cond: models.ConditionReadings{Temperature: 20, Rainfall: 5, SoilMoisture: 0.3, PH: 4.0},
			want: "Fair",
		},
		{
			name: "all factors in band",
			cond: models.ConditionReadings{Temperature: 20, Rainfall: 75, SoilMoisture: 0.3, PH: 6.8},
			want: "Excellent",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectedCropSuitability(req, tt.cond)
			if got.Rating != tt.want {
				t.Errorf("rating = %q (score %d), want %q", got.Rating, got.Score, tt.want)
			}
		})
	}
}

func TestCropSuitability_WheatHeatOverride(t *testing.T) {
	loc := testLocation(22, 78) // central region
	env := testEnv(0.3, 6.8, 0.6)
	weather := testWeather(40, 50)

	got := CropSuitability(loc, env, weather)
	if !contains(got.AvoidCrops, "Wheat") {
		t.Fatalf("avoidCrops = %v, want Wheat present", got.AvoidCrops)
	}
	reason := got.Reasoning["Wheat"]
	if !strings.Contains(reason, "High temperature") {
		t.Errorf("reasoning = %q, want mention of high temperature", reason)
	}
}

func TestCropSuitability_ZoneFallbackWhenNothingScores(t *testing.T) {
	// Extreme cold kills every table score; the zone table still
	// produces suggestions.
	loc := testLocation(22, 78)
	env := testEnv(0.05, 4.0, 0.1)
	weather := testWeather(-5, 10)

	got := CropSuitability(loc, env, weather)
	if len(got.BestCrops) == 0 {
		t.Fatal("bestCrops empty, want zone fallback suggestions")
	}
	for _, c := range got.BestCrops {
		if got.Reasoning[c] == "" {
			t.Errorf("fallback crop %q has no reasoning", c)
		}
	}
}

func TestCropSuitability_FavourableConditionsFindBestCrops(t *testing.T) {
	loc := testLocation(22, 78)
	env := testEnv(0.3, 6.8, 0.6)
	weather := testWeather(27, 65)

	got := CropSuitability(loc, env, weather)
	if len(got.BestCrops) == 0 && len(got.GoodCrops) == 0 {
		t.Error("favourable conditions produced no crop suggestions")
	}
	for _, c := range got.BestCrops {
		if got.Reasoning[c] == "" {
			t.Errorf("best crop %q has no reasoning", c)
		}
	}
}

func TestFactorStatus(t *testing.T) {
	band := models.Range{Min: 5.5, Max: 7.5, Optimal: 6.5}
	tests := []struct {
		value float64
		want  string
	}{
		{6.5, "optimal"},
		{6.0, "optimal"},    // within 20% of 6.5
		{5.6, "acceptable"}, // in band, outside 20%
		{4.0, "poor"},
		{9.0, "poor"},
	}
	for _, tt := range tests {
		if got := factorStatus(tt.value, band); got != tt.want {
			t.Errorf("factorStatus(%.1f) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestConditionStatuses_PHDirection(t *testing.T) {
	req, _ := CropRequirementsFor("Rice")

	_, remedies := conditionStatuses(req, models.ConditionReadings{
		Temperature: 27, Rainfall: 150, SoilMoisture: 0.5, PH: 4.0,
	})
	if !anyContains(remedies, "lime") {
		t.Errorf("acidic soil remedies = %v, want lime", remedies)
	}

	_, remedies = conditionStatuses(req, models.ConditionReadings{
		Temperature: 27, Rainfall: 150, SoilMoisture: 0.5, PH: 9.5,
	})
	if !anyContains(remedies, "sulfur") {
		t.Errorf("alkaline soil remedies = %v, want sulfur", remedies)
	}
}

func anyContains(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
