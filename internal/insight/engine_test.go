package insight

import (
	"math"
	"testing"
	"time"

	"github.com/agrosight/agrosight/internal/models"
)

func TestSeasonForMonth(t *testing.T) {
	tests := []struct {
		month time.Month
		want  Season
	}{
		{time.January, SeasonRabi},
		{time.March, SeasonRabi},
		{time.April, SeasonZaid},
		{time.May, SeasonZaid},
		{time.June, SeasonKharif},
		{time.October, SeasonKharif},
		{time.November, SeasonRabi},
		{time.December, SeasonRabi},
	}
	for _, tt := range tests {
		if got := SeasonForMonth(tt.month); got != tt.want {
			t.Errorf("SeasonForMonth(%s) = %s, want %s", tt.month, got, tt.want)
		}
	}
}

func TestSeasonalRainfallEstimate(t *testing.T) {
	tests := []struct {
		name     string
		precip   []float64
		want     float64
	}{
		{"empty forecast", nil, 0},
		{"uniform week", []float64{2, 2, 2, 2, 2, 2, 2}, 180}, // 14mm over 7 days -> 2/day over 90
		{"single day", []float64{10}, 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SeasonalRainfallEstimate(models.DailyForecast{PrecipSum: tt.precip})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("estimate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngineGenerate_AllSectionsPresent(t *testing.T) {
	e := &Engine{Clock: func() time.Time { return time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC) }}

	got := e.Generate(testLocation(22, 78), testEnv(0.3, 6.5, 0.6), testWeather(27, 65), nil, "")

	if got.SoilHealth == nil || got.CropSuitability == nil || got.WaterManagement == nil ||
		got.PestRisk == nil || got.YieldPotential == nil || got.ClimateAdaptation == nil ||
		got.ImageInsights == nil {
		t.Fatalf("missing sub-analysis in %+v", got)
	}
	if got.CropSpecific != nil {
		t.Error("crop specific block present without a selected crop")
	}
	if got.CropSuitability.Selected != nil {
		t.Error("selected suitability present without a selected crop")
	}
}

func TestEngineGenerate_SelectedCrop(t *testing.T) {
	july := func() time.Time { return time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC) }
	e := &Engine{Clock: july}

	env := testEnv(0.5, 6.5, 0.6)
	weather := testWeather(27, 70)
	weather.Forecast = models.DailyForecast{
		PrecipSum: []float64{12, 12, 12, 12, 12, 12, 12}, // ~1080mm over the season
	}

	got := e.Generate(testLocation(22, 78), env, weather, nil, "Rice")

	if got.CropSpecific == nil {
		t.Fatal("no crop specific block for Rice")
	}
	if got.CropSpecific.CropName != "Rice" {
		t.Errorf("crop name = %q", got.CropSpecific.CropName)
	}
	if got.CropSuitability.Selected == nil {
		t.Fatal("selected suitability not set")
	}
	if got.CropSpecific.Suitability != got.CropSuitability.Selected.Rating {
		t.Errorf("suitability %q disagrees with selected rating %q",
			got.CropSpecific.Suitability, got.CropSuitability.Selected.Rating)
	}
	// July is Kharif, Rice's declared season.
	if want := "matches the optimal sowing window"; !anyContains([]string{got.CropSpecific.SeasonalAnalysis}, want) {
		t.Errorf("seasonal analysis = %q, want mention of %q", got.CropSpecific.SeasonalAnalysis, want)
	}
}

func TestEngineGenerate_UnknownCropIgnored(t *testing.T) {
	e := NewEngine()
	got := e.Generate(testLocation(22, 78), testEnv(0.3, 6.5, 0.5), testWeather(25, 60), nil, "Dragonfruit")
	if got.CropSpecific != nil {
		t.Errorf("crop specific block generated for unknown crop: %+v", got.CropSpecific)
	}
}

func TestSeasonalAnalysisOffSeason(t *testing.T) {
	january := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	got := seasonalAnalysis("Rice", "Kharif", january)
	if !anyContains([]string{got}, "consider waiting") {
		t.Errorf("off-season analysis = %q, want a waiting suggestion", got)
	}

	got = seasonalAnalysis("Sugarcane", "Year-round", january)
	if !anyContains([]string{got}, "year-round") {
		t.Errorf("year-round analysis = %q", got)
	}
}
