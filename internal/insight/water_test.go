package insight

import (
	"testing"

	"github.com/agrosight/agrosight/internal/models"
)

func TestWaterManagement(t *testing.T) {
	tests := []struct {
		name           string
		moisture       float64
		precip         []float64
		wantIrrigation string
		wantDrainage   string
		wantFlood      string
		wantDrought    string
	}{
		{
			name:           "dry soil needs irrigation",
			moisture:       0.15,
			precip:         []float64{0, 2, 0},
			wantIrrigation: "High",
			wantDrainage:   "Low",
			wantFlood:      "Low",
			wantDrought:    "High",
		},
		{
			name:           "moderately dry",
			moisture:       0.25,
			precip:         []float64{0, 2, 0},
			wantIrrigation: "Moderate",
			wantDrainage:   "Low",
			wantFlood:      "Low",
			wantDrought:    "Moderate",
		},
		{
			name:           "wet soil needs drainage",
			moisture:       0.40,
			precip:         []float64{5, 10},
			wantIrrigation: "Low",
			wantDrainage:   "High",
			wantFlood:      "Moderate",
			wantDrought:    "Low",
		},
		{
			name:           "heavy forecast rain raises flood risk",
			moisture:       0.30,
			precip:         []float64{10, 60, 5},
			wantIrrigation: "Low",
			wantDrainage:   "Low",
			wantFlood:      "High",
			wantDrought:    "Low",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := models.EnvironmentalData{
				Soil: models.SoilData{SoilMoisture: models.Measurement{Value: tt.moisture}},
			}
			weather := models.WeatherData{
				Forecast: models.DailyForecast{PrecipSum: tt.precip},
			}
			got := WaterManagement(env, weather)
			if got.IrrigationNeeds != tt.wantIrrigation {
				t.Errorf("irrigation = %q, want %q", got.IrrigationNeeds, tt.wantIrrigation)
			}
			if got.DrainageNeeds != tt.wantDrainage {
				t.Errorf("drainage = %q, want %q", got.DrainageNeeds, tt.wantDrainage)
			}
			if got.FloodRisk != tt.wantFlood {
				t.Errorf("flood = %q, want %q", got.FloodRisk, tt.wantFlood)
			}
			if got.DroughtRisk != tt.wantDrought {
				t.Errorf("drought = %q, want %q", got.DroughtRisk, tt.wantDrought)
			}
		})
	}
}

func TestPestRisk(t *testing.T) {
	highConfDisease := &models.ImageAnalysisBatch{
		Results: []models.ImageAnalysis{{
			Disease: &models.AnalysisResult{
				Kind: models.AnalysisDiseaseDetection, DiseaseDetected: true,
				DiseaseName: "leaf blight", Confidence: 0.9,
			},
		}},
	}
	lowConfDisease := &models.ImageAnalysisBatch{
		Results: []models.ImageAnalysis{{
			Disease: &models.AnalysisResult{
				Kind: models.AnalysisDiseaseDetection, DiseaseDetected: true,
				Confidence: 0.5,
			},
		}},
	}

	tests := []struct {
		name        string
		temp        float64
		humidity    float64
		images      *models.ImageAnalysisBatch
		wantOverall string
		wantFactors int
	}{
		{"cool and dry", 20, 50, nil, "Low", 0},
		{"humid only", 20, 85, nil, "Moderate", 1},
		{"warm only", 28, 50, nil, "Moderate", 1},
		{"warm humid with disease", 28, 85, highConfDisease, "High", 3},
		{"low confidence detection ignored", 20, 50, lowConfDisease, "Low", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weather := models.WeatherData{
				Current: models.CurrentWeather{Temperature: tt.temp, Humidity: tt.humidity},
			}
			got := PestRisk(weather, tt.images)
			if got.Overall != tt.wantOverall {
				t.Errorf("overall = %q, want %q", got.Overall, tt.wantOverall)
			}
			if len(got.Factors) != tt.wantFactors {
				t.Errorf("factors = %v, want %d entries", got.Factors, tt.wantFactors)
			}
		})
	}
}

func TestYieldPotential(t *testing.T) {
	tests := []struct {
		name      string
		ndvi      float64
		npk       models.NPKLevels
		temp      float64
		wantScore int
	}{
		{
			name:      "baseline conditions",
			ndvi:      0.45,
			npk:       models.NPKLevels{N: "medium", P: "medium", K: "medium"},
			temp:      25,
			wantScore: 85, // baseline 75 + temp bonus
		},
		{
			name:      "everything favourable clamps at 100",
			ndvi:      0.7,
			npk:       models.NPKLevels{N: "high", P: "high", K: "high"},
			temp:      25,
			wantScore: 100, // 75+15+10+10+10 = 120 clamped
		},
		{
			name:      "stressed field",
			ndvi:      0.2,
			npk:       models.NPKLevels{N: "low", P: "low", K: "low"},
			temp:      38,
			wantScore: 40, // 75-20-15
		},
		{
			name:      "cold penalty",
			ndvi:      0.45,
			npk:       models.NPKLevels{},
			temp:      5,
			wantScore: 60, // 75-15
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := models.LocationData{
				SoilClassification: models.SoilClassification{NPK: tt.npk},
			}
			env := models.EnvironmentalData{
				Satellite: models.SatelliteData{NDVI: models.Measurement{Value: tt.ndvi}},
			}
			weather := models.WeatherData{
				Current: models.CurrentWeather{Temperature: tt.temp},
			}
			got := YieldPotential(loc, env, weather)
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Overall != ScoreBand(tt.wantScore) {
				t.Errorf("overall = %q, want %q", got.Overall, ScoreBand(tt.wantScore))
			}
		})
	}
}

func TestClimateAdaptation(t *testing.T) {
	t.Run("heat in forecast", func(t *testing.T) {
		loc := testLocation(22, 78)
		weather := models.WeatherData{
			Forecast: models.DailyForecast{TempMax: []float64{33, 37, 34}},
		}
		got := ClimateAdaptation(loc, weather)
		if len(got.Risks) == 0 || !anyContains(got.Strategies, "heat-tolerant") {
			t.Errorf("strategies = %v, want heat-tolerant variety advice", got.Strategies)
		}
	})

	t.Run("heavy rain in forecast", func(t *testing.T) {
		loc := testLocation(22, 78)
		weather := models.WeatherData{
			Forecast: models.DailyForecast{PrecipSum: []float64{5, 35, 2}},
		}
		got := ClimateAdaptation(loc, weather)
		if !anyContains(got.Strategies, "flood-tolerant") {
			t.Errorf("strategies = %v, want flood-tolerant variety advice", got.Strategies)
		}
	})

	t.Run("zone specific strategies", func(t *testing.T) {
		loc := testLocation(32, 77)
		loc.AgriculturalZone.Zone = "Himalayan"
		got := ClimateAdaptation(loc, models.WeatherData{})
		if !anyContains(got.Strategies, "cold-tolerant") {
			t.Errorf("strategies = %v, want cold-tolerant variety advice", got.Strategies)
		}

		loc.AgriculturalZone.Zone = "Coastal"
		got = ClimateAdaptation(loc, models.WeatherData{})
		if !anyContains(got.Strategies, "salt-tolerant") {
			t.Errorf("strategies = %v, want salt-tolerant variety advice", got.Strategies)
		}
	})

	t.Run("calm forecast notes opportunity", func(t *testing.T) {
		loc := testLocation(22, 78)
		got := ClimateAdaptation(loc, models.WeatherData{
			Forecast: models.DailyForecast{TempMax: []float64{28, 30}, PrecipSum: []float64{3, 8}},
		})
		if len(got.Opportunities) == 0 {
			t.Error("stable forecast produced no opportunities")
		}
	})
}
