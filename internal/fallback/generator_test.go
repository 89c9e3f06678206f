package fallback

import (
	"reflect"
	"testing"
	"time"

	"github.com/agrosight/agrosight/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var (
	july    = time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC)
	january = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
)

func TestEnvironmental_Deterministic(t *testing.T) {
	g := &Generator{Clock: fixedClock(july)}
	c := models.Coordinates{Lat: 19.0760, Lon: 72.8777}

	a := g.Environmental(c)
	b := g.Environmental(c)
	if !reflect.DeepEqual(a, b) {
		t.Error("same coordinate and day produced different environmental data")
	}

	other := g.Environmental(models.Coordinates{Lat: 28.6139, Lon: 77.2090})
	if a.Satellite.NDVI.Value == other.Satellite.NDVI.Value &&
		a.Soil.SoilMoisture.Value == other.Soil.SoilMoisture.Value {
		t.Error("distinct coordinates produced identical synthetic readings")
	}

	nextDay := &Generator{Clock: fixedClock(july.AddDate(0, 0, 1))}
	c2 := nextDay.Environmental(c)
	if reflect.DeepEqual(a.Satellite.NDVI, c2.Satellite.NDVI) &&
		reflect.DeepEqual(a.Soil.SoilMoisture, c2.Soil.SoilMoisture) {
		t.Error("different days produced identical synthetic readings")
	}
}

func TestEnvironmental_Bounds(t *testing.T) {
	coords := []models.Coordinates{
		{Lat: 8.5, Lon: 76.9},
		{Lat: 20.59, Lon: 78.96},
		{Lat: 32.7, Lon: 74.9},
	}
	for _, clock := range []time.Time{july, january} {
		g := &Generator{Clock: fixedClock(clock)}
		for _, c := range coords {
			env := g.Environmental(c)
			if ndvi := env.Satellite.NDVI.Value; ndvi < 0.1 || ndvi > 1.0 {
				t.Errorf("NDVI %v out of [0.1, 1.0] at %+v", ndvi, c)
			}
			if m := env.Soil.SoilMoisture.Value; m < 0.05 || m > 0.50 {
				t.Errorf("moisture %v out of [0.05, 0.50] at %+v", m, c)
			}
			if env.Source != SourceFallback || env.Soil.Source != SourceFallback {
				t.Error("fallback data not marked with fallback source")
			}
			if env.Soil.SoilPH.Interpretation == "" {
				t.Error("pH measurement has no interpretation")
			}
		}
	}
}

func TestWeather_SeasonalPlausibility(t *testing.T) {
	c := models.Coordinates{Lat: 19.0760, Lon: 72.8777}

	monsoon := (&Generator{Clock: fixedClock(july)}).Weather(c)
	winter := (&Generator{Clock: fixedClock(january)}).Weather(c)

	if monsoon.Current.Humidity <= winter.Current.Humidity {
		t.Errorf("monsoon humidity %v not above winter humidity %v",
			monsoon.Current.Humidity, winter.Current.Humidity)
	}

	if n := len(monsoon.Forecast.Time); n != 7 {
		t.Fatalf("forecast has %d days, want 7", n)
	}
	if len(monsoon.Forecast.TempMax) != 7 || len(monsoon.Forecast.PrecipSum) != 7 {
		t.Fatal("forecast arrays are not parallel")
	}
	for i, p := range winter.Forecast.PrecipSum {
		if p < 0 || p > 4 {
			t.Errorf("winter day %d precipitation %v outside the dry-season ceiling", i, p)
		}
	}
	if monsoon.AgriculturalImpact.Irrigation == "" {
		t.Error("synthetic weather missing agricultural impact")
	}
	if monsoon.Source != SourceFallback {
		t.Errorf("source = %q, want %q", monsoon.Source, SourceFallback)
	}
}

func TestLocation(t *testing.T) {
	g := &Generator{Clock: fixedClock(july)}

	t.Run("uses provided coordinates", func(t *testing.T) {
		in := models.FarmerInput{Coordinates: &models.Coordinates{Lat: 26.9, Lon: 75.8}}
		got := g.Location(in)
		if got.Coordinates.Lat != 26.9 || got.Coordinates.Lon != 75.8 {
			t.Errorf("coordinates = %+v, want the input's", got.Coordinates)
		}
		if got.Confidence >= 0.5 {
			t.Errorf("confidence = %v, want a low value", got.Confidence)
		}
		if got.AgriculturalZone.Zone == "" || got.SoilClassification.Type == "" {
			t.Error("zone or soil classification missing")
		}
	})

	t.Run("defaults to country centroid", func(t *testing.T) {
		got := g.Location(models.FarmerInput{})
		if got.Coordinates.Lat != 20.59 || got.Coordinates.Lon != 78.96 {
			t.Errorf("coordinates = %+v, want the default centroid", got.Coordinates)
		}
		if got.Address != "Unknown location" {
			t.Errorf("address = %q", got.Address)
		}
		if got.Source != SourceFallback {
			t.Errorf("source = %q, want %q", got.Source, SourceFallback)
		}
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		in := models.FarmerInput{Coordinates: &models.Coordinates{Lat: 123, Lon: 500}}
		got := g.Location(in)
		if got.Coordinates.Lat != 20.59 {
			t.Errorf("invalid coordinates were used: %+v", got.Coordinates)
		}
	})
}

func TestImageResult(t *testing.T) {
	g := NewGenerator()
	for _, kind := range models.AllAnalysisKinds {
		res := g.ImageResult(kind)
		if res.Kind != kind {
			t.Errorf("kind = %q, want %q", res.Kind, kind)
		}
		if res.Summary == "" {
			t.Error("neutral result has no summary")
		}
		if res.DiseaseDetected {
			t.Error("neutral result reports a disease")
		}
	}
	if got := g.ImageResult(models.AnalysisCropHealth); got.OverallHealth != "Good" {
		t.Errorf("crop health = %q, want Good", got.OverallHealth)
	}
	if got := g.ImageResult(models.AnalysisSoil); got.SoilType != "Loam" {
		t.Errorf("soil type = %q, want Loam", got.SoilType)
	}
}
