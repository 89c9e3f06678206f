// Package fallback synthesizes location- and season-plausible data when
// a live collaborator is unavailable, so the pipeline always completes.
package fallback

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/agrosight/agrosight/internal/geo"
	"github.com/agrosight/agrosight/internal/insight"
	"github.com/agrosight/agrosight/internal/models"
)

// SourceFallback marks records produced here.
const SourceFallback = "fallback"

// NDVI bounds for synthetic data.
const (
	ndviFloor   = 0.1
	ndviCeiling = 1.0
)

// Generator produces synthetic data seeded by (lat, lon, date): the same
// place on the same day always yields the same values, which keeps
// degraded runs reproducible.
type Generator struct {
	Clock func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{Clock: time.Now}
}

// rng builds the deterministic source for one coordinate and day.
func (g *Generator) rng(c models.Coordinates) *rand.Rand {
	day := g.Clock().Format("2006-01-02")
	h := fnv.New64a()
	fmt.Fprintf(h, "%.4f|%.4f|%s", c.Lat, c.Lon, day)
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// jitter returns a value in [-spread, +spread].
func jitter(r *rand.Rand, spread float64) float64 {
	return (r.Float64()*2 - 1) * spread
}

// seasonalBaseTemp is a coarse annual temperature curve: hottest around
// May, cooler away from the tropics.
func seasonalBaseTemp(lat float64, month time.Month) float64 {
	mean := 27 - 0.25*math.Abs(lat-15)
	phase := float64(month-time.May) / 12
	seasonal := 7 * math.Cos(2*math.Pi*phase)
	if lat < 0 {
		seasonal = -seasonal
	}
	return mean + seasonal
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Location builds a low-confidence location from whatever the input
// carried, defaulting to the centroid of India when nothing usable is
// present.
func (g *Generator) Location(input models.FarmerInput) *models.LocationData {
	coords := models.Coordinates{Lat: 20.59, Lon: 78.96}
	if input.Coordinates != nil && input.Coordinates.Valid() {
		coords = *input.Coordinates
	} else if input.Location != nil && input.Location.Coordinates != nil && input.Location.Coordinates.Valid() {
		coords = *input.Location.Coordinates
	}

	zone := geo.Zone(coords)
	address := input.Address
	if address == "" && input.Location != nil {
		address = fmt.Sprintf("%s, %s, %s", input.Location.Village, input.Location.District, input.Location.State)
	}
	if address == "" {
		address = "Unknown location"
	}

	return &models.LocationData{
		Coordinates:        coords,
		Address:            address,
		AgriculturalZone:   zone,
		SoilClassification: geo.SoilType(zone.Zone),
		Confidence:         0.3,
		Source:             SourceFallback,
	}
}

// Environmental synthesizes satellite, soil and land-use data for a
// coordinate.
func (g *Generator) Environmental(c models.Coordinates) *models.EnvironmentalData {
	r := g.rng(c)
	now := g.Clock()
	season := insight.SeasonForMonth(now.Month())
	baseTemp := seasonalBaseTemp(c.Lat, now.Month())

	var ndviBase, moistureBase float64
	switch season {
	case insight.SeasonKharif:
		ndviBase, moistureBase = 0.55, 0.32
	case insight.SeasonRabi:
		ndviBase, moistureBase = 0.45, 0.22
	default:
		ndviBase, moistureBase = 0.30, 0.15
	}

	ndvi := clamp(ndviBase+jitter(r, 0.15), ndviFloor, ndviCeiling)
	moisture := clamp(moistureBase+jitter(r, 0.05), 0.05, 0.50)
	ph := 6.8 + jitter(r, 0.7)
	organicCarbon := clamp(0.7+jitter(r, 0.3), 0.1, 2.0)

	zone := geo.Zone(c)
	soilClass := geo.SoilType(zone.Zone)

	return &models.EnvironmentalData{
		Satellite: models.SatelliteData{
			NDVI: models.Measurement{
				Value: ndvi, Unit: "index",
				Interpretation: interpretNDVI(ndvi),
			},
			LandSurfaceTemperature: models.Measurement{
				Value: baseTemp + 3 + jitter(r, 2), Unit: "°C",
			},
			Source: SourceFallback,
		},
		Soil: models.SoilData{
			SoilMoisture:      models.Measurement{Value: moisture, Unit: "m³/m³", Interpretation: interpretMoisture(moisture)},
			SoilPH:            models.Measurement{Value: ph, Unit: "pH", Interpretation: interpretPH(ph)},
			SoilTemperature:   models.Measurement{Value: baseTemp - 2 + jitter(r, 1.5), Unit: "°C"},
			SoilOrganicCarbon: models.Measurement{Value: organicCarbon, Unit: "%"},
			SoilTexture:       soilClass.Type,
			Source:            SourceFallback,
		},
		LandUse: models.LandUseData{
			LandCoverTypes: []string{"cropland", "grassland", "sparse vegetation"},
			DominantCover:  "cropland",
			Source:         SourceFallback,
		},
		Source: SourceFallback,
	}
}

// Weather synthesizes current conditions plus a 7-day daily forecast.
func (g *Generator) Weather(c models.Coordinates) *models.WeatherData {
	r := g.rng(c)
	now := g.Clock()
	season := insight.SeasonForMonth(now.Month())
	baseTemp := seasonalBaseTemp(c.Lat, now.Month())

	var humidityBase, rainCeiling float64
	switch season {
	case insight.SeasonKharif:
		humidityBase, rainCeiling = 75, 25
	case insight.SeasonRabi:
		humidityBase, rainCeiling = 55, 4
	default:
		humidityBase, rainCeiling = 45, 8
	}

	current := models.CurrentWeather{
		Temperature: baseTemp + jitter(r, 2),
		Humidity:    clamp(humidityBase+jitter(r, 10), 10, 100),
		WindSpeed:   5 + r.Float64()*10,
		Timestamp:   now,
	}

	forecast := models.DailyForecast{}
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i)
		forecast.Time = append(forecast.Time, day.Format("2006-01-02"))
		forecast.TempMax = append(forecast.TempMax, baseTemp+3+jitter(r, 2))
		forecast.PrecipSum = append(forecast.PrecipSum, r.Float64()*rainCeiling)
	}

	return &models.WeatherData{
		Current:            current,
		Forecast:           forecast,
		AgriculturalImpact: insight.AgriculturalImpact(current, forecast),
		Source:             SourceFallback,
	}
}

// ImageResult is the fixed neutral analysis used when a per-image
// analysis call fails.
func (g *Generator) ImageResult(kind models.AnalysisKind) *models.AnalysisResult {
	res := &models.AnalysisResult{
		Kind:    kind,
		Summary: "Analysis unavailable; neutral assessment applied",
	}
	switch kind {
	case models.AnalysisCropHealth, models.AnalysisComprehensive:
		res.OverallHealth = "Good"
	case models.AnalysisSoil:
		res.SoilType = "Loam"
	}
	return res
}

func interpretNDVI(v float64) string {
	switch {
	case v > 0.6:
		return "Dense, healthy vegetation"
	case v > 0.4:
		return "Moderate vegetation cover"
	case v > 0.2:
		return "Sparse vegetation"
	default:
		return "Bare or stressed ground"
	}
}

func interpretMoisture(v float64) string {
	switch {
	case v < 0.15:
		return "Very dry"
	case v < 0.30:
		return "Adequate"
	case v <= 0.40:
		return "Moist"
	default:
		return "Waterlogged"
	}
}

func interpretPH(v float64) string {
	switch {
	case v < 5.5:
		return "Strongly acidic"
	case v < 6.5:
		return "Slightly acidic"
	case v <= 7.5:
		return "Neutral"
	case v <= 8.5:
		return "Slightly alkaline"
	default:
		return "Strongly alkaline"
	}
}
