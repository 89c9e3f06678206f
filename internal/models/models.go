package models

import "time"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinates lie in the usable range.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// NestedLocation is the village/district/state form some callers send
// instead of raw coordinates or a free-text address.
type NestedLocation struct {
	Village     string       `json:"village,omitempty"`
	District    string       `json:"district,omitempty"`
	State       string       `json:"state,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// FarmerInput is the request that starts one pipeline run. It is treated
// as immutable once handed to the orchestrator.
type FarmerInput struct {
	FarmerID     string          `json:"farmerId"`
	Coordinates  *Coordinates    `json:"coordinates,omitempty"`
	Address      string          `json:"address,omitempty"`
	Location     *NestedLocation `json:"location,omitempty"`
	Images       []string        `json:"images,omitempty"` // base64-encoded
	ImageBase64  string          `json:"imageBase64,omitempty"`
	SelectedCrop string          `json:"selectedCrop,omitempty"`
	PhoneNumber  string          `json:"phoneNumber,omitempty"`
	Language     string          `json:"language,omitempty"` // "en", "hi" or "mr"
}

// ImagePayloads returns every supplied image, merging the single-image
// and multi-image request forms.
func (in FarmerInput) ImagePayloads() []string {
	var imgs []string
	imgs = append(imgs, in.Images...)
	if in.ImageBase64 != "" {
		imgs = append(imgs, in.ImageBase64)
	}
	return imgs
}

// LocationQuery is the normalized form of the three accepted location
// input shapes: explicit coordinates, a free-text address, or both.
type LocationQuery struct {
	Coordinates *Coordinates
	Address     string
}

type AgriculturalZone struct {
	Zone            string   `json:"zone"`
	Characteristics []string `json:"characteristics"`
}

// NPKLevels are qualitative macronutrient levels ("high", "medium", "low").
type NPKLevels struct {
	N string `json:"n"`
	P string `json:"p"`
	K string `json:"k"`
}

type SoilClassification struct {
	Type            string    `json:"type"`
	Characteristics []string  `json:"characteristics"`
	NPK             NPKLevels `json:"npk"`
}

// LocationData is the canonical resolved location every downstream stage
// operates on.
type LocationData struct {
	Coordinates        Coordinates        `json:"coordinates"`
	Address            string             `json:"address"`
	AgriculturalZone   AgriculturalZone   `json:"agriculturalZone"`
	SoilClassification SoilClassification `json:"soilClassification"`
	Confidence         float64            `json:"confidence"` // [0,1]
	Source             string             `json:"source,omitempty"`
}

// Measurement is a value with its unit and a human-readable interpretation.
type Measurement struct {
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	Interpretation string  `json:"interpretation,omitempty"`
}

type SatelliteData struct {
	NDVI                   Measurement `json:"ndvi"`
	LandSurfaceTemperature Measurement `json:"landSurfaceTemperature"`
	Source                 string      `json:"source,omitempty"`
}

type SoilData struct {
	SoilMoisture      Measurement `json:"soilMoisture"` // m³/m³
	SoilPH            Measurement `json:"soilPh"`
	SoilTemperature   Measurement `json:"soilTemperature"`
	SoilOrganicCarbon Measurement `json:"soilOrganicCarbon"` // %
	SoilTexture       string      `json:"soilTexture"`
	Source            string      `json:"source,omitempty"`
}

type LandUseData struct {
	LandCoverTypes []string `json:"landCoverTypes"`
	DominantCover  string   `json:"dominantCover"`
	Source         string   `json:"source,omitempty"`
}

// EnvironmentalData groups the satellite, soil and land-use sub-fetches.
// Source is "live" or "fallback"; a stage never mixes the two.
type EnvironmentalData struct {
	Satellite SatelliteData `json:"satellite"`
	Soil      SoilData      `json:"soil"`
	LandUse   LandUseData   `json:"landUse"`
	Source    string        `json:"source"`
}

type CurrentWeather struct {
	Temperature float64   `json:"temperature"` // °C
	Humidity    float64   `json:"humidity"`    // %
	WindSpeed   float64   `json:"windSpeed"`   // km/h
	Timestamp   time.Time `json:"timestamp"`
}

// DailyForecast mirrors the Open-Meteo daily block: parallel arrays
// indexed by day.
type DailyForecast struct {
	Time      []string  `json:"time"`
	TempMax   []float64 `json:"temperature_2m_max"`
	PrecipSum []float64 `json:"precipitation_sum"`
}

type AgriculturalImpact struct {
	Irrigation string `json:"irrigation"`
	PestRisk   string `json:"pestRisk"`
	CropStress string `json:"cropStress"`
}

type WeatherData struct {
	Current            CurrentWeather     `json:"current"`
	Forecast           DailyForecast      `json:"forecast"`
	AgriculturalImpact AgriculturalImpact `json:"agriculturalImpact"`
	Source             string             `json:"source"`
}

// AnalysisKind names one of the four per-image analyses.
type AnalysisKind string

const (
	AnalysisComprehensive    AnalysisKind = "comprehensive"
	AnalysisCropHealth       AnalysisKind = "crop-health"
	AnalysisSoil             AnalysisKind = "soil-analysis"
	AnalysisDiseaseDetection AnalysisKind = "disease-detection"
)

// AllAnalysisKinds is the fixed set run for every supplied image.
var AllAnalysisKinds = []AnalysisKind{
	AnalysisComprehensive,
	AnalysisCropHealth,
	AnalysisSoil,
	AnalysisDiseaseDetection,
}

// AnalysisResult is the outcome of one analysis kind on one image.
type AnalysisResult struct {
	Kind            AnalysisKind `json:"kind"`
	Summary         string       `json:"summary,omitempty"`
	OverallHealth   string       `json:"overallHealth,omitempty"`
	SoilType        string       `json:"soilType,omitempty"`
	DiseaseDetected bool         `json:"diseaseDetected"`
	DiseaseName     string       `json:"diseaseName,omitempty"`
	Confidence      float64      `json:"confidence"`
	WeedsDetected   bool         `json:"weedsDetected"`
	Recommendations []string     `json:"recommendations,omitempty"`
}

type ImageMetadata struct {
	SizeBytes     int            `json:"size"`
	Width         int            `json:"width,omitempty"`
	Height        int            `json:"height,omitempty"`
	AnalysisTypes []AnalysisKind `json:"analysisTypes"`
}

// ImageAnalysis holds the four analyses for a single image.
type ImageAnalysis struct {
	ImageID       string          `json:"imageId"`
	Comprehensive *AnalysisResult `json:"comprehensive,omitempty"`
	CropHealth    *AnalysisResult `json:"cropHealth,omitempty"`
	Soil          *AnalysisResult `json:"soil,omitempty"`
	Disease       *AnalysisResult `json:"disease,omitempty"`
	Metadata      ImageMetadata   `json:"metadata"`
}

type ImageSummary struct {
	TotalImages   int            `json:"totalImages"`
	AnalysisTypes []AnalysisKind `json:"analysisTypes"`
	OverallHealth string         `json:"overallHealth"`
}

// ImageAnalysisBatch is the image stage output. A nil batch means no
// images were supplied, which is a valid (non-error) outcome.
type ImageAnalysisBatch struct {
	Results []ImageAnalysis `json:"results"`
	Summary ImageSummary    `json:"summary"`
	Source  string          `json:"source,omitempty"`
}
