package models

// Level is a coarse priority or impact grade.
type Level string

const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
)

// Rank maps a Level to a sortable weight, higher meaning more urgent.
func (l Level) Rank() int {
	switch l {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	}
	return 0
}

type SoilHealth struct {
	Overall         string   `json:"overall"`
	Score           int      `json:"score"` // [0,100]
	Issues          []string `json:"issues"`
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
}

// Range is a [Min,Max] band with a single optimal point inside it.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Optimal float64 `json:"optimal"`
}

// Contains reports whether v lies inside the band, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// CropRequirements is one row of the per-crop requirement table.
type CropRequirements struct {
	Temperature Range    `json:"temperature"` // °C
	Humidity    Range    `json:"humidity"`    // %
	Moisture    Range    `json:"moistureNeeds"`
	Rainfall    Range    `json:"rainfall"` // mm per season
	PH          Range    `json:"ph"`
	Season      string   `json:"season"` // Kharif, Rabi, Zaid or Year-round
	Regions     []string `json:"regions"`
}

// ConditionReadings are the current values the crop requirements are
// assessed against.
type ConditionReadings struct {
	Temperature  float64 `json:"temperature"`
	Rainfall     float64 `json:"rainfall"`
	SoilMoisture float64 `json:"soilMoisture"`
	PH           float64 `json:"ph"`
}

// SelectedCropSuitability is the detailed shape produced when the farmer
// named a crop.
type SelectedCropSuitability struct {
	Score             int               `json:"score"` // [0,100]
	Rating            string            `json:"rating"`
	Factors           []string          `json:"factors"`
	Requirements      CropRequirements  `json:"requirements"`
	CurrentConditions ConditionReadings `json:"currentConditions"`
}

type CropSuitability struct {
	BestCrops  []string          `json:"bestCrops"`
	GoodCrops  []string          `json:"goodCrops"`
	AvoidCrops []string          `json:"avoidCrops"`
	Reasoning  map[string]string `json:"reasoning"`
	// Selected is populated only when the farmer chose a crop.
	Selected *SelectedCropSuitability `json:"selected,omitempty"`
}

type WaterManagement struct {
	IrrigationNeeds   string   `json:"irrigationNeeds"`
	DrainageNeeds     string   `json:"drainageNeeds"`
	WaterConservation []string `json:"waterConservation"`
	FloodRisk         string   `json:"floodRisk"`
	DroughtRisk       string   `json:"droughtRisk"`
}

type PestRisk struct {
	Overall         string   `json:"overall"`
	Factors         []string `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

type YieldPotential struct {
	Overall     string   `json:"overall"`
	Score       int      `json:"score"` // [0,100]
	Factors     []string `json:"factors"`
	Limitations []string `json:"limitations"`
}

type ClimateAdaptation struct {
	Strategies    []string `json:"strategies"`
	Risks         []string `json:"risks"`
	Opportunities []string `json:"opportunities"`
}

type ImageInsights struct {
	CropHealth      string   `json:"cropHealth"`
	SoilConditions  string   `json:"soilConditions"`
	DiseasePresence string   `json:"diseasePresence"`
	WeedInfestation string   `json:"weedInfestation"`
	Recommendations []string `json:"recommendations"`
}

type CropSpecific struct {
	CropName          string            `json:"cropName"`
	Suitability       string            `json:"suitability"`
	OptimalConditions CropRequirements  `json:"optimalConditions"`
	CurrentConditions ConditionReadings `json:"currentConditions"`
	YieldPotential    string            `json:"yieldPotential"`
	RiskFactors       []string          `json:"riskFactors"`
	SeasonalAnalysis  string            `json:"seasonalAnalysis"`
	Recommendations   []string          `json:"recommendations"`
}

// Insights is the fixed-shape output of the insight engine. Sub-records
// are pointers so consumers must handle the unavailable case explicitly.
type Insights struct {
	SoilHealth        *SoilHealth        `json:"soilHealth"`
	CropSuitability   *CropSuitability   `json:"cropSuitability"`
	WaterManagement   *WaterManagement   `json:"waterManagement"`
	PestRisk          *PestRisk          `json:"pestRisk"`
	YieldPotential    *YieldPotential    `json:"yieldPotential"`
	ClimateAdaptation *ClimateAdaptation `json:"climateAdaptation"`
	ImageInsights     *ImageInsights     `json:"imageInsights"`
	CropSpecific      *CropSpecific      `json:"cropSpecific,omitempty"`
}

// Recommendation is one actionable advisory derived from the insights.
type Recommendation struct {
	Category  string `json:"category"`
	Priority  Level  `json:"priority"`
	Action    string `json:"action"`
	Impact    Level  `json:"impact"`
	Timeframe string `json:"timeframe"`
	Reasoning string `json:"reasoning,omitempty"`
}
