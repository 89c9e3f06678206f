package models

import "time"

type ChannelResult struct {
	Success bool   `json:"success"`
	SID     string `json:"sid,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NotificationResult records what the dispatcher did for one pipeline run.
type NotificationResult struct {
	Sent    bool           `json:"sent"`
	Skipped bool           `json:"skipped,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Message string         `json:"message,omitempty"`
	SMS     *ChannelResult `json:"sms,omitempty"`
	Voice   *ChannelResult `json:"voice,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type DataCollection struct {
	Weather       *WeatherData        `json:"weather"`
	Environmental *EnvironmentalData  `json:"environmental"`
	ImageAnalysis *ImageAnalysisBatch `json:"imageAnalysis"`
}

// ResultSummary is the short digest attached to a successful run.
type ResultSummary struct {
	SoilHealth        string   `json:"soilHealth"`
	YieldPotential    string   `json:"yieldPotential"`
	PestRisk          string   `json:"pestRisk"`
	SuggestedCrops    []string `json:"suggestedCrops,omitempty"`
	TopRecommendation string   `json:"topRecommendation,omitempty"`
}

// FallbackData is the best-effort synthetic bundle attached to a fatal
// failure so the caller still has something to show.
type FallbackData struct {
	Location        *LocationData      `json:"location"`
	Environmental   *EnvironmentalData `json:"environmental"`
	Weather         *WeatherData       `json:"weather"`
	Insights        *Insights          `json:"insights"`
	Recommendations []Recommendation   `json:"recommendations"`
}

// PipelineResult is the single shape every pipeline invocation returns.
type PipelineResult struct {
	Success         bool                `json:"success"`
	PipelineID      string              `json:"pipelineId"`
	Timestamp       time.Time           `json:"timestamp"`
	FarmerID        string              `json:"farmerId"`
	Error           string              `json:"error,omitempty"`
	Location        *LocationData       `json:"location,omitempty"`
	DataCollection  *DataCollection     `json:"dataCollection,omitempty"`
	Insights        *Insights           `json:"insights,omitempty"`
	Recommendations []Recommendation    `json:"recommendations,omitempty"`
	Notification    *NotificationResult `json:"notification,omitempty"`
	Summary         *ResultSummary      `json:"summary,omitempty"`
	FallbackData    *FallbackData       `json:"fallbackData,omitempty"`
}
