// Package pipeline orchestrates the seven stages of a farm advisory run:
// location resolution, environmental/weather/image collection, insight
// generation, recommendations and notification dispatch. Only location
// failure is fatal; every other stage degrades to fallback data.
package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agrosight/agrosight/internal/fallback"
	"github.com/agrosight/agrosight/internal/insight"
	"github.com/agrosight/agrosight/internal/metrics"
	"github.com/agrosight/agrosight/internal/models"
	"github.com/agrosight/agrosight/internal/notify"
	"github.com/agrosight/agrosight/internal/recommend"
)

// Per-stage deadlines. The collaborators carry their own timeouts too;
// these bound how long a stage may hold the pipeline.
const (
	locationTimeout = 15 * time.Second
	envTimeout      = 20 * time.Second
	weatherTimeout  = 20 * time.Second
	imageTimeout    = 45 * time.Second
	notifyTimeout   = 15 * time.Second
)

// LocationResolver resolves a normalized query to canonical location
// data. Failure here is the only fatal pipeline error.
type LocationResolver interface {
	Resolve(ctx context.Context, q models.LocationQuery) (*models.LocationData, error)
}

type EnvironmentalCollector interface {
	Collect(ctx context.Context, c models.Coordinates) (*models.EnvironmentalData, error)
}

type WeatherCollector interface {
	Collect(ctx context.Context, c models.Coordinates) (*models.WeatherData, error)
}

type ImageAnalyzer interface {
	Analyze(ctx context.Context, img []byte, kind models.AnalysisKind) (*models.AnalysisResult, error)
}

// ImagePreparer decodes and bounds a raw image before analysis.
type ImagePreparer func(raw []byte) ([]byte, models.ImageMetadata, error)

// Config wires the collaborators into a Pipeline. Location is required;
// nil collectors simply mean the matching stage always degrades to
// fallback data.
type Config struct {
	Location      LocationResolver
	Environmental EnvironmentalCollector
	Weather       WeatherCollector
	Images        ImageAnalyzer
	Prepare       ImagePreparer
	Dispatcher    *notify.Dispatcher
	Clock         func() time.Time
}

type Pipeline struct {
	location      LocationResolver
	environmental EnvironmentalCollector
	weather       WeatherCollector
	images        ImageAnalyzer
	prepare       ImagePreparer
	dispatcher    *notify.Dispatcher
	fallback      *fallback.Generator
	engine        *insight.Engine
	clock         func() time.Time
}

func New(cfg Config) *Pipeline {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Pipeline{
		location:      cfg.Location,
		environmental: cfg.Environmental,
		weather:       cfg.Weather,
		images:        cfg.Images,
		prepare:       cfg.Prepare,
		dispatcher:    cfg.Dispatcher,
		fallback:      &fallback.Generator{Clock: clock},
		engine:        &insight.Engine{Clock: clock},
		clock:         clock,
	}
}

// Execute runs the full pipeline for one farmer input. It always returns
// a well-formed result; success is false only when location resolution
// fails.
func (p *Pipeline) Execute(ctx context.Context, input models.FarmerInput) *models.PipelineResult {
	started := p.clock()
	pipelineID := fmt.Sprintf("farmer_pipeline_%d", started.UnixMilli())

	loc, err := p.resolveLocation(ctx, input)
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("failure").Inc()
		log.Printf("pipeline %s: location resolution failed: %v", pipelineID, err)
		return p.fatalResult(pipelineID, started, input, err)
	}

	// Environmental, weather and image collection are independent once
	// the location is known; run them concurrently. Each stage swallows
	// its own failures, so there is nothing to join but the values.
	var (
		wg     sync.WaitGroup
		env    *models.EnvironmentalData
		wx     *models.WeatherData
		images *models.ImageAnalysisBatch
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		env = p.collectEnvironmental(ctx, pipelineID, loc.Coordinates)
	}()
	go func() {
		defer wg.Done()
		wx = p.collectWeather(ctx, pipelineID, loc.Coordinates)
	}()
	go func() {
		defer wg.Done()
		images = p.analyzeImages(ctx, pipelineID, input)
	}()
	wg.Wait()

	insights := p.engine.Generate(*loc, *env, *wx, images, input.SelectedCrop)
	recs := recommend.Generate(insights)

	notification := p.dispatch(ctx, input, loc, wx, insights, recs)

	metrics.PipelineRunsTotal.WithLabelValues("success").Inc()
	return &models.PipelineResult{
		Success:    true,
		PipelineID: pipelineID,
		Timestamp:  started,
		FarmerID:   input.FarmerID,
		Location:   loc,
		DataCollection: &models.DataCollection{
			Weather:       wx,
			Environmental: env,
			ImageAnalysis: images,
		},
		Insights:        insights,
		Recommendations: recs,
		Notification:    notification,
		Summary:         summarize(insights, recs),
	}
}

// resolveLocation normalizes the three accepted input shapes into one
// query, delegates to the resolver and validates the result.
func (p *Pipeline) resolveLocation(ctx context.Context, input models.FarmerInput) (*models.LocationData, error) {
	q, err := normalizeLocation(input)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, locationTimeout)
	defer cancel()

	start := time.Now()
	loc, err := p.location.Resolve(ctx, q)
	metrics.StageLatency.WithLabelValues("location").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("resolve location: %w", err)
	}
	if !loc.Coordinates.Valid() {
		return nil, fmt.Errorf("resolved coordinates out of range: %.4f, %.4f",
			loc.Coordinates.Lat, loc.Coordinates.Lon)
	}
	return loc, nil
}

func normalizeLocation(input models.FarmerInput) (models.LocationQuery, error) {
	if input.Coordinates != nil {
		if !input.Coordinates.Valid() {
			return models.LocationQuery{}, fmt.Errorf("coordinates out of range: %.4f, %.4f",
				input.Coordinates.Lat, input.Coordinates.Lon)
		}
		return models.LocationQuery{Coordinates: input.Coordinates, Address: input.Address}, nil
	}
	if input.Address != "" {
		return models.LocationQuery{Address: input.Address}, nil
	}
	if nested := input.Location; nested != nil {
		if nested.Coordinates != nil {
			if !nested.Coordinates.Valid() {
				return models.LocationQuery{}, fmt.Errorf("coordinates out of range: %.4f, %.4f",
					nested.Coordinates.Lat, nested.Coordinates.Lon)
			}
			return models.LocationQuery{Coordinates: nested.Coordinates}, nil
		}
		parts := []string{}
		for _, s := range []string{nested.Village, nested.District, nested.State} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return models.LocationQuery{Address: strings.Join(parts, ", ")}, nil
		}
	}
	return models.LocationQuery{}, fmt.Errorf("no location information in request")
}

func (p *Pipeline) collectEnvironmental(ctx context.Context, pipelineID string, c models.Coordinates) *models.EnvironmentalData {
	if p.environmental != nil {
		ctx, cancel := context.WithTimeout(ctx, envTimeout)
		defer cancel()

		start := time.Now()
		env, err := p.environmental.Collect(ctx, c)
		metrics.StageLatency.WithLabelValues("environmental").Observe(time.Since(start).Seconds())
		if err == nil {
			return env
		}
		log.Printf("pipeline %s: environmental collection degraded: %v", pipelineID, err)
	}
	metrics.StageFallbacksTotal.WithLabelValues("environmental").Inc()
	return p.fallback.Environmental(c)
}

func (p *Pipeline) collectWeather(ctx context.Context, pipelineID string, c models.Coordinates) *models.WeatherData {
	if p.weather != nil {
		ctx, cancel := context.WithTimeout(ctx, weatherTimeout)
		defer cancel()

		start := time.Now()
		wx, err := p.weather.Collect(ctx, c)
		metrics.StageLatency.WithLabelValues("weather").Observe(time.Since(start).Seconds())
		if err == nil {
			return wx
		}
		log.Printf("pipeline %s: weather collection degraded: %v", pipelineID, err)
	}
	metrics.StageFallbacksTotal.WithLabelValues("weather").Inc()
	return p.fallback.Weather(c)
}

// analyzeImages returns nil when no images were supplied; that is a
// valid outcome, not a failure.
func (p *Pipeline) analyzeImages(ctx context.Context, pipelineID string, input models.FarmerInput) *models.ImageAnalysisBatch {
	payloads := input.ImagePayloads()
	if len(payloads) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()
	start := time.Now()
	defer func() {
		metrics.StageLatency.WithLabelValues("images").Observe(time.Since(start).Seconds())
	}()

	batch := &models.ImageAnalysisBatch{
		Summary: models.ImageSummary{
			TotalImages:   len(payloads),
			AnalysisTypes: models.AllAnalysisKinds,
			OverallHealth: "Good",
		},
		Source: "live",
	}

	for _, payload := range payloads {
		batch.Results = append(batch.Results, p.analyzeOne(ctx, pipelineID, payload))
		metrics.ImagesAnalyzedTotal.Inc()
	}

	for _, img := range batch.Results {
		if img.CropHealth != nil && img.CropHealth.OverallHealth != "" {
			batch.Summary.OverallHealth = img.CropHealth.OverallHealth
			break
		}
	}
	return batch
}

// analyzeOne runs the four analysis kinds concurrently for one image.
// Any per-kind failure falls back to the fixed neutral result.
func (p *Pipeline) analyzeOne(ctx context.Context, pipelineID, payload string) models.ImageAnalysis {
	out := models.ImageAnalysis{
		ImageID:  uuid.NewString(),
		Metadata: models.ImageMetadata{AnalysisTypes: models.AllAnalysisKinds},
	}

	raw, err := decodeImagePayload(payload)
	if err != nil {
		log.Printf("pipeline %s: bad image payload, using neutral analysis: %v", pipelineID, err)
		p.applyNeutral(&out)
		metrics.StageFallbacksTotal.WithLabelValues("images").Inc()
		return out
	}
	out.Metadata.SizeBytes = len(raw)

	if p.prepare != nil {
		if prepared, meta, err := p.prepare(raw); err == nil {
			raw = prepared
			meta.AnalysisTypes = models.AllAnalysisKinds
			out.Metadata = meta
		} else {
			log.Printf("pipeline %s: image prepare failed, sending original: %v", pipelineID, err)
		}
	}

	if p.images == nil {
		p.applyNeutral(&out)
		metrics.StageFallbacksTotal.WithLabelValues("images").Inc()
		return out
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = map[models.AnalysisKind]*models.AnalysisResult{}
	)
	for _, kind := range models.AllAnalysisKinds {
		wg.Add(1)
		go func(kind models.AnalysisKind) {
			defer wg.Done()
			res, err := p.images.Analyze(ctx, raw, kind)
			if err != nil {
				log.Printf("pipeline %s: image analysis %s degraded: %v", pipelineID, kind, err)
				res = p.fallback.ImageResult(kind)
			}
			mu.Lock()
			results[kind] = res
			mu.Unlock()
		}(kind)
	}
	wg.Wait()

	out.Comprehensive = results[models.AnalysisComprehensive]
	out.CropHealth = results[models.AnalysisCropHealth]
	out.Soil = results[models.AnalysisSoil]
	out.Disease = results[models.AnalysisDiseaseDetection]
	return out
}

func (p *Pipeline) applyNeutral(img *models.ImageAnalysis) {
	img.Comprehensive = p.fallback.ImageResult(models.AnalysisComprehensive)
	img.CropHealth = p.fallback.ImageResult(models.AnalysisCropHealth)
	img.Soil = p.fallback.ImageResult(models.AnalysisSoil)
	img.Disease = p.fallback.ImageResult(models.AnalysisDiseaseDetection)
}

// decodeImagePayload accepts plain base64 or a data URL.
func decodeImagePayload(payload string) ([]byte, error) {
	if i := strings.Index(payload, "base64,"); i >= 0 {
		payload = payload[i+len("base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	return raw, nil
}

func (p *Pipeline) dispatch(ctx context.Context, input models.FarmerInput, loc *models.LocationData, wx *models.WeatherData, insights *models.Insights, recs []models.Recommendation) *models.NotificationResult {
	if p.dispatcher == nil {
		return &models.NotificationResult{Skipped: true, Reason: "no dispatcher configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	result := p.dispatcher.Dispatch(ctx, input, loc, wx, insights, recs)
	switch {
	case result.Sent:
		metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	case result.Skipped:
		metrics.NotificationsTotal.WithLabelValues("skipped").Inc()
	default:
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
	}
	return result
}

// fatalResult builds the failure shape with best-effort synthetic data
// for everything downstream of the failed location stage.
func (p *Pipeline) fatalResult(pipelineID string, started time.Time, input models.FarmerInput, cause error) *models.PipelineResult {
	loc := p.fallback.Location(input)
	env := p.fallback.Environmental(loc.Coordinates)
	wx := p.fallback.Weather(loc.Coordinates)
	insights := p.engine.Generate(*loc, *env, *wx, nil, input.SelectedCrop)
	recs := recommend.Generate(insights)

	return &models.PipelineResult{
		Success:    false,
		PipelineID: pipelineID,
		Timestamp:  started,
		FarmerID:   input.FarmerID,
		Error:      cause.Error(),
		FallbackData: &models.FallbackData{
			Location:        loc,
			Environmental:   env,
			Weather:         wx,
			Insights:        insights,
			Recommendations: recs,
		},
	}
}

func summarize(insights *models.Insights, recs []models.Recommendation) *models.ResultSummary {
	s := &models.ResultSummary{
		SoilHealth:     "Unknown",
		YieldPotential: "Unknown",
		PestRisk:       "Unknown",
	}
	if insights != nil {
		if insights.SoilHealth != nil {
			s.SoilHealth = insights.SoilHealth.Overall
		}
		if insights.YieldPotential != nil {
			s.YieldPotential = insights.YieldPotential.Overall
		}
		if insights.PestRisk != nil {
			s.PestRisk = insights.PestRisk.Overall
		}
		if insights.CropSuitability != nil {
			s.SuggestedCrops = insights.CropSuitability.BestCrops
		}
	}
	if len(recs) > 0 {
		s.TopRecommendation = recs[0].Action
	}
	return s
}
