package collect

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/agrosight/agrosight/internal/models"
)

// VisionAnalyzer runs field-image analysis through a vision-capable
// chat model. Each analysis kind has its own prompt; the model is asked
// for strict JSON so results map onto AnalysisResult directly.
type VisionAnalyzer struct {
	client openai.Client
	model  openai.ChatModel
}

// NewVisionAnalyzer reads OPENAI_API_KEY for authentication.
func NewVisionAnalyzer() (*VisionAnalyzer, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &VisionAnalyzer{client: client, model: openai.ChatModelGPT4oMini}, nil
}

var visionPrompts = map[models.AnalysisKind]string{
	models.AnalysisComprehensive:    "You are an agronomist. Assess this farm field photo overall: crop condition, visible weeds, anything notable.",
	models.AnalysisCropHealth:       "You are an agronomist. Assess only the crop health visible in this photo.",
	models.AnalysisSoil:             "You are a soil scientist. Assess the visible soil in this photo: type and condition.",
	models.AnalysisDiseaseDetection: "You are a plant pathologist. Look only for disease symptoms in this photo.",
}

const visionFormat = ` Respond with JSON only, no prose, using exactly these keys:
{"summary":"...","overallHealth":"Excellent|Good|Fair|Poor","soilType":"...","diseaseDetected":false,"diseaseName":"","confidence":0.0,"weedsDetected":false,"recommendations":["..."]}`

type visionPayload struct {
	Summary         string   `json:"summary"`
	OverallHealth   string   `json:"overallHealth"`
	SoilType        string   `json:"soilType"`
	DiseaseDetected bool     `json:"diseaseDetected"`
	DiseaseName     string   `json:"diseaseName"`
	Confidence      float64  `json:"confidence"`
	WeedsDetected   bool     `json:"weedsDetected"`
	Recommendations []string `json:"recommendations"`
}

// Analyze runs one analysis kind over one image.
func (v *VisionAnalyzer) Analyze(ctx context.Context, img []byte, kind models.AnalysisKind) (*models.AnalysisResult, error) {
	prompt, ok := visionPrompts[kind]
	if !ok {
		return nil, fmt.Errorf("unknown analysis kind %q", kind)
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(img)

	resp, err := v.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: v.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt + visionFormat),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vision analysis (%s): %w", kind, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("vision analysis (%s): empty response", kind)
	}

	payload, err := parseVisionJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("vision analysis (%s): %w", kind, err)
	}

	return &models.AnalysisResult{
		Kind:            kind,
		Summary:         payload.Summary,
		OverallHealth:   payload.OverallHealth,
		SoilType:        payload.SoilType,
		DiseaseDetected: payload.DiseaseDetected,
		DiseaseName:     payload.DiseaseName,
		Confidence:      payload.Confidence,
		WeedsDetected:   payload.WeedsDetected,
		Recommendations: payload.Recommendations,
	}, nil
}

// parseVisionJSON tolerates markdown code fences around the JSON body.
func parseVisionJSON(content string) (*visionPayload, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var payload visionPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	return &payload, nil
}
