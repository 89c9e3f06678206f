package notify

import (
	"fmt"

	"github.com/agrosight/agrosight/internal/models"
)

// smsMaxRunes is the single-segment SMS limit the message is hard-capped
// to, counted in runes so Devanagari text is measured correctly.
const smsMaxRunes = 160

// BuildMessage renders the localized advisory summary. Band labels stay
// in English; the surrounding text follows the requested language.
func BuildMessage(language string, weather *models.WeatherData, insights *models.Insights, recs []models.Recommendation) string {
	temp, humidity := 0.0, 0.0
	if weather != nil {
		temp = weather.Current.Temperature
		humidity = weather.Current.Humidity
	}

	soil, yield, pest := "Unknown", "Unknown", "Unknown"
	if insights != nil {
		if insights.SoilHealth != nil {
			soil = insights.SoilHealth.Overall
		}
		if insights.YieldPotential != nil {
			yield = insights.YieldPotential.Overall
		}
		if insights.PestRisk != nil {
			pest = insights.PestRisk.Overall
		}
	}

	action := ""
	if len(recs) > 0 {
		action = recs[0].Action
	}

	var msg string
	switch language {
	case "hi":
		msg = fmt.Sprintf("खेत अपडेट: %.0fC, नमी %.0f%%. मिट्टी: %s. उपज: %s. कीट खतरा: %s.", temp, humidity, soil, yield, pest)
		if action != "" {
			msg += " करें: " + action
		}
	case "mr":
		msg = fmt.Sprintf("शेत अपडेट: %.0fC, आर्द्रता %.0f%%. माती: %s. उत्पन्न: %s. कीड धोका: %s.", temp, humidity, soil, yield, pest)
		if action != "" {
			msg += " करा: " + action
		}
	default:
		msg = fmt.Sprintf("Farm update: %.0fC, %.0f%% humidity. Soil: %s. Yield: %s. Pest risk: %s.", temp, humidity, soil, yield, pest)
		if action != "" {
			msg += " Do: " + action
		}
	}

	return Truncate(msg, smsMaxRunes)
}

// Truncate hard-caps a message at max runes, ending with an ellipsis
// when anything was cut.
func Truncate(msg string, max int) string {
	runes := []rune(msg)
	if len(runes) <= max {
		return msg
	}
	return string(runes[:max-3]) + "..."
}
