package insight

import (
	"fmt"
	"time"
)

// Season is one of the Indian cropping seasons.
type Season string

const (
	SeasonKharif Season = "Kharif" // monsoon-sown, Jun-Oct
	SeasonRabi   Season = "Rabi"   // winter-sown, Nov-Mar
	SeasonZaid   Season = "Zaid"   // short summer season
)

// SeasonForMonth maps a calendar month to the cropping season.
func SeasonForMonth(m time.Month) Season {
	switch {
	case m >= time.June && m <= time.October:
		return SeasonKharif
	case m >= time.November || m <= time.March:
		return SeasonRabi
	default:
		return SeasonZaid
	}
}

// seasonalAnalysis compares the current season against the crop's
// declared optimal season.
func seasonalAnalysis(cropName, cropSeason string, now time.Time) string {
	current := SeasonForMonth(now.Month())
	if cropSeason == "Year-round" {
		return fmt.Sprintf("%s can be cultivated year-round; current season is %s.", cropName, current)
	}
	if string(current) == cropSeason {
		return fmt.Sprintf("Current season (%s) matches the optimal sowing window for %s.", current, cropName)
	}
	return fmt.Sprintf("Current season is %s but %s is a %s crop; consider waiting for the %s window.",
		current, cropName, cropSeason, cropSeason)
}
