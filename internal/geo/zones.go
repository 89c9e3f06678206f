package geo

import "github.com/agrosight/agrosight/internal/models"

// Region buckets used by the crop suitability tables.
const (
	RegionNorthern = "northern"
	RegionCentral  = "central"
	RegionSouthern = "southern"
	RegionEastern  = "eastern"
	RegionWestern  = "western"
)

// Region maps coordinates to the coarse bucket the crop tables are keyed
// by. Thresholds: latitude 26/20/15, longitude 75.
func Region(c models.Coordinates) string {
	switch {
	case c.Lat >= 26:
		return RegionNorthern
	case c.Lat >= 20:
		return RegionCentral
	case c.Lat >= 15:
		if c.Lon >= 75 {
			return RegionEastern
		}
		return RegionWestern
	default:
		return RegionSouthern
	}
}

// Zone returns the agricultural zone for a coordinate. The buckets are
// deliberately coarse; they only have to be plausible, not cadastral.
func Zone(c models.Coordinates) models.AgriculturalZone {
	switch {
	case c.Lat >= 30:
		return models.AgriculturalZone{
			Zone:            "Himalayan",
			Characteristics: []string{"temperate climate", "terraced slopes", "short growing season"},
		}
	case c.Lat >= 24:
		return models.AgriculturalZone{
			Zone:            "Indo-Gangetic Plain",
			Characteristics: []string{"alluvial soil", "canal irrigation", "intensive cereal cropping"},
		}
	case c.Lat < 20 && (c.Lon < 74 || c.Lon > 80):
		return models.AgriculturalZone{
			Zone:            "Coastal",
			Characteristics: []string{"high humidity", "saline influence", "rice dominant"},
		}
	case c.Lon < 75:
		return models.AgriculturalZone{
			Zone:            "Western Arid",
			Characteristics: []string{"low rainfall", "sandy soil", "drought-prone"},
		}
	default:
		return models.AgriculturalZone{
			Zone:            "Central Plateau",
			Characteristics: []string{"black cotton soil", "rainfed farming", "moderate rainfall"},
		}
	}
}

// SoilType returns the dominant soil classification for a zone.
func SoilType(zone string) models.SoilClassification {
	switch zone {
	case "Himalayan":
		return models.SoilClassification{
			Type:            "Mountain",
			Characteristics: []string{"shallow profile", "rich in organic matter", "acidic tendency"},
			NPK:             models.NPKLevels{N: "high", P: "low", K: "medium"},
		}
	case "Indo-Gangetic Plain":
		return models.SoilClassification{
			Type:            "Alluvial",
			Characteristics: []string{"deep profile", "good water retention", "fertile"},
			NPK:             models.NPKLevels{N: "medium", P: "high", K: "high"},
		}
	case "Coastal":
		return models.SoilClassification{
			Type:            "Laterite",
			Characteristics: []string{"leached", "iron-rich", "low fertility"},
			NPK:             models.NPKLevels{N: "low", P: "low", K: "medium"},
		}
	case "Western Arid":
		return models.SoilClassification{
			Type:            "Desert",
			Characteristics: []string{"sandy texture", "low organic matter", "high infiltration"},
			NPK:             models.NPKLevels{N: "low", P: "medium", K: "high"},
		}
	default:
		return models.SoilClassification{
			Type:            "Black",
			Characteristics: []string{"clayey texture", "moisture retentive", "self-ploughing cracks"},
			NPK:             models.NPKLevels{N: "medium", P: "medium", K: "high"},
		}
	}
}
