package routing

import (
	"fmt"
	"math"
)

const defaultInstruction = "Devam et"

var instructions = map[string]string{
	"depart":     "Yola çık",
	"arrive":     "Hedefe vardın",
	"continue":   "Düz devam et",
	"merge":      "Yola katıl",
	"roundabout": "Dönel kavşaktan geç",
	"rotary":     "Dönel kavşaktan geç",
	"new name":   "Devam et",
	"straight":   "Düz git",
}

var modifiedInstructions = map[string]map[string]string{
	"turn": {
		"left":         "Sola dön",
		"right":        "Sağa dön",
		"slight left":  "Hafif sola dön",
		"slight right": "Hafif sağa dön",
		"sharp left":   "Keskin sola dön",
		"sharp right":  "Keskin sağa dön",
		"uturn":        "U dönüşü yap",
	},
	"fork": {
		"left":  "Soldan devam et",
		"right": "Sağdan devam et",
	},
	"end of road": {
		"left":  "Yol sonunda sola dön",
		"right": "Yol sonunda sağa dön",
	},
}

// TranslateInstruction renders an OSRM maneuver as a Turkish instruction
func TranslateInstruction(maneuverType string, modifier string, streetName string) string {
	street := ""
	if streetName != "" {
		street = fmt.Sprintf(" (%s)", streetName)
	}

	if modified, ok := modifiedInstructions[maneuverType]; ok {
		if modifier == "" {
			return defaultInstruction + street
		}

		if instruction, ok := modified[modifier]; ok {
			return instruction + street
		}

		return defaultInstruction + street
	}

	if instruction, ok := instructions[maneuverType]; ok {
		return instruction + street
	}

	return defaultInstruction + street
}

func FormatDuration(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%d sn", int(math.Round(seconds)))
	}

	if seconds < 3600 {
		return fmt.Sprintf("%d dk", int(math.Round(seconds/60)))
	}

	hours := int(math.Floor(seconds / 3600))
	minutes := int(math.Round(math.Mod(seconds, 3600) / 60))

	return fmt.Sprintf("%d sa %d dk", hours, minutes)
}

func FormatDistance(metres float64) string {
	if metres < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(metres)))
	}

	return fmt.Sprintf("%.1f km", metres/1000)
}
