package arrivals

import "unicode/utf16"

var DefaultPalette = []string{"053e73", "e74c3c", "27ae60", "f39c12", "9b59b6", "1abc9c", "e67e22", "3498db"}

// RouteColour deterministically picks a palette colour for a route code. The
// hash matches the one the web client uses so both sides agree on colours.
func RouteColour(routeCode string, palette []string) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	// hash = unit + ((hash << 5) - hash), where only the shift truncates to 32 bits
	var hash int64
	for _, unit := range utf16.Encode([]rune(routeCode)) {
		shifted := int64(int32(uint32(hash) << 5))
		hash = int64(unit) + (shifted - hash)
	}

	if hash < 0 {
		hash = -hash
	}

	return palette[hash%int64(len(palette))]
}
