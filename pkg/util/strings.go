package util

func RemoveDuplicateStrings(strings []string, ignoreList []string) []string {
	presentStrings := make(map[string]bool)
	var list []string

	for _, ignoreString := range ignoreList {
		presentStrings[ignoreString] = true
	}

	for _, item := range strings {
		if _, value := presentStrings[item]; !value && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}
	return list
}

// TrimString cuts to a number of characters rather than bytes
func TrimString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	return string(runes[:length])
}
