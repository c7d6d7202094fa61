package tabular

import (
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
)

// Candidate encodings in the order they are tried
var CandidateEncodings = []string{"utf-8", "utf-16le", "utf-16be", "iso-8859-9", "windows-1252", "windows-1254"}

const (
	targetAlphabet        = "şçğıüöŞÇĞİÜÖ"
	minimumAlphabetCount  = 50
	maximumErrorMarkCount = 10
)

type Decoded struct {
	Text     string
	Encoding string

	// Degraded is set when no candidate qualified and the bytes were read as UTF-8 anyway
	Degraded bool
}

// DetectEncoding decodes raw bytes with the first candidate encoding that yields
// plenty of Turkish specific letters and very few replacement marks
func DetectEncoding(raw []byte) Decoded {
	for _, label := range CandidateEncodings {
		enc, _ := charset.Lookup(label)
		if enc == nil {
			continue
		}

		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}

		text := string(decoded)
		alphabetCount, errorMarkCount := scoreText(text)

		if alphabetCount > minimumAlphabetCount && errorMarkCount < maximumErrorMarkCount {
			return Decoded{
				Text:     text,
				Encoding: label,
			}
		}
	}

	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		decoded = raw
	}

	return Decoded{
		Text:     string(decoded),
		Encoding: "utf-8",
		Degraded: true,
	}
}

func scoreText(text string) (int, int) {
	alphabetCount := 0
	errorMarkCount := 0

	for _, r := range text {
		switch {
		case r == '?' || r == '\uFFFD':
			errorMarkCount++
		case strings.ContainsRune(targetAlphabet, r):
			alphabetCount++
		}
	}

	return alphabetCount, errorMarkCount
}
