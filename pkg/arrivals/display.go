package arrivals

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/travigo/busradar/pkg/util"
)

const (
	DefaultOperatorName = "İETT Otobüsü"
	DefaultDepotName    = "Merkez"

	maxOperatorNameLength = 20
)

type OperatorName struct {
	Match   string `yaml:"match"`
	Display string `yaml:"display"`
}

var DefaultOperatorNames = []OperatorName{
	{Match: "İETT", Display: "İETT Otobüsü"},
	{Match: "IETT", Display: "İETT Otobüsü"},
	{Match: "İstanbul Halk Ulaşım Tic.A.Ş", Display: "Halk Otobüsü"},
	{Match: "Yeni İstanbul Özel Halk Otobüsleri Tic.A.Ş", Display: "Özel Halk Otobüsü"},
	{Match: "ELİT KARAYOLU YOLCU TAŞIMA", Display: "Elit Otobüs"},
	{Match: "MAVİ MARMARA ULAŞIM A.Ş", Display: "Mavi Marmara"},
	{Match: "ÖZEL HALK", Display: "Özel Halk Otobüsü"},
}

var (
	depotSuffixLong  = regexp.MustCompile(`(?i)GARAJI$`)
	depotSuffixShort = regexp.MustCompile(`(?i)GARAJ$`)
)

// FormatOperator turns the raw operator company name into a short display name
func FormatOperator(operator string, names []OperatorName) string {
	if operator == "" {
		return DefaultOperatorName
	}

	for _, name := range names {
		if name.Match == operator {
			return name.Display
		}
	}

	lowerOperator := strings.ToLower(operator)
	for _, name := range names {
		if strings.Contains(lowerOperator, strings.ToLower(name.Match)) {
			return name.Display
		}
	}

	if trimmed := util.TrimString(operator, maxOperatorNameLength); trimmed != operator {
		return trimmed + "..."
	}

	return operator
}

// FormatDepot strips the garage suffix and title cases the depot name
func FormatDepot(depot string) string {
	if depot == "" {
		return DefaultDepotName
	}

	name := depotSuffixLong.ReplaceAllString(depot, "")
	name = depotSuffixShort.ReplaceAllString(name, "")
	name = strings.TrimSpace(strings.ReplaceAll(name, "_", " "))

	words := strings.Split(name, " ")
	for i, word := range words {
		if word == "" {
			continue
		}

		runes := []rune(word)
		words[i] = string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
	}

	name = strings.Join(words, " ")
	if name == "" {
		return DefaultDepotName
	}

	return name
}
