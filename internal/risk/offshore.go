package risk

import "strings"

// DefaultHighRiskCountries - высокорисковые юрисдикции (офшорные зоны и санкционные страны).
// Этим списком заполняется Redis и он же используется, если Redis не подключен.
var DefaultHighRiskCountries = []string{
	"VG", "BRITISH VIRGIN ISLANDS",
	"KY", "CAYMAN ISLANDS",
	"BS", "BAHAMAS",
	"PA", "PANAMA",
	"SC", "SEYCHELLES",
	"MU", "MAURITIUS",
	"KP", "NORTH KOREA",
	"IR", "IRAN",
	"MM", "MYANMAR",
}

var offshoreCountries = func() map[string]bool {
	m := make(map[string]bool, len(DefaultHighRiskCountries))
	for _, c := range DefaultHighRiskCountries {
		m[c] = true
	}
	return m
}()

// isOffshoreCountry проверяет страну по встроенному списку
func isOffshoreCountry(country string) bool {
	return offshoreCountries[strings.ToUpper(strings.TrimSpace(country))]
}
