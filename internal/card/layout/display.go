package layout

import (
	"fmt"
	"strings"
	"time"

	"carteira/internal/directory"
	"carteira/pkg/text"
)

var cityDisplayNames = map[directory.City]string{
	directory.CityMonteCarmelo: "M. CARMELO",
	directory.CityUberaba:      "UBERABA",
	directory.CityUberlandia:   "UBERLÂNDIA",
}

// Keyed by slug so both "onibus-municipal" and "Ônibus Municipal" resolve.
var providerDisplayNames = map[string]string{
	"onibus-municipal":         "ÔNIBUS MUN.",
	"onibus-escolar":           "ÔNIBUS ESC.",
	"van-escolar":              "VAN ESCOLAR",
	"transporte-universitario": "TRANSP. UNIV.",
	"outros":                   "OUTROS",
}

// CityDisplayName returns the printed city label, or the upper-cased key.
func CityDisplayName(city directory.City) string {
	if name, ok := cityDisplayNames[city]; ok {
		return name
	}
	return strings.ToUpper(string(city))
}

// ProviderDisplayName returns the printed provider label, or the upper-cased
// provider name.
func ProviderDisplayName(provider string) string {
	if name, ok := providerDisplayNames[text.Slug(provider)]; ok {
		return name
	}
	return strings.ToUpper(strings.TrimSpace(provider))
}

// FormatBirthDate converts YYYY-MM-DD to DD/MM/YYYY. Other input is
// printed as given.
func FormatBirthDate(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return v
	}
	return t.Format("02/01/2006")
}

// ValidityFooter states the legal validity: March 31 of the year after now.
func ValidityFooter(now time.Time) string {
	return fmt.Sprintf("válida até 31/03/%d - Lei Federal nº 12.933/2013", now.Year()+1)
}
