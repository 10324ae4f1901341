package registration

import (
	"regexp"
	"strings"

	"carteira/internal/directory"
	dErrors "carteira/pkg/domain-errors"
)

// Messages shown to the student; they differ so a typo is never reported
// as a missing enrollment.
const (
	MsgBlank    = "Por favor, insira um número de matrícula"
	MsgFormat   = "Formato de matrícula inválido"
	MsgNotFound = "Matrícula não encontrada na base de dados"
)

// Number is a registration number that matched a city pattern.
type Number string

func (n Number) String() string { return string(n) }

type cityPattern struct {
	city    directory.City
	pattern *regexp.Regexp
}

// Evaluated in order; the first match determines the city.
var cityPatterns = []cityPattern{
	{city: directory.CityUberaba, pattern: regexp.MustCompile(`^1\d{5}$`)},
	{city: directory.CityUberlandia, pattern: regexp.MustCompile(`^2\d{5}$`)},
	{city: directory.CityMonteCarmelo, pattern: regexp.MustCompile(`^3\d{5}$`)},
}

// Parse trims raw and derives the city from its format. Blank or
// unmatched input is an invalid_format error.
func Parse(raw string) (Number, directory.City, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", dErrors.New(dErrors.CodeInvalidFormat, MsgBlank)
	}
	for _, cp := range cityPatterns {
		if cp.pattern.MatchString(trimmed) {
			return Number(trimmed), cp.city, nil
		}
	}
	return "", "", dErrors.New(dErrors.CodeInvalidFormat, MsgFormat)
}
