package registration

import (
	"carteira/internal/directory"
	"carteira/pkg/text"
)

// genericProviders are offered when neither the record nor the city pins a provider.
var genericProviders = []string{
	"Ônibus Municipal",
	"Ônibus Escolar",
	"Van Escolar",
	"Transporte Universitário",
}

// systemicProviders maps cities served by a single city-wide provider.
var systemicProviders = map[directory.City]string{
	directory.CityMonteCarmelo: "Novatur Ltda",
}

// TransportOptions returns the ordered provider options for a record.
// A record-specific assignment wins; then the city's systemic provider;
// otherwise the generic list.
func TransportOptions(city directory.City, rec *directory.StudentRecord) []string {
	if rec != nil {
		if assigned := text.DedupeAndTrim(rec.TransportProviders); len(assigned) > 0 {
			return assigned
		}
	}
	if provider, ok := systemicProviders[city]; ok {
		return []string{provider}
	}
	return append([]string(nil), genericProviders...)
}

// matchOption finds choice in options ignoring case and diacritics and
// returns the canonical option.
func matchOption(options []string, choice string) (string, bool) {
	want := text.FoldLower(text.CollapseSpaces(choice))
	for _, opt := range options {
		if text.FoldLower(opt) == want {
			return opt, true
		}
	}
	return "", false
}
