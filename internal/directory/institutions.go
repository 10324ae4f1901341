package directory

var institutionsByCity = map[City][]string{
	CityUberaba: {
		"FAZU", "EFOP", "UNIUBE", "Uniube / Policlínica", "SENAI", "Grau Técnico",
		"Senac", "UFTM", "IFTM", "Conservatório", "Uniasselvi", "Cebrac",
	},
	CityUberlandia: {
		"UFU", "Uniessa", "UNIUBE", "Colégio Profissional", "Anhanguera", "UNITRI",
		"Uniasselvi", "Unicesumar", "UNIPAC", "Fatra", "ESAMC", "Grau técnico", "Proz",
		"Uniube Vila Gávea", "FAVENI", "Estácio", "Cebrac", "Uniube via centro",
		"Escola do Mecânico", "Mix curso",
	},
	CityMonteCarmelo: {
		"UFU", "Uniessa", "UNIUBE", "Colégio Profissional", "Anhanguera", "UNITRI",
		"Uniasselvi", "Unicesumar", "UNIPAC", "Fatra", "ESAMC", "Grau técnico", "Proz",
		"Uniube Vila Gávea", "FAVENI", "Estácio", "Cebrac", "Uniube via centro",
		"Escola do Mecânico", "Mix curso", "Unifucamp",
	},
}

// InstitutionsFor returns the institutions served from a city, used to
// prefill the submission form. Unknown cities return nil.
func InstitutionsFor(city City) []string {
	list, ok := institutionsByCity[city]
	if !ok {
		return nil
	}
	return append([]string(nil), list...)
}
