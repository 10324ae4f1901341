// Package styling maps a transport provider and city to the card's color
// scheme. ColorFor is total: every input yields a scheme.
package styling

import (
	"strings"

	"carteira/internal/card/canvas"
	"carteira/internal/directory"
)

// Scheme is the accent color of a card. WhiteBackground is set only by the
// Silva & Cunha rule; every other scheme uses a tinted background.
type Scheme struct {
	Primary         canvas.Color
	WhiteBackground bool
}

// Hex returns the primary color as #rrggbb.
func (s Scheme) Hex() string { return s.Primary.Hex() }

// BackgroundTint is the share of white blended into Primary for the card body.
const BackgroundTint = 0.92

// Background returns the card body fill.
func (s Scheme) Background() canvas.Color {
	if s.WhiteBackground {
		return canvas.White
	}
	return s.Primary.Blend(canvas.White, BackgroundTint)
}

var (
	Yellow   = Scheme{Primary: canvas.Color{R: 255, G: 193, B: 7}}
	SkyBlue  = Scheme{Primary: canvas.Color{R: 135, G: 206, B: 235}}
	Olive    = Scheme{Primary: canvas.Color{R: 128, G: 128, B: 0}}
	Navy     = Scheme{Primary: canvas.Color{R: 25, G: 25, B: 112}, WhiteBackground: true}
	Blue     = Scheme{Primary: canvas.Color{R: 59, G: 130, B: 246}}
	Green    = Scheme{Primary: canvas.Color{R: 34, G: 197, B: 94}}
	Fallback = Scheme{Primary: canvas.Color{R: 21, G: 128, B: 61}}
)

type rule struct {
	name   string
	match  func(provider string, city directory.City) bool
	scheme Scheme
}

func containsAll(tokens ...string) func(string, directory.City) bool {
	return func(provider string, _ directory.City) bool {
		for _, t := range tokens {
			if !strings.Contains(provider, t) {
				return false
			}
		}
		return true
	}
}

func inCity(c directory.City) func(string, directory.City) bool {
	return func(_ string, city directory.City) bool { return city == c }
}

// rules are evaluated top to bottom against the lower-cased provider name.
var rules = []rule{
	{name: "jn-tour", match: containsAll("jn tour"), scheme: Yellow},
	{name: "cachoeira", match: containsAll("cachoeira"), scheme: SkyBlue},
	{name: "marques", match: containsAll("marques"), scheme: Olive},
	{name: "silva-cunha", match: containsAll("silva", "cunha"), scheme: Navy},
	{name: "city-monte-carmelo", match: inCity(directory.CityMonteCarmelo), scheme: Yellow},
	{name: "city-uberlandia", match: inCity(directory.CityUberlandia), scheme: Blue},
	{name: "city-uberaba", match: inCity(directory.CityUberaba), scheme: Green},
}

// ColorFor returns the scheme of the first matching rule, or Fallback.
func ColorFor(provider string, city directory.City) Scheme {
	scheme, _ := Explain(provider, city)
	return scheme
}

// Explain is ColorFor plus the name of the rule that matched ("default"
// when none did).
func Explain(provider string, city directory.City) (Scheme, string) {
	p := strings.ToLower(provider)
	for _, r := range rules {
		if r.match(p, city) {
			return r.scheme, r.name
		}
	}
	return Fallback, "default"
}
