package styling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carteira/internal/card/canvas"
	"carteira/internal/directory"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		city     directory.City
		want     Scheme
		hex      string
		rule     string
	}{
		{"jn tour beats city", "JN Tour", directory.CityUberlandia, Yellow, "#ffc107", "jn-tour"},
		{"cachoeira", "Cachoeira Transportes", directory.CityUberaba, SkyBlue, "#87ceeb", "cachoeira"},
		{"marques", "MARQUES Turismo", directory.CityUberaba, Olive, "#808000", "marques"},
		{"silva and cunha", "silva & CUNHA", directory.CityUberaba, Navy, "#191970", "silva-cunha"},
		{"silva alone is not navy", "Silva Transportes", directory.CityUberaba, Green, "#22c55e", "city-uberaba"},
		{"jn tour precedes silva cunha", "JN Tour Silva Cunha", directory.CityUberaba, Yellow, "#ffc107", "jn-tour"},
		{"monte carmelo", "Novatur Ltda", directory.CityMonteCarmelo, Yellow, "#ffc107", "city-monte-carmelo"},
		{"uberlandia", "Ônibus Municipal", directory.CityUberlandia, Blue, "#3b82f6", "city-uberlandia"},
		{"uberaba", "Ônibus Municipal", directory.CityUberaba, Green, "#22c55e", "city-uberaba"},
		{"unknown city", "", "araxa", Fallback, "#15803d", "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := Explain(tt.provider, tt.city)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.hex, got.Hex())
			assert.Equal(t, tt.rule, rule)
			assert.Equal(t, got, ColorFor(tt.provider, tt.city))
		})
	}
}

func TestSilvaCunhaIsWhiteInEveryCity(t *testing.T) {
	cities := append([]directory.City{"unknown"}, directory.Cities...)
	for _, city := range cities {
		s := ColorFor("Viação Silva e Cunha", city)
		assert.True(t, s.WhiteBackground)
		assert.Equal(t, canvas.White, s.Background())
		assert.Equal(t, "#191970", s.Hex())
	}
}

func TestBackgroundIsTinted(t *testing.T) {
	bg := Green.Background()
	assert.NotEqual(t, canvas.White, bg)
	assert.Equal(t, Green.Primary.Blend(canvas.White, BackgroundTint), bg)
}
