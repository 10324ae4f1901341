package layout

import (
	"unicode/utf8"

	"carteira/internal/card/canvas"
)

// fixedMeasurer gives every rune the same advance: size * 0.2 mm.
type fixedMeasurer struct{}

func (fixedMeasurer) StringWidth(s string, _ canvas.FontStyle, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.2
}
