package layout

import (
	"strings"

	"carteira/internal/card/canvas"
)

// Measurer reports rendered text width in millimeters.
type Measurer interface {
	StringWidth(s string, style canvas.FontStyle, size float64) float64
}

const (
	ptToMM     = 25.4 / 72
	lineFactor = 1.15
	ellipsis   = "..."
)

// LineHeight is the baseline distance for a font size in points.
func LineHeight(size float64) float64 {
	return size * lineFactor * ptToMM
}

// Wrap breaks s into lines no wider than width. Words wider than a full
// line are split by rune. When more than maxLines are needed, the last kept
// line is elided. maxLines <= 0 means unlimited.
func Wrap(m Measurer, s string, style canvas.FontStyle, size, width float64, maxLines int) []string {
	fits := func(v string) bool { return m.StringWidth(v, style, size) <= width }

	var lines []string
	current := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if fits(candidate) {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		for !fits(word) {
			head, tail := splitToFit(word, fits)
			lines = append(lines, head)
			word = tail
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = Elide(m, lines[maxLines-1]+" "+ellipsis, style, size, width)
	}
	return lines
}

// splitToFit returns the longest rune prefix of word that fits, at least one rune.
func splitToFit(word string, fits func(string) bool) (string, string) {
	runes := []rune(word)
	cut := 1
	for n := 2; n <= len(runes); n++ {
		if !fits(string(runes[:n])) {
			break
		}
		cut = n
	}
	return string(runes[:cut]), string(runes[cut:])
}

// Elide shortens s with a trailing ellipsis until it fits in width.
func Elide(m Measurer, s string, style canvas.FontStyle, size, width float64) string {
	if m.StringWidth(s, style, size) <= width {
		return s
	}
	base := strings.TrimSuffix(s, " "+ellipsis)
	runes := []rune(base)
	for n := len(runes); n > 0; n-- {
		candidate := strings.TrimRight(string(runes[:n]), " ") + ellipsis
		if m.StringWidth(candidate, style, size) <= width {
			return candidate
		}
	}
	return ellipsis
}
