package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"carteira/internal/card/canvas"
)

func TestWrap(t *testing.T) {
	m := fixedMeasurer{}
	// size 5 -> 1 mm per rune, so width 10 fits 10 runes.

	t.Run("short value is one line", func(t *testing.T) {
		assert.Equal(t, []string{"MARIA"}, Wrap(m, "MARIA", canvas.Regular, 5, 10, 0))
	})

	t.Run("breaks on words", func(t *testing.T) {
		got := Wrap(m, "ANA MARIA DE SOUZA", canvas.Regular, 5, 10, 0)
		assert.Equal(t, []string{"ANA MARIA", "DE SOUZA"}, got)
	})

	t.Run("splits words wider than a line", func(t *testing.T) {
		got := Wrap(m, "ABCDEFGHIJKLMNO", canvas.Regular, 5, 10, 0)
		assert.Equal(t, []string{"ABCDEFGHIJ", "KLMNO"}, got)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		assert.Equal(t, []string{"A B"}, Wrap(m, "  A \n  B ", canvas.Regular, 5, 10, 0))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Wrap(m, "   ", canvas.Regular, 5, 10, 0))
	})

	t.Run("caps lines with an ellipsis", func(t *testing.T) {
		got := Wrap(m, "UM DOIS TRES QUATRO CINCO SEIS SETE", canvas.Regular, 5, 10, 2)
		assert.Len(t, got, 2)
		assert.True(t, strings.HasSuffix(got[1], "..."), got[1])
	})

	t.Run("no line exceeds the width", func(t *testing.T) {
		long := strings.Repeat("ENGENHARIA DE CONTROLE E AUTOMAÇÃO ", 4)
		for _, line := range Wrap(m, long, canvas.Regular, 4, 35, 3) {
			assert.LessOrEqual(t, m.StringWidth(line, canvas.Regular, 4), 35.0, line)
		}
	})

	t.Run("splits by rune not byte", func(t *testing.T) {
		got := Wrap(m, "ÇÇÇÇÇÇÇÇÇÇÇÇ", canvas.Regular, 5, 10, 0)
		assert.Equal(t, []string{"ÇÇÇÇÇÇÇÇÇÇ", "ÇÇ"}, got)
	})
}

func TestElide(t *testing.T) {
	m := fixedMeasurer{}
	assert.Equal(t, "FITS", Elide(m, "FITS", canvas.Regular, 5, 10))
	got := Elide(m, "UBERLÂNDIA - TRANSPORTES", canvas.Regular, 5, 10)
	assert.Equal(t, "UBERLÂN...", got)
	assert.Equal(t, "...", Elide(m, "ABCDEF", canvas.Regular, 5, 1))
}

func TestLineHeight(t *testing.T) {
	assert.InDelta(t, 1.8256, LineHeight(4.5), 0.001)
}
