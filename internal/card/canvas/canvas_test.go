package canvas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	green := Color{34, 197, 94}
	assert.Equal(t, "#22c55e", green.Hex())
	assert.Equal(t, green, green.Blend(White, 0))
	assert.Equal(t, White, green.Blend(White, 1))
	assert.Equal(t, Color{237, 250, 242}, green.Blend(White, 0.92))
}

func TestCanvasDisplayList(t *testing.T) {
	c := New(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), "carteira")
	assert.InDelta(t, 85.0, c.Width, 0)
	assert.InDelta(t, 55.0, c.Height, 0)
	assert.InDelta(t, 1.5, c.Margin, 0)

	c.Rect(Rect{X: 1, Y: 1, W: 2, H: 2})
	c.Text(Text{Value: "NOME:", Style: Bold})
	c.Image(Image{Name: "photo", Format: JPEG})
	c.Circle(Circle{R: 3})
	c.Text(Text{Value: "MARIA SILVA"})

	assert.Len(t, c.Ops, 5)
	assert.Len(t, c.Texts(), 2)
	assert.Len(t, c.Images(), 1)

	got, ok := c.FindText("MARIA SILVA")
	assert.True(t, ok)
	assert.Equal(t, Regular, got.Style)

	_, ok = c.FindText("absent")
	assert.False(t, ok)
}
