// Package canvas is the display list the card compositor draws into and the
// emitter renders. Coordinates are millimeters from the top-left corner;
// text positions are baselines.
package canvas

import (
	"fmt"
	"time"
)

// Physical card size and margin in millimeters.
const (
	Width  = 85.0
	Height = 55.0
	Margin = 1.5
)

// Color is an sRGB color.
type Color struct {
	R, G, B uint8
}

var (
	White = Color{255, 255, 255}
	Gray  = Color{200, 200, 200}
)

// Hex renders the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes c towards other; ratio 0 keeps c, 1 yields other.
func (c Color) Blend(other Color, ratio float64) Color {
	if ratio <= 0 {
		return c
	}
	if ratio >= 1 {
		return other
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*ratio + 0.5)
	}
	return Color{mix(c.R, other.R), mix(c.G, other.G), mix(c.B, other.B)}
}

type FontStyle string

const (
	Regular FontStyle = ""
	Bold    FontStyle = "B"
)

// ImageFormat names an encoded raster understood by the emitter.
type ImageFormat string

const (
	JPEG ImageFormat = "JPG"
	PNG  ImageFormat = "PNG"
)

// Op is one drawing operation.
type Op interface {
	op()
}

type Rect struct {
	X, Y, W, H float64
	Fill       Color
	// Alpha is the fill opacity in (0, 1]; zero means opaque.
	Alpha float64
}

type Circle struct {
	X, Y, R float64
	Fill    Color
}

type Text struct {
	X, Y  float64
	Value string
	Style FontStyle
	Size  float64 // points
	Color Color
}

type Image struct {
	X, Y, W, H float64
	// Name identifies the image inside the document; identical names share one resource.
	Name   string
	Format ImageFormat
	Data   []byte
}

func (Rect) op()   {}
func (Circle) op() {}
func (Text) op()   {}
func (Image) op()  {}

// Canvas is a single card. It is built by one compositor call, emitted,
// then discarded.
type Canvas struct {
	Width, Height, Margin float64
	// CreatedAt pins the document creation date so output is reproducible.
	CreatedAt time.Time
	Title     string
	Ops       []Op
}

// New returns an empty 85 x 55 mm canvas.
func New(createdAt time.Time, title string) *Canvas {
	return &Canvas{
		Width:     Width,
		Height:    Height,
		Margin:    Margin,
		CreatedAt: createdAt,
		Title:     title,
	}
}

func (c *Canvas) Rect(r Rect)     { c.Ops = append(c.Ops, r) }
func (c *Canvas) Circle(o Circle) { c.Ops = append(c.Ops, o) }
func (c *Canvas) Text(t Text)     { c.Ops = append(c.Ops, t) }
func (c *Canvas) Image(i Image)   { c.Ops = append(c.Ops, i) }

// Texts returns the text operations in drawing order.
func (c *Canvas) Texts() []Text {
	var out []Text
	for _, op := range c.Ops {
		if t, ok := op.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

// Images returns the image operations in drawing order.
func (c *Canvas) Images() []Image {
	var out []Image
	for _, op := range c.Ops {
		if i, ok := op.(Image); ok {
			out = append(out, i)
		}
	}
	return out
}

// FindText returns the first text operation with the given value.
func (c *Canvas) FindText(value string) (Text, bool) {
	for _, t := range c.Texts() {
		if t.Value == value {
			return t, true
		}
	}
	return Text{}, false
}
