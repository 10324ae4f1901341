// Package assets prepares the raster images printed on a card. Preparation
// never fails: each asset ends up Embedded or Degraded, and the compositor
// draws a placeholder for every degraded one.
package assets

import (
	"fmt"

	"carteira/internal/card/canvas"
)

type Kind string

const (
	KindPhoto  Kind = "photo"
	KindQR     Kind = "qr"
	KindEmblem Kind = "emblem"
)

// Encoded is image data ready for the emitter.
type Encoded struct {
	Format canvas.ImageFormat
	Data   []byte
}

// Result is either Embedded (Asset set) or Degraded (Reason set).
type Result struct {
	Kind   Kind
	Asset  *Encoded
	Reason string
}

func Embedded(kind Kind, asset Encoded) Result {
	return Result{Kind: kind, Asset: &asset}
}

func Degraded(kind Kind, reason string) Result {
	return Result{Kind: kind, Reason: reason}
}

func (r Result) IsEmbedded() bool { return r.Asset != nil }

// Warning describes a degraded asset. Non-fatal.
type Warning struct {
	Asset  Kind
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s degraded: %s", w.Asset, w.Reason)
}

// Set holds the three assets of one card.
type Set struct {
	Photo  Result
	QR     Result
	Emblem Result
}

// Warnings lists the degraded photo and QR assets. A missing emblem is a
// deployment choice and is not reported.
func (s Set) Warnings() []Warning {
	var out []Warning
	for _, r := range []Result{s.Photo, s.QR} {
		if !r.IsEmbedded() {
			out = append(out, Warning{Asset: r.Kind, Reason: r.Reason})
		}
	}
	return out
}
