package assets

import (
	"fmt"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"

	"carteira/internal/card/canvas"
)

const defaultQRSize = 256

// EncodeQR renders payload as a PNG with dark modules in the given color on
// white. Empty or oversized payloads degrade.
func EncodeQR(payload string, dark canvas.Color, size int) Result {
	if payload == "" {
		return Degraded(KindQR, "empty payload")
	}
	if size <= 0 {
		size = defaultQRSize
	}
	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return Degraded(KindQR, fmt.Sprintf("encode qr: %v", err))
	}
	q.ForegroundColor = color.RGBA{R: dark.R, G: dark.G, B: dark.B, A: 0xff}
	q.BackgroundColor = color.White
	data, err := q.PNG(size)
	if err != nil {
		return Degraded(KindQR, fmt.Sprintf("render qr: %v", err))
	}
	return Embedded(KindQR, Encoded{Format: canvas.PNG, Data: data})
}
