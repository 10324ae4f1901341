package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"

	"carteira/internal/card/canvas"
)

// MaxPixels bounds decoded image area so a tiny upload cannot expand into
// an enormous bitmap.
const MaxPixels = 25_000_000

const jpegQuality = 90

var errNoImage = errors.New("no image supplied")

// decodeBounded checks dimensions before decoding the full image.
func decodeBounded(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, errNoImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("empty image")
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, fmt.Errorf("image too large: %dx%d", cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// NormalizePhoto decodes a JPEG, PNG or GIF upload and re-encodes it as
// baseline JPEG, which also drops metadata.
func NormalizePhoto(data []byte) Result {
	img, err := decodeBounded(data)
	if err != nil {
		return Degraded(KindPhoto, err.Error())
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Degraded(KindPhoto, fmt.Sprintf("encode photo: %v", err))
	}
	return Embedded(KindPhoto, Encoded{Format: canvas.JPEG, Data: buf.Bytes()})
}

// LoadEmblem reads the municipal emblem from path and re-encodes it as PNG
// so transparency survives. An empty path means no emblem is configured.
func LoadEmblem(path string) Result {
	if path == "" {
		return Degraded(KindEmblem, "not configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Degraded(KindEmblem, fmt.Sprintf("read emblem: %v", err))
	}
	return emblemFromBytes(data)
}

func emblemFromBytes(data []byte) Result {
	img, err := decodeBounded(data)
	if err != nil {
		return Degraded(KindEmblem, err.Error())
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Degraded(KindEmblem, fmt.Sprintf("encode emblem: %v", err))
	}
	return Embedded(KindEmblem, Encoded{Format: canvas.PNG, Data: buf.Bytes()})
}
