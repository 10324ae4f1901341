package assets

import (
	"context"

	"golang.org/x/sync/errgroup"

	"carteira/internal/card/canvas"
	"carteira/pkg/platform/tracer"
)

type Option func(*Preparer)

// WithEmblem sets the pre-loaded emblem shared by every card.
func WithEmblem(r Result) Option {
	return func(p *Preparer) {
		p.emblem = r
	}
}

// WithQRSize sets the rendered QR bitmap size in pixels.
func WithQRSize(px int) Option {
	return func(p *Preparer) {
		if px > 0 {
			p.qrSize = px
		}
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(p *Preparer) {
		p.tracer = t
	}
}

// Preparer builds the asset set for one card.
type Preparer struct {
	emblem Result
	qrSize int
	tracer tracer.Tracer
}

func NewPreparer(opts ...Option) *Preparer {
	p := &Preparer{
		emblem: Degraded(KindEmblem, "not configured"),
		qrSize: defaultQRSize,
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Request carries the per-card inputs.
type Request struct {
	Photo     []byte
	QRPayload string
	QRColor   canvas.Color
}

// Prepare decodes the photo and encodes the QR concurrently. A cancelled
// context degrades whatever has not started.
func (p *Preparer) Prepare(ctx context.Context, req Request) Set {
	ctx, span := p.tracer.Start(ctx, tracer.SpanAssets)

	set := Set{Emblem: p.emblem}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			set.Photo = Degraded(KindPhoto, err.Error())
			return nil
		}
		if len(req.Photo) == 0 {
			set.Photo = Degraded(KindPhoto, "no photo supplied")
			return nil
		}
		set.Photo = NormalizePhoto(req.Photo)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			set.QR = Degraded(KindQR, err.Error())
			return nil
		}
		set.QR = EncodeQR(req.QRPayload, req.QRColor, p.qrSize)
		return nil
	})
	_ = g.Wait()

	span.SetAttributes(tracer.Int64(tracer.AttrDegraded, int64(len(set.Warnings()))))
	span.End(nil)
	return set
}
