// Package emitter serializes a card canvas to a single-page PDF.
package emitter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-pdf/fpdf"

	"carteira/internal/card/canvas"
	dErrors "carteira/pkg/domain-errors"
	"carteira/pkg/platform/tracer"
)

const (
	fontFamily = "Helvetica"
	producer   = "carteira"
)

type Option func(*PDF)

func WithLogger(l *slog.Logger) Option {
	return func(p *PDF) {
		p.logger = l
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(p *PDF) {
		p.tracer = t
	}
}

func WithAuthor(author string) Option {
	return func(p *PDF) {
		p.author = author
	}
}

// PDF renders canvases with fpdf. Every Emit builds its own document, so a
// single PDF value is safe for concurrent use.
type PDF struct {
	logger *slog.Logger
	tracer tracer.Tracer
	author string
}

func New(opts ...Option) *PDF {
	p := &PDF{
		logger: slog.Default(),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func newDocument(cv *canvas.Canvas) *fpdf.Fpdf {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: cv.Height, Ht: cv.Width},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(cv.CreatedAt)
	doc.SetModificationDate(cv.CreatedAt)
	return doc
}

// Emit renders cv. The same canvas always yields the same bytes.
func (p *PDF) Emit(ctx context.Context, cv *canvas.Canvas) ([]byte, error) {
	_, span := p.tracer.Start(ctx, tracer.SpanEmit)
	out, err := p.emit(cv)
	if err != nil {
		span.End(err)
		p.logger.ErrorContext(ctx, "pdf serialization failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to serialize card")
	}
	span.SetAttributes(tracer.Int64(tracer.AttrBytes, int64(len(out))))
	span.End(nil)
	return out, nil
}

func (p *PDF) emit(cv *canvas.Canvas) ([]byte, error) {
	if cv == nil {
		return nil, fmt.Errorf("nil canvas")
	}
	doc := newDocument(cv)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetTitle(cv.Title, true)
	doc.SetProducer(producer, true)
	doc.SetCreator(producer, true)
	if p.author != "" {
		doc.SetAuthor(p.author, true)
	}
	doc.AddPage()

	registered := make(map[string]bool)
	for _, op := range cv.Ops {
		switch o := op.(type) {
		case canvas.Rect:
			doc.SetFillColor(int(o.Fill.R), int(o.Fill.G), int(o.Fill.B))
			if o.Alpha > 0 && o.Alpha < 1 {
				doc.SetAlpha(o.Alpha, "Normal")
				doc.Rect(o.X, o.Y, o.W, o.H, "F")
				doc.SetAlpha(1, "Normal")
				continue
			}
			doc.Rect(o.X, o.Y, o.W, o.H, "F")
		case canvas.Circle:
			doc.SetFillColor(int(o.Fill.R), int(o.Fill.G), int(o.Fill.B))
			doc.Circle(o.X, o.Y, o.R, "F")
		case canvas.Text:
			doc.SetFont(fontFamily, string(o.Style), o.Size)
			doc.SetTextColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
			doc.Text(o.X, o.Y, tr(o.Value))
		case canvas.Image:
			opts := fpdf.ImageOptions{ImageType: string(o.Format)}
			if !registered[o.Name] {
				doc.RegisterImageOptionsReader(o.Name, opts, bytes.NewReader(o.Data))
				registered[o.Name] = true
			}
			doc.ImageOptions(o.Name, o.X, o.Y, o.W, o.H, false, opts, 0, "")
		default:
			return nil, fmt.Errorf("unsupported canvas op %T", op)
		}
		if err := doc.Error(); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Measurer reports string widths from the core font metrics the emitter
// uses, so layout and output agree.
type Measurer struct {
	mu  sync.Mutex
	doc *fpdf.Fpdf
	tr  func(string) string
}

func NewMeasurer() *Measurer {
	doc := fpdf.New("L", "mm", "A4", "")
	return &Measurer{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
}

func (m *Measurer) StringWidth(s string, style canvas.FontStyle, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.SetFont(fontFamily, string(style), size)
	return m.doc.GetStringWidth(m.tr(s))
}
