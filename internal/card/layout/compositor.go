// Package layout composes a resolved student into a card canvas at fixed
// coordinates. All positions are millimeters offset from the card margin.
package layout

import (
	"context"
	"strings"

	"carteira/internal/card/assets"
	"carteira/internal/card/canvas"
	"carteira/internal/card/styling"
	"carteira/internal/registration"
	"carteira/pkg/platform/middleware/requesttime"
	"carteira/pkg/platform/tracer"
)

var (
	textDark    = canvas.Color{R: 55, G: 65, B: 81}
	placeholder = canvas.Color{R: 100, G: 100, B: 100}
)

// Header holds the fixed texts shared by every card.
type Header struct {
	IssuerName    string
	IssuerState   string
	DocumentTitle string
}

// DefaultHeader is the Nova Ponte header.
var DefaultHeader = Header{
	IssuerName:    "PREFEITURA MUNICIPAL DE NOVA PONTE",
	IssuerState:   "MINAS GERAIS",
	DocumentTitle: "CARTEIRA DE ESTUDANTE",
}

const DefaultQRNamespace = "NOVA_PONTE_STUDENT_ID"

type Option func(*Compositor)

func WithHeader(h Header) Option {
	return func(c *Compositor) {
		c.header = h
	}
}

func WithQRNamespace(ns string) Option {
	return func(c *Compositor) {
		if ns != "" {
			c.qrNamespace = ns
		}
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Compositor) {
		c.tracer = t
	}
}

// Compositor lays out cards. It is safe for concurrent use as long as the
// Measurer is.
type Compositor struct {
	measurer    Measurer
	assets      *assets.Preparer
	header      Header
	qrNamespace string
	tracer      tracer.Tracer
}

func NewCompositor(m Measurer, preparer *assets.Preparer, opts ...Option) *Compositor {
	if preparer == nil {
		preparer = assets.NewPreparer()
	}
	c := &Compositor{
		measurer:    m,
		assets:      preparer,
		header:      DefaultHeader,
		qrNamespace: DefaultQRNamespace,
		tracer:      tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QRPayload is the string encoded in the card's QR code.
func (c *Compositor) QRPayload(s *registration.ResolvedStudent) string {
	return strings.Join([]string{c.qrNamespace, s.RegistrationNumber.String(), s.FullName, s.Institution}, ":")
}

// Compose draws the card. Asset problems never fail composition; they are
// returned as warnings and drawn as placeholders.
func (c *Compositor) Compose(ctx context.Context, s *registration.ResolvedStudent, scheme styling.Scheme) (*canvas.Canvas, []assets.Warning) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanCompose, tracer.String(tracer.AttrCity, s.City.String()))
	defer span.End(nil)

	set := c.assets.Prepare(ctx, assets.Request{
		Photo:     s.Photo,
		QRPayload: c.QRPayload(s),
		QRColor:   scheme.Primary,
	})

	now := requesttime.Now(ctx)
	cv := canvas.New(now, "Carteira de Estudante - "+s.FullName)
	d := drawer{cv: cv, m: canvas.Margin, measurer: c.measurer}

	d.background(scheme)
	d.header(c.header, scheme, set.Emblem)
	d.photo(set.Photo)
	d.qr(set.QR)
	d.fields(s)
	if s.City != "" && s.TransportType != "" {
		d.transport(s, scheme)
	}
	d.footer(ValidityFooter(now), scheme)

	warnings := set.Warnings()
	span.SetAttributes(tracer.Int64(tracer.AttrDegraded, int64(len(warnings))))
	return cv, warnings
}

type drawer struct {
	cv       *canvas.Canvas
	m        float64
	measurer Measurer
}

func (d drawer) text(x, y float64, value string, style canvas.FontStyle, size float64, color canvas.Color) {
	d.cv.Text(canvas.Text{X: d.m + x, Y: d.m + y, Value: value, Style: style, Size: size, Color: color})
}

func (d drawer) background(scheme styling.Scheme) {
	d.cv.Rect(canvas.Rect{X: d.m, Y: d.m, W: canvas.Width - 2*d.m, H: canvas.Height - 2*d.m, Fill: scheme.Background()})
}

func (d drawer) header(h Header, scheme styling.Scheme, emblem assets.Result) {
	d.cv.Rect(canvas.Rect{X: d.m, Y: d.m, W: canvas.Width - 2*d.m, H: 10, Fill: scheme.Primary})
	if emblem.IsEmbedded() {
		d.cv.Image(canvas.Image{X: d.m + 1, Y: d.m + 0.5, W: 10, H: 9, Name: "emblem", Format: emblem.Asset.Format, Data: emblem.Asset.Data})
	} else {
		d.cv.Circle(canvas.Circle{X: d.m + 6, Y: d.m + 5, R: 3, Fill: canvas.White})
	}
	d.text(13, 3.5, h.IssuerName, canvas.Bold, 8, canvas.White)
	d.text(13, 6.5, h.IssuerState, canvas.Bold, 6, canvas.White)
	d.text(13, 9, h.DocumentTitle, canvas.Regular, 5, canvas.White)
}

func (d drawer) photo(r assets.Result) {
	if r.IsEmbedded() {
		d.cv.Image(canvas.Image{X: d.m + 1.5, Y: d.m + 12, W: 14, H: 18, Name: "photo", Format: r.Asset.Format, Data: r.Asset.Data})
		return
	}
	d.cv.Rect(canvas.Rect{X: d.m + 1.5, Y: d.m + 12, W: 14, H: 18, Fill: canvas.Gray})
	d.text(7, 22, "FOTO", canvas.Regular, 5, placeholder)
}

func (d drawer) qr(r assets.Result) {
	if r.IsEmbedded() {
		d.cv.Image(canvas.Image{X: d.m + 66, Y: d.m + 12, W: 12, H: 12, Name: "qr", Format: r.Asset.Format, Data: r.Asset.Data})
		return
	}
	d.cv.Rect(canvas.Rect{X: d.m + 66, Y: d.m + 12, W: 12, H: 12, Fill: canvas.Gray})
	d.text(71, 19, "QR", canvas.Regular, 4, placeholder)
}

// field is a bold label with its value on the following line.
type field struct {
	label     string
	labelSize float64
	value     string
	valueSize float64
	x, y      float64
	// wrap > 0 wraps the value to that width; maxLines bounds the result.
	wrap     float64
	maxLines int
}

// Label baselines sit 3 mm above their values. Line caps keep a wrapped
// value clear of the element below it.
func (d drawer) fields(s *registration.ResolvedStudent) {
	fields := []field{
		{label: "NOME:", labelSize: 5.5, value: strings.ToUpper(s.FullName), valueSize: 4.5, x: 17, y: 14, wrap: 46, maxLines: 2},
		{label: "NASCIMENTO:", labelSize: 5, value: FormatBirthDate(s.BirthDate), valueSize: 4.5, x: 17, y: 22},
		{label: "MATRÍCULA:", labelSize: 5, value: s.RegistrationNumber.String(), valueSize: 4.5, x: 40, y: 22},
		{label: "CPF:", labelSize: 5, value: s.CPF, valueSize: 4.5, x: 17, y: 29},
		{label: "RG:", labelSize: 5, value: s.RG, valueSize: 4.5, x: 45, y: 29},
		{label: "INSTITUIÇÃO:", labelSize: 5, value: strings.ToUpper(s.Institution), valueSize: 4, x: 17, y: 36, wrap: 46, maxLines: 2},
		{label: "CURSO:", labelSize: 5, value: strings.ToUpper(s.Course), valueSize: 4, x: 2, y: 43, wrap: 35, maxLines: 3},
	}

	d.text(66, 26, "DOC. Nº:", canvas.Bold, 4.5, textDark)
	d.text(66, 29, s.RegistrationNumber.String(), canvas.Regular, 4, textDark)

	for _, f := range fields {
		d.text(f.x, f.y, f.label, canvas.Bold, f.labelSize, textDark)
		if f.value == "" {
			continue
		}
		if f.wrap <= 0 {
			d.text(f.x, f.y+3, f.value, canvas.Regular, f.valueSize, textDark)
			continue
		}
		lh := LineHeight(f.valueSize)
		for i, line := range Wrap(d.measurer, f.value, canvas.Regular, f.valueSize, f.wrap, f.maxLines) {
			d.text(f.x, f.y+3+float64(i)*lh, line, canvas.Regular, f.valueSize, textDark)
		}
	}
}

func (d drawer) transport(s *registration.ResolvedStudent, scheme styling.Scheme) {
	d.cv.Rect(canvas.Rect{X: d.m + 40, Y: d.m + 42, W: 40, H: 6, Fill: scheme.Primary, Alpha: 0.1})
	d.text(41, 45, "TRANSPORTE:", canvas.Bold, 4.5, scheme.Primary)
	summary := CityDisplayName(s.City) + " - " + ProviderDisplayName(s.TransportType)
	d.text(41, 47.5, Elide(d.measurer, summary, canvas.Regular, 4, 38), canvas.Regular, 4, textDark)
}

func (d drawer) footer(line string, scheme styling.Scheme) {
	d.text(2, 51.5, line, canvas.Regular, 3.5, scheme.Primary)
}
