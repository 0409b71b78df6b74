// Package fpdf implements sitepdf.PDF on top of go-pdf/fpdf using the
// built-in Helvetica font on US Letter pages.
package fpdf

import (
	"bytes"
	"time"

	"github.com/fwojciec/sitepdf"
	"github.com/go-pdf/fpdf"
)

// Ensure types implement the domain interfaces at compile time.
var (
	_ sitepdf.PDF     = (*Document)(nil)
	_ sitepdf.PDFPage = (*Page)(nil)
	_ sitepdf.Font    = (*Font)(nil)
)

const fontFamily = "Helvetica"

// Document is a PDF under construction. Coordinates handed to its pages are
// in points from the bottom-left corner.
type Document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// Option configures a Document.
type Option func(*Document)

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(d *Document) {
		d.pdf.SetTitle(title, true)
	}
}

// WithCreationDate fixes the creation date metadata, which otherwise
// defaults to the time of serialization.
func WithCreationDate(t time.Time) Option {
	return func(d *Document) {
		d.pdf.SetCreationDate(t)
	}
}

// NewDocument returns an empty Letter-sized document.
func NewDocument(opts ...Option) *Document {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreator("sitepdf", false)

	d := &Document{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// EmbedFont selects the standard Helvetica font and returns its metrics.
func (d *Document) EmbedFont() (sitepdf.Font, error) {
	d.pdf.SetFont(fontFamily, "", 12)
	if err := d.pdf.Error(); err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINTERNAL, "embed font: %v", err)
	}
	return &Font{doc: d}, nil
}

// AddPage appends a blank page.
func (d *Document) AddPage() sitepdf.PDFPage {
	d.pdf.SetPage(d.pdf.PageCount())
	d.pdf.AddPage()
	return &Page{doc: d, n: d.pdf.PageCount()}
}

// Serialize renders the document to PDF bytes.
func (d *Document) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINTERNAL, "serialize pdf: %v", err)
	}
	return buf.Bytes(), nil
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Page is a single page of a Document.
type Page struct {
	doc *Document
	n   int
}

// Size returns the page dimensions in points. All pages are Letter sized.
func (p *Page) Size() (width, height float64) {
	return p.doc.pdf.GetPageSize()
}

// DrawText draws text with its baseline starting at opts.X, opts.Y.
// Characters outside Windows-1252 cannot be drawn with the standard font
// and are replaced.
func (p *Page) DrawText(text string, opts sitepdf.TextOptions) {
	pdf := p.doc.pdf
	pdf.SetPage(p.n)
	_, height := pdf.GetPageSize()
	pdf.SetFontSize(opts.Size)
	pdf.Text(opts.X, height-opts.Y, p.doc.tr(text))
}

// Font measures text in the document's standard font.
type Font struct {
	doc *Document
}

// WidthOfTextAtSize returns the advance width of text in points.
func (f *Font) WidthOfTextAtSize(text string, size float64) float64 {
	units := f.doc.pdf.GetStringSymbolWidth(f.doc.tr(text))
	return float64(units) * size / 1000
}
