package layout

import "github.com/fwojciec/sitepdf"

// Page geometry and type sizes, in points.
const (
	Margin            = 40.0
	HeadingSize       = 16.0
	BodySize          = 12.0
	HeadingLineHeight = HeadingSize * 1.35
	BodyLineHeight    = BodySize * 1.4
)

// Paginator flows page records onto the pages of a PDF, one section per
// record, adding pages as vertical space runs out. The cursor is the
// baseline of the next line, measured from the bottom of the page.
type Paginator struct {
	doc     sitepdf.PDF
	font    sitepdf.Font
	wrapper *Wrapper

	page   sitepdf.PDFPage
	cursor float64
	pages  int
}

// NewPaginator adds the first page to doc and returns a Paginator drawing
// with font. The content width is fixed by the first page's width.
func NewPaginator(doc sitepdf.PDF, font sitepdf.Font) *Paginator {
	p := &Paginator{doc: doc, font: font}
	p.addPage()
	width, _ := p.page.Size()
	p.wrapper = &Wrapper{Font: font, MaxWidth: width - Margin*2}
	return p
}

// Render draws each record in order: its title at heading size, its URL and
// then its text at body size. Records after the first are preceded by a blank
// body line. It returns the number of pages used.
func (p *Paginator) Render(records []*sitepdf.PageRecord) int {
	for i, record := range records {
		if i > 0 {
			p.cursor -= BodyLineHeight
			if p.cursor < Margin {
				p.addPage()
			}
		}

		p.DrawLines(p.wrapper.Wrap(record.Title, HeadingSize), HeadingSize, HeadingLineHeight)
		p.DrawLines(p.wrapper.Wrap(record.URL, BodySize), BodySize, BodyLineHeight)

		p.cursor -= BodyLineHeight / 2
		if p.cursor < Margin {
			p.addPage()
		}

		p.DrawLines(p.wrapper.Wrap(record.Text, BodySize), BodySize, BodyLineHeight)
	}
	return p.pages
}

// DrawLines draws lines at the left margin, one lineHeight apart. Empty lines
// draw nothing but still take up their height.
func (p *Paginator) DrawLines(lines []string, size, lineHeight float64) {
	for _, line := range lines {
		p.ensureSpace(lineHeight)
		if line != "" {
			p.page.DrawText(line, sitepdf.TextOptions{X: Margin, Y: p.cursor, Size: size})
		}
		p.cursor -= lineHeight
	}
}

// Wrapper returns the wrapper sized to the page's content width.
func (p *Paginator) Wrapper() *Wrapper {
	return p.wrapper
}

// Pages returns the number of pages added so far.
func (p *Paginator) Pages() int {
	return p.pages
}

// Cursor returns the baseline of the next line.
func (p *Paginator) Cursor() float64 {
	return p.cursor
}

// ensureSpace starts a new page if a line of lineHeight would cross the
// bottom margin.
func (p *Paginator) ensureSpace(lineHeight float64) {
	if p.cursor-lineHeight < Margin {
		p.addPage()
	}
}

func (p *Paginator) addPage() {
	p.page = p.doc.AddPage()
	_, height := p.page.Size()
	p.cursor = height - Margin
	p.pages++
}
