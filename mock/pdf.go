package mock

import "github.com/fwojciec/sitepdf"

var (
	_ sitepdf.PDF     = (*PDF)(nil)
	_ sitepdf.PDFPage = (*PDFPage)(nil)
	_ sitepdf.Font    = (*Font)(nil)
)

// PDF is a mock implementation of sitepdf.PDF.
type PDF struct {
	EmbedFontFn func() (sitepdf.Font, error)
	AddPageFn   func() sitepdf.PDFPage
	SerializeFn func() ([]byte, error)
}

func (d *PDF) EmbedFont() (sitepdf.Font, error) {
	return d.EmbedFontFn()
}

func (d *PDF) AddPage() sitepdf.PDFPage {
	return d.AddPageFn()
}

func (d *PDF) Serialize() ([]byte, error) {
	return d.SerializeFn()
}

// PDFPage is a mock implementation of sitepdf.PDFPage.
type PDFPage struct {
	SizeFn     func() (width, height float64)
	DrawTextFn func(text string, opts sitepdf.TextOptions)
}

func (p *PDFPage) Size() (width, height float64) {
	return p.SizeFn()
}

func (p *PDFPage) DrawText(text string, opts sitepdf.TextOptions) {
	p.DrawTextFn(text, opts)
}

// Font is a mock implementation of sitepdf.Font.
type Font struct {
	WidthOfTextAtSizeFn func(text string, size float64) float64
}

func (f *Font) WidthOfTextAtSize(text string, size float64) float64 {
	return f.WidthOfTextAtSizeFn(text, size)
}
