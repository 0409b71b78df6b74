package sitepdf

// Font measures text drawn in a single fixed typeface.
type Font interface {
	// WidthOfTextAtSize returns the rendered width of text at the given point size.
	WidthOfTextAtSize(text string, size float64) float64
}

// TextOptions positions a run of text on a page. Coordinates are in points
// with the origin at the bottom-left corner; Y is the text baseline.
type TextOptions struct {
	X    float64
	Y    float64
	Size float64
}

// PDFPage is a single fixed-size page of a PDF.
type PDFPage interface {
	Size() (width, height float64)
	DrawText(text string, opts TextOptions)
}

// PDF is the minimal document-generation capability the layout needs:
// one embedded font, appendable pages, and serialization.
type PDF interface {
	EmbedFont() (Font, error)
	AddPage() PDFPage
	Serialize() ([]byte, error)
}
