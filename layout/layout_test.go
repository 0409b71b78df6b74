package layout_test

import (
	"unicode/utf8"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/mock"
)

// monoFont measures every rune as half the font size wide.
func monoFont() *mock.Font {
	return &mock.Font{
		WidthOfTextAtSizeFn: func(text string, size float64) float64 {
			return float64(utf8.RuneCountInString(text)) * size * 0.5
		},
	}
}

type drawCall struct {
	page int
	text string
	opts sitepdf.TextOptions
}

// recorder is a PDF that records every page added and every text drawn.
type recorder struct {
	width, height float64
	pages         int
	draws         []drawCall
}

func newRecorder(width, height float64) *recorder {
	return &recorder{width: width, height: height}
}

func (r *recorder) pdf() *mock.PDF {
	return &mock.PDF{
		AddPageFn: func() sitepdf.PDFPage {
			r.pages++
			n := r.pages
			return &mock.PDFPage{
				SizeFn: func() (float64, float64) { return r.width, r.height },
				DrawTextFn: func(text string, opts sitepdf.TextOptions) {
					r.draws = append(r.draws, drawCall{page: n, text: text, opts: opts})
				},
			}
		},
	}
}
