// Package layout wraps text to a fixed width and flows it onto PDF pages.
package layout

import (
	"regexp"
	"strings"

	"github.com/fwojciec/sitepdf"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Wrapper breaks text into lines that fit MaxWidth when measured with Font.
type Wrapper struct {
	Font     sitepdf.Font
	MaxWidth float64
}

// Wrap splits text into lines for the given font size. Each source line is a
// paragraph; paragraphs are separated by an empty line, and a blank paragraph
// becomes an empty line unless it is the last one. Words are packed greedily;
// a word wider than MaxWidth on its own is broken between characters. A
// single character wider than MaxWidth is placed on a line by itself.
func (w *Wrapper) Wrap(text string, size float64) []string {
	var lines []string
	paragraphs := lineBreak.Split(text, -1)

	for i, paragraph := range paragraphs {
		last := i == len(paragraphs)-1

		words := strings.Fields(paragraph)
		if len(words) == 0 {
			if !last {
				lines = append(lines, "")
			}
			continue
		}

		var current string
		for _, word := range words {
			tentative := word
			if current != "" {
				tentative = current + " " + word
			}
			if w.fits(tentative, size) {
				current = tentative
				continue
			}

			if current != "" {
				lines = append(lines, current)
			}
			if w.fits(word, size) {
				current = word
				continue
			}

			var segment string
			for _, r := range word {
				candidate := segment + string(r)
				if w.fits(candidate, size) {
					segment = candidate
					continue
				}
				if segment != "" {
					lines = append(lines, segment)
				}
				segment = string(r)
			}
			current = segment
		}

		if current != "" {
			lines = append(lines, current)
		}
		if !last {
			lines = append(lines, "")
		}
	}

	return lines
}

func (w *Wrapper) fits(s string, size float64) bool {
	return w.Font.WidthOfTextAtSize(s, size) <= w.MaxWidth
}
