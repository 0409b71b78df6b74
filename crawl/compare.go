package crawl

import (
	"context"
	"strings"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/dom"
)

// ContentDiffers reports whether the rendered markup of a page yields
// significantly more text (>50%) than its plain markup, suggesting JavaScript
// rendering adds meaningful content. It also returns true if the plain
// markup cannot be parsed.
func ContentDiffers(pageURL, plainHTML, renderedHTML string, parser sitepdf.Parser) bool {
	plain, err := parser.Parse(plainHTML)
	if err != nil {
		return true
	}
	rendered, err := parser.Parse(renderedHTML)
	if err != nil {
		return false
	}

	plainLen := len(strings.TrimSpace(dom.Extract(plain, pageURL).Text))
	renderedLen := len(strings.TrimSpace(dom.Extract(rendered, pageURL).Text))

	if plainLen == 0 && renderedLen > 0 {
		return true
	}
	return float64(renderedLen) > float64(plainLen)*1.5
}

// ChooseFetcher probes pageURL to decide whether a crawl needs a rendering
// fetcher. The plain fetcher is tried first; if it fails the rendering
// fetcher is used, and if rendering adds significant text it is preferred.
func ChooseFetcher(ctx context.Context, pageURL string, plain, rendered sitepdf.Fetcher, parser sitepdf.Parser) sitepdf.Fetcher {
	plainHTML, err := plain.Fetch(ctx, pageURL)
	if err != nil {
		return rendered
	}

	renderedHTML, err := rendered.Fetch(ctx, pageURL)
	if err != nil {
		return plain
	}

	if ContentDiffers(pageURL, plainHTML, renderedHTML, parser) {
		return rendered
	}
	return plain
}
