// Package dom extracts a plain-text representation of a page from any
// document tree exposed through sitepdf.Node.
package dom

import (
	"strings"

	"github.com/fwojciec/sitepdf"
)

// nonVisualTags are removed wholesale along with their subtrees.
var nonVisualTags = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
	"meta":     true,
	"link":     true,
}

// contentTags are the block elements that contribute lines.
var contentTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p":  true,
	"ul": true,
	"li": true,
}

// Extract returns the title and text of the document rooted at root.
//
// Non-visual and hidden nodes are skipped rather than removed, so the tree is
// never modified. Headings, paragraphs and list items contribute one line
// each in document order; an unordered list emits its direct items itself
// and those items are not emitted again. Lines are separated by a blank line.
// Whitespace runs in the title collapse to single spaces. The title falls
// back to pageURL when the document has no usable <title>.
func Extract(root sitepdf.Node, pageURL string) *sitepdf.ExtractResult {
	result := &sitepdf.ExtractResult{Title: pageURL}
	if root == nil {
		return result
	}

	if title := find(root, "title", false); title != nil {
		if s := strings.Join(strings.Fields(textContent(title, false)), " "); s != "" {
			result.Title = s
		}
	}

	body := find(root, "body", true)
	if body == nil {
		return result
	}

	var parts []string
	collect(body, false, &parts)
	result.Text = strings.Join(parts, "\n\n")
	return result
}

// collect walks n in document order appending content lines to parts.
// emitted reports that n is a list item already emitted by its parent list.
func collect(n sitepdf.Node, emitted bool, parts *[]string) {
	children := visibleChildren(n)
	tag := n.TagName()

	// Items emitted here are passed down as emitted so the walk skips them.
	var listed map[int]bool

	switch {
	case tag == "ul":
		listed = make(map[int]bool)
		for i, child := range children {
			if child.TagName() != "li" {
				continue
			}
			if value := strings.TrimSpace(textContent(child, true)); value != "" {
				*parts = append(*parts, value)
				listed[i] = true
			}
		}
	case tag == "li" && emitted:
	case contentTags[tag]:
		if value := strings.TrimSpace(textContent(n, true)); value != "" {
			*parts = append(*parts, value)
		}
	}

	for i, child := range children {
		collect(child, listed[i], parts)
	}
}

// removed reports whether n is excluded from the visible content.
func removed(n sitepdf.Node) bool {
	tag := n.TagName()
	if tag == "" {
		return false
	}
	if nonVisualTags[tag] {
		return true
	}
	if n.HasAttribute("hidden") {
		return true
	}
	if n.HasAttribute("aria-hidden") && !strings.EqualFold(n.Attribute("aria-hidden"), "false") {
		return true
	}
	return false
}

func visibleChildren(n sitepdf.Node) []sitepdf.Node {
	children := n.Children()
	visible := children[:0:0]
	for _, child := range children {
		if !removed(child) {
			visible = append(visible, child)
		}
	}
	return visible
}

// textContent concatenates the text nodes below n. When visible is set,
// removed subtrees contribute nothing.
func textContent(n sitepdf.Node, visible bool) string {
	var b strings.Builder
	var walk func(sitepdf.Node)
	walk = func(n sitepdf.Node) {
		if n.TagName() == "" {
			b.WriteString(n.Data())
		}
		for _, child := range n.Children() {
			if visible && removed(child) {
				continue
			}
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// find returns the first element named tag in document order.
func find(n sitepdf.Node, tag string, visible bool) sitepdf.Node {
	if n.TagName() == tag {
		return n
	}
	for _, child := range n.Children() {
		if visible && removed(child) {
			continue
		}
		if found := find(child, tag, visible); found != nil {
			return found
		}
	}
	return nil
}
