package sitepdf

// Node is a read-only view of one node in a parsed document tree.
// Element nodes report a lower-case tag name; text nodes report an empty
// tag name and carry their characters in Data. Other node kinds (comments,
// doctype) report neither but may still have children, as the document
// root does.
type Node interface {
	TagName() string
	Data() string
	Children() []Node
	HasAttribute(name string) bool
	Attribute(name string) string
}

// Parser turns raw markup into a traversable document tree.
type Parser interface {
	Parse(html string) (Node, error)
}

// ExtractResult holds the text representation extracted from a page.
type ExtractResult struct {
	// Title is the page's <title>, or the page URL when the title is missing.
	Title string

	// Text is the page's headings, paragraphs and list items in document
	// order, separated by blank lines.
	Text string
}
