package dom_test

import "github.com/fwojciec/sitepdf"

// node is a minimal in-memory document tree for exercising the extractor
// without an HTML parser.
type node struct {
	tag      string
	data     string
	attrs    map[string]string
	children []*node
}

func (n *node) TagName() string { return n.tag }
func (n *node) Data() string    { return n.data }

func (n *node) Children() []sitepdf.Node {
	out := make([]sitepdf.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) HasAttribute(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

func (n *node) Attribute(name string) string { return n.attrs[name] }

func el(tag string, children ...*node) *node {
	return &node{tag: tag, children: children}
}

func elAttrs(tag string, attrs map[string]string, children ...*node) *node {
	return &node{tag: tag, attrs: attrs, children: children}
}

func text(s string) *node {
	return &node{data: s}
}

// page wraps body content in a document with the given title.
func page(title string, body ...*node) *node {
	head := el("head")
	if title != "" {
		head.children = append(head.children, el("title", text(title)))
	}
	return &node{children: []*node{el("html", head, el("body", body...))}}
}
