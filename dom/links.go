package dom

import "github.com/fwojciec/sitepdf"

// Links returns the href of every anchor in document order, hidden ones
// included. Anchors with an empty href are skipped. Template contents are
// inert and not searched.
func Links(root sitepdf.Node) []string {
	if root == nil {
		return nil
	}
	var hrefs []string
	var walk func(sitepdf.Node)
	walk = func(n sitepdf.Node) {
		switch n.TagName() {
		case "template":
			return
		case "a":
			if href := n.Attribute("href"); href != "" {
				hrefs = append(hrefs, href)
			}
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(root)
	return hrefs
}
